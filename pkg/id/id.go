package id

import (
	"strconv"

	foxuuid "github.com/fox-one/pkg/uuid"
	"github.com/gofrs/uuid"
)

// GenTraceID new normal traceID
func GenTraceID() string {
	return uuid.Must(uuid.NewV4()).String()
}

// Sub derived trace id of the sub action of traceID
func Sub(traceID, action string) string {
	return foxuuid.Modify(traceID, action)
}

// Str2Num convert number string to uint64, zero if invalid
func Str2Num(idStr string) uint64 {
	v, _ := strconv.ParseUint(idStr, 10, 64)
	return v
}
