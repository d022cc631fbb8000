package number

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Wei decimal places of an eth amount
const Wei int32 = 18

// Amount parse an eth amount, digits beyond wei are truncated
func Amount(v string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil {
		return decimal.Zero, err
	}

	return d.Truncate(Wei), nil
}
