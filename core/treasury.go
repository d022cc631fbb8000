package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// TreasuryID the single treasury row
const TreasuryID = 1

// Treasury pooled eth available to lend
type Treasury struct {
	ID        uint64          `sql:"PRIMARY_KEY" json:"-"`
	TotalEth  decimal.Decimal `sql:"type:varchar(64)" json:"total_eth"`
	Version   int64           `sql:"default:0" json:"version"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ITreasuryStore treasury store interface
type ITreasuryStore interface {
	// Find returns an empty treasury before the first deposit
	Find(ctx context.Context) (*Treasury, error)
	Save(ctx context.Context, tx *db.DB, treasury *Treasury) error
}
