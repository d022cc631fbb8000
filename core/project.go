package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Project an nft collection accepted as collateral
type Project struct {
	ID      uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Address string `sql:"size:64;unique_index:project_address_idx" json:"address"`
	Name    string `sql:"size:64" json:"name,omitempty"`
	// 未批准的项目不计入抵押价值
	Approved bool `json:"approved"`
	// eth per token
	FloorValue decimal.Decimal `sql:"type:varchar(64)" json:"floor_value"`
	Version    int64           `sql:"default:0" json:"version"`
	CreatedAt  time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Exists project row persisted
func (p *Project) Exists() bool {
	return p.ID > 0
}

// CollateralValue value of one deposited token, zero for unapproved projects
func (p *Project) CollateralValue() decimal.Decimal {
	if !p.Approved {
		return decimal.Zero
	}

	return p.FloorValue
}

// IProjectStore project store interface
type IProjectStore interface {
	Create(ctx context.Context, tx *db.DB, project *Project) error
	// Find returns an empty project when the address is unknown
	Find(ctx context.Context, address string) (*Project, error)
	All(ctx context.Context) ([]*Project, error)
	AllAsMap(ctx context.Context) (map[string]*Project, error)
	Update(ctx context.Context, tx *db.DB, project *Project) error
}
