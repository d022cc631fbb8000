package treasury

import (
	"context"

	"nftlend/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
)

type treasuryStore struct {
	db *db.DB
}

// New new treasury store
func New(db *db.DB) core.ITreasuryStore {
	return &treasuryStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Treasury{})
		if err := tx.AutoMigrate(core.Treasury{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *treasuryStore) Find(ctx context.Context) (*core.Treasury, error) {
	var treasury core.Treasury
	if err := s.db.View().Where("id=?", core.TreasuryID).First(&treasury).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.Treasury{ID: core.TreasuryID, TotalEth: decimal.Zero}, nil
		}

		return nil, err
	}

	return &treasury, nil
}

func (s *treasuryStore) Save(ctx context.Context, tx *db.DB, treasury *core.Treasury) error {
	if treasury.TotalEth.IsNegative() {
		return core.ErrInsufficientTreasury
	}

	version := treasury.Version
	treasury.Version++

	if version == 0 {
		treasury.ID = core.TreasuryID
		return tx.Update().Create(treasury).Error
	}

	r := tx.Update().Model(core.Treasury{}).Where("id=? and version=?", core.TreasuryID, version).Updates(map[string]interface{}{
		"total_eth": treasury.TotalEth,
		"version":   treasury.Version,
	})
	if r.Error != nil {
		return r.Error
	}

	if r.RowsAffected == 0 {
		return core.ErrVersionConflict
	}

	return nil
}
