package account

import (
	"context"

	"nftlend/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
)

type accountStore struct {
	db *db.DB
}

// New new account store
func New(db *db.DB) core.IAccountStore {
	return &accountStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Account{})
		if err := tx.AutoMigrate(core.Account{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *accountStore) Find(ctx context.Context, address string) (*core.Account, error) {
	var account core.Account
	if err := s.db.View().Where("address=?", address).First(&account).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.Account{Address: address, EthBorrowed: decimal.Zero}, nil
		}

		return nil, err
	}

	return &account, nil
}

// Save create the account on its first change, otherwise update it guarded by version
func (s *accountStore) Save(ctx context.Context, tx *db.DB, account *core.Account) error {
	version := account.Version
	account.Version++

	if version == 0 {
		return tx.Update().Create(account).Error
	}

	r := tx.Update().Model(core.Account{}).Where("address=? and version=?", account.Address, version).Updates(map[string]interface{}{
		"eth_borrowed": account.EthBorrowed,
		"version":      account.Version,
	})
	if r.Error != nil {
		return r.Error
	}

	if r.RowsAffected == 0 {
		return core.ErrVersionConflict
	}

	return nil
}
