package transfer

import (
	"context"

	"nftlend/core"

	"github.com/fox-one/pkg/store/db"
)

type transferStore struct {
	db *db.DB
}

// New new transfer store
func New(db *db.DB) core.ITransferStore {
	return &transferStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Transfer{})
		if err := tx.AutoMigrate(core.Transfer{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *transferStore) Create(ctx context.Context, tx *db.DB, transfer *core.Transfer) error {
	return tx.Update().Where("trace_id=?", transfer.TraceID).FirstOrCreate(transfer).Error
}

func (s *transferStore) FindByLoan(ctx context.Context, loanID uint64) ([]*core.Transfer, error) {
	var transfers []*core.Transfer
	if e := s.db.View().Where("loan_id=?", loanID).Order("id").Find(&transfers).Error; e != nil {
		return nil, e
	}

	return transfers, nil
}
