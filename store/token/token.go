package token

import (
	"context"

	"nftlend/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type tokenStore struct {
	db *db.DB
}

// New new deposited token store
func New(db *db.DB) core.ITokenStore {
	return &tokenStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.DepositedToken{})
		if err := tx.AutoMigrate(core.DepositedToken{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *tokenStore) Create(ctx context.Context, tx *db.DB, token *core.DepositedToken) error {
	return tx.Update().Create(token).Error
}

func (s *tokenStore) Find(ctx context.Context, project, tokenID string) (*core.DepositedToken, error) {
	var token core.DepositedToken
	if err := s.db.View().Where("project=? and token_id=?", project, tokenID).First(&token).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.DepositedToken{Project: project, TokenID: tokenID}, nil
		}

		return nil, err
	}

	return &token, nil
}

func (s *tokenStore) FindByOwner(ctx context.Context, owner string) ([]*core.DepositedToken, error) {
	var tokens []*core.DepositedToken
	if err := s.db.View().Where("owner=?", owner).Order("id").Find(&tokens).Error; err != nil {
		return nil, err
	}

	return tokens, nil
}

func (s *tokenStore) Delete(ctx context.Context, tx *db.DB, token *core.DepositedToken) error {
	r := tx.Update().Where("id=? and owner=?", token.ID, token.Owner).Delete(core.DepositedToken{})
	if r.Error != nil {
		return r.Error
	}

	if r.RowsAffected == 0 {
		return core.ErrVersionConflict
	}

	return nil
}
