package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
)

// DepositedToken an nft held in custody by the engine
type DepositedToken struct {
	ID        uint64    `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Project   string    `sql:"size:64;unique_index:deposited_token_idx" json:"project"`
	TokenID   string    `sql:"size:78;unique_index:deposited_token_idx" json:"token_id"`
	Owner     string    `sql:"size:64;index:deposited_token_owner_idx" json:"owner"`
	CreatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// Exists token row persisted
func (t *DepositedToken) Exists() bool {
	return t.ID > 0
}

// ITokenStore deposited token store interface
type ITokenStore interface {
	Create(ctx context.Context, tx *db.DB, token *DepositedToken) error
	// Find returns an empty token when it is not in custody
	Find(ctx context.Context, project, tokenID string) (*DepositedToken, error)
	FindByOwner(ctx context.Context, owner string) ([]*DepositedToken, error)
	Delete(ctx context.Context, tx *db.DB, token *DepositedToken) error
}

// ICustodian the external nft registry holding ownership of collateral tokens
type ICustodian interface {
	// TransferIn moves the token from its owner into engine custody
	TransferIn(ctx context.Context, project, tokenID, from string) error
	// TransferOut returns the token from engine custody to the account
	TransferOut(ctx context.Context, project, tokenID, to string) error
	OwnerOf(ctx context.Context, project, tokenID string) (string, error)
	TokensOf(ctx context.Context, project, owner string) ([]string, error)
}
