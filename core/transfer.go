package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Transfer eth paid out of the treasury
type Transfer struct {
	ID         uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	CreatedAt  time.Time       `json:"created_at,omitempty"`
	TraceID    string          `sql:"size:36;unique_index:trace_idx" json:"trace_id,omitempty"`
	LoanID     uint64          `sql:"index:transfer_loan_idx" json:"loan_id,omitempty"`
	OpponentID string          `sql:"size:64" json:"opponent_id,omitempty"`
	Amount     decimal.Decimal `sql:"type:varchar(64)" json:"amount,omitempty"`
	Memo       string          `sql:"size:140" json:"memo,omitempty"`
}

// ITransferStore transfer store interface
type ITransferStore interface {
	Create(ctx context.Context, tx *db.DB, transfer *Transfer) error
	FindByLoan(ctx context.Context, loanID uint64) ([]*Transfer, error)
}

// IWalletService the funds transfer primitive disbursing loans
type IWalletService interface {
	// Transfer must be idempotent on transfer.TraceID
	Transfer(ctx context.Context, transfer *Transfer) error
}
