package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ILendingService the lending engine
//
// every mutation commits in full or fails leaving state unchanged
type ILendingService interface {
	// admin
	ApproveProject(ctx context.Context, caller, project string) (*Project, error)
	SetFloorValue(ctx context.Context, caller, project string, value decimal.Decimal) (*Project, error)
	DepositFunds(ctx context.Context, caller string, amount decimal.Decimal) (*Treasury, error)

	// collateral
	DepositToken(ctx context.Context, account, project, tokenID string) (*DepositedToken, error)
	WithdrawToken(ctx context.Context, account, project, tokenID string) error

	// loans
	Borrow(ctx context.Context, account string, amount decimal.Decimal, duration time.Duration) (*Loan, error)
	Repay(ctx context.Context, caller string, loanID uint64, amount decimal.Decimal) (*Loan, error)

	// queries
	FloorValue(ctx context.Context, project string) (decimal.Decimal, error)
	FloorUSDValue(ctx context.Context, project string) (decimal.Decimal, error)
	Projects(ctx context.Context) ([]*Project, error)
	CollateralValue(ctx context.Context, account string) (decimal.Decimal, error)
	BorrowMax(ctx context.Context, account string) (decimal.Decimal, error)
	HealthScore(ctx context.Context, account string) (int64, error)
	EthToUSD(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error)
	Treasury(ctx context.Context) (*Treasury, error)
	Loan(ctx context.Context, id uint64) (*Loan, error)
	Loans(ctx context.Context, account string) ([]*Loan, error)
	Account(ctx context.Context, account string) (*AccountSummary, error)
	DepositCandidates(ctx context.Context, account string) (map[string][]string, error)
}
