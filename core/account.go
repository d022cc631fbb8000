package core

import (
	"context"
	"strings"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Account 借贷账户
type Account struct {
	Address string `sql:"size:64;PRIMARY_KEY" json:"address"`
	// outstanding principal and interest
	EthBorrowed decimal.Decimal `sql:"type:varchar(64)" json:"eth_borrowed"`
	Version     int64           `sql:"default:0" json:"version"`
	CreatedAt   time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// HasDebt account owes anything
func (a *Account) HasDebt() bool {
	return a.EthBorrowed.IsPositive()
}

// NormalizeAddress canonical form of account and collection identifiers
func NormalizeAddress(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// IAccountStore account store interface
type IAccountStore interface {
	// Find returns an account with zero debt when the address is unknown
	Find(ctx context.Context, address string) (*Account, error)
	Save(ctx context.Context, tx *db.DB, account *Account) error
}

// AccountSummary derived risk figures of an account, computed at query time
type AccountSummary struct {
	Address            string          `json:"address"`
	EthBorrowed        decimal.Decimal `json:"eth_borrowed"`
	CollateralValue    decimal.Decimal `json:"collateral_value"`
	CollateralUSDValue decimal.Decimal `json:"collateral_usd_value"`
	BorrowMax          decimal.Decimal `json:"borrow_max"`
	BorrowMaxUSD       decimal.Decimal `json:"borrow_max_usd"`
	DebtUSDValue       decimal.Decimal `json:"debt_usd_value"`
	// nil when the account has no debt
	HealthScore  *int64            `json:"health_score,omitempty"`
	Liquidatable bool              `json:"liquidatable"`
	Tokens       []*DepositedToken `json:"tokens"`
	Loans        []*Loan           `json:"loans"`
}
