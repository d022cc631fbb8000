package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// LoanStatus loan status
type LoanStatus int

const (
	_ LoanStatus = iota
	// LoanStatusOpen open
	LoanStatusOpen
	// LoanStatusRepaid repaid, terminal
	LoanStatusRepaid
)

func (s LoanStatus) String() string {
	switch s {
	case LoanStatusOpen:
		return "Open"
	case LoanStatusRepaid:
		return "Repaid"
	default:
		return "Unknown"
	}
}

// Loan a single borrow
type Loan struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Borrower  string          `sql:"size:64;index:loan_borrower_idx" json:"borrower"`
	Principal decimal.Decimal `sql:"type:varchar(64)" json:"principal"`
	Interest  decimal.Decimal `sql:"type:varchar(64)" json:"interest"`
	// percent
	InterestRate int64 `json:"interest_rate"`
	// seconds
	Duration     int64           `json:"duration"`
	StartTime    time.Time       `json:"start_time"`
	AmountRepaid decimal.Decimal `sql:"type:varchar(64)" json:"amount_repaid"`
	Status       LoanStatus      `json:"status"`
	Version      int64           `sql:"default:0" json:"version"`
	CreatedAt    time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Exists loan row persisted
func (l *Loan) Exists() bool {
	return l.ID > 0
}

// IsOpen loan accepts repayments
func (l *Loan) IsOpen() bool {
	return l.Status == LoanStatusOpen
}

// Owed principal plus interest
func (l *Loan) Owed() decimal.Decimal {
	return l.Principal.Add(l.Interest)
}

// Outstanding owed minus repaid
func (l *Loan) Outstanding() decimal.Decimal {
	return l.Owed().Sub(l.AmountRepaid)
}

// Due time the loan duration elapses
func (l *Loan) Due() time.Time {
	return l.StartTime.Add(time.Duration(l.Duration) * time.Second)
}

// Overdue open loan past its duration
func (l *Loan) Overdue(now time.Time) bool {
	return l.IsOpen() && now.After(l.Due())
}

// ILoanStore loan store interface
type ILoanStore interface {
	Create(ctx context.Context, tx *db.DB, loan *Loan) error
	// Find returns an empty loan when the id is unknown
	Find(ctx context.Context, id uint64) (*Loan, error)
	// FindByBorrower ordered by creation
	FindByBorrower(ctx context.Context, borrower string) ([]*Loan, error)
	Update(ctx context.Context, tx *db.DB, loan *Loan) error
}
