package views

import (
	"time"

	"nftlend/core"

	"github.com/shopspring/decimal"
)

// Loan loan view
type Loan struct {
	ID           uint64          `json:"id"`
	Borrower     string          `json:"borrower"`
	Principal    decimal.Decimal `json:"principal"`
	Interest     decimal.Decimal `json:"interest"`
	InterestRate int64           `json:"interest_rate"`
	AmountRepaid decimal.Decimal `json:"amount_repaid"`
	Outstanding  decimal.Decimal `json:"outstanding"`
	Status       string          `json:"status"`
	StartTime    time.Time       `json:"start_time"`
	DueTime      time.Time       `json:"due_time"`
	Overdue      bool            `json:"overdue"`
}

// LoanView convert a loan to its view at now
func LoanView(loan *core.Loan, now time.Time) *Loan {
	return &Loan{
		ID:           loan.ID,
		Borrower:     loan.Borrower,
		Principal:    loan.Principal,
		Interest:     loan.Interest,
		InterestRate: loan.InterestRate,
		AmountRepaid: loan.AmountRepaid,
		Outstanding:  loan.Outstanding(),
		Status:       loan.Status.String(),
		StartTime:    loan.StartTime,
		DueTime:      loan.Due(),
		Overdue:      loan.Overdue(now),
	}
}

// LoanViews convert loans
func LoanViews(loans []*core.Loan, now time.Time) []*Loan {
	views := make([]*Loan, 0, len(loans))
	for _, loan := range loans {
		views = append(views, LoanView(loan, now))
	}

	return views
}

// Account account view
type Account struct {
	*core.AccountSummary
	Loans []*Loan `json:"loans"`
}

// AccountView account summary with loan views
func AccountView(summary *core.AccountSummary, now time.Time) *Account {
	return &Account{
		AccountSummary: summary,
		Loans:          LoanViews(summary.Loans, now),
	}
}
