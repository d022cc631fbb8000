package lending

import (
	"time"

	"nftlend/core"
	"nftlend/internal/risk"

	"github.com/shopspring/decimal"
)

// NewLoan open loan for amount, interest charged at the fixed rate
func NewLoan(borrower string, amount decimal.Decimal, duration time.Duration, now time.Time) *core.Loan {
	return &core.Loan{
		Borrower:     borrower,
		Principal:    amount,
		Interest:     risk.Interest(amount, risk.InterestRatePct),
		InterestRate: risk.InterestRatePct,
		Duration:     int64(duration / time.Second),
		StartTime:    now,
		AmountRepaid: decimal.Zero,
		Status:       core.LoanStatusOpen,
	}
}

// RepayAllowed checks a repayment against the loan state
func RepayAllowed(loan *core.Loan, amount decimal.Decimal) error {
	if !loan.Exists() {
		return core.ErrLoanNotFound
	}

	if !loan.IsOpen() {
		return core.ErrLoanClosed
	}

	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	if amount.GreaterThan(loan.Outstanding()) {
		return core.ErrOverRepayment
	}

	return nil
}

// ApplyRepayment amount_repaid += amount, Repaid once the owed total is covered
func ApplyRepayment(loan *core.Loan, amount decimal.Decimal) {
	loan.AmountRepaid = loan.AmountRepaid.Add(amount)
	if loan.AmountRepaid.GreaterThanOrEqual(loan.Owed()) {
		loan.Status = core.LoanStatusRepaid
	}
}
