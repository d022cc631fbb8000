package lending

import (
	"testing"
	"time"

	"nftlend/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollateralValue(t *testing.T) {
	projects := map[string]*core.Project{
		"kvn": {Address: "kvn", Approved: true, FloorValue: decimal.RequireFromString("0.45")},
		"old": {Address: "old", Approved: false, FloorValue: decimal.RequireFromString("2")},
	}

	tokens := []*core.DepositedToken{
		{Project: "kvn", TokenID: "0"},
		{Project: "kvn", TokenID: "1"},
		{Project: "old", TokenID: "7"},
		{Project: "gone", TokenID: "1"},
	}

	assert.Equal(t, "0.9", CollateralValue(tokens, projects).String())
	assert.Equal(t, "0.27", BorrowMax(tokens, projects).String())

	rest := Without(tokens, "kvn", "1")
	assert.Len(t, rest, 3)
	assert.Equal(t, "0.45", CollateralValue(rest, projects).String())
	assert.Equal(t, "0.9", CollateralValue(Without(tokens, "old", "7"), projects).String(), "unapproved project counts zero")

	assert.True(t, CollateralValue(nil, projects).IsZero())
}

func TestLoanLifecycle(t *testing.T) {
	now := time.Now()
	loan := NewLoan("alice", decimal.RequireFromString("0.15"), time.Hour, now)

	assert.Equal(t, "0.015", loan.Interest.String())
	assert.EqualValues(t, 10, loan.InterestRate)
	assert.EqualValues(t, 3600, loan.Duration)
	assert.Equal(t, core.LoanStatusOpen, loan.Status)
	assert.Equal(t, "0.165", loan.Owed().String())

	// not persisted yet
	assert.ErrorIs(t, RepayAllowed(loan, decimal.RequireFromString("0.1")), core.ErrLoanNotFound)
	loan.ID = 1

	require.NoError(t, RepayAllowed(loan, decimal.RequireFromString("0.1")))
	ApplyRepayment(loan, decimal.RequireFromString("0.1"))
	assert.Equal(t, core.LoanStatusOpen, loan.Status)
	assert.Equal(t, "0.065", loan.Outstanding().String())

	assert.ErrorIs(t, RepayAllowed(loan, decimal.Zero), core.ErrInvalidAmount)
	assert.ErrorIs(t, RepayAllowed(loan, decimal.RequireFromString("0.066")), core.ErrOverRepayment)

	require.NoError(t, RepayAllowed(loan, decimal.RequireFromString("0.065")))
	ApplyRepayment(loan, decimal.RequireFromString("0.065"))
	assert.Equal(t, core.LoanStatusRepaid, loan.Status)

	assert.ErrorIs(t, RepayAllowed(loan, decimal.RequireFromString("0.001")), core.ErrLoanClosed)
}

func TestOverdue(t *testing.T) {
	start := time.Date(2022, 9, 1, 0, 0, 0, 0, time.UTC)
	loan := NewLoan("alice", decimal.NewFromInt(1), 24*time.Hour, start)

	assert.False(t, loan.Overdue(start.Add(time.Hour)))
	assert.True(t, loan.Overdue(start.Add(25*time.Hour)))

	loan.Status = core.LoanStatusRepaid
	assert.False(t, loan.Overdue(start.Add(25*time.Hour)), "repaid loans never overdue")
}
