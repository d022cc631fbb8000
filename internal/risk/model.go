package risk

import (
	"github.com/shopspring/decimal"
)

var (
	// BorrowPowerPct share of the collateral value an account may borrow
	BorrowPowerPct int64 = 30
	// InterestRatePct flat interest charged on every loan
	InterestRatePct int64 = 10
	// BorrowCheckPct weight of a new borrow in the collateral check:
	// principal, interest and a 20% margin
	BorrowCheckPct int64 = 130
	// LiquidationScore health score below which an account is undercollateralized
	LiquidationScore int64 = 100
	// MaxPricision wei
	MaxPricision int32 = 18

	hundred = decimal.NewFromInt(100)
)

// Percent v * pct / 100, truncated to wei
func Percent(v decimal.Decimal, pct int64) decimal.Decimal {
	return v.Mul(decimal.NewFromInt(pct)).Shift(-2).Truncate(MaxPricision)
}

// BorrowMax borrow_max = collateral_value * 30 / 100
func BorrowMax(collateralValue decimal.Decimal) decimal.Decimal {
	return Percent(collateralValue, BorrowPowerPct)
}

// Interest interest = amount * rate / 100
func Interest(amount decimal.Decimal, ratePct int64) decimal.Decimal {
	return Percent(amount, ratePct)
}

// ProjectedDebt debt counted by the collateral check after borrowing amount
// projected = borrowed + amount * 130 / 100
func ProjectedDebt(borrowed, amount decimal.Decimal) decimal.Decimal {
	return borrowed.Add(Percent(amount, BorrowCheckPct))
}

// HealthScore health_score = floor(borrow_max * 100 / debt)
//
// ok is false when there is no debt
func HealthScore(borrowMax, debt decimal.Decimal) (score int64, ok bool) {
	if !debt.IsPositive() {
		return 0, false
	}

	q, _ := borrowMax.Mul(hundred).QuoRem(debt, 0)
	return q.IntPart(), true
}

// Liquidatable score signals undercollateralization
func Liquidatable(score int64) bool {
	return score < LiquidationScore
}
