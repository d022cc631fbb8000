package lending

import (
	"context"

	"nftlend/core"
	"nftlend/internal/risk"
	lend "nftlend/pkg/lending"

	"github.com/shopspring/decimal"
)

func (s *service) FloorValue(ctx context.Context, address string) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.floorValue(ctx, core.NormalizeAddress(address))
}

func (s *service) floorValue(ctx context.Context, address string) (decimal.Decimal, error) {
	project, err := s.stores.Projects.Find(ctx, address)
	if err != nil {
		return decimal.Zero, err
	}

	if !project.Approved {
		return decimal.Zero, core.ErrNotApproved
	}

	return project.FloorValue, nil
}

func (s *service) FloorUSDValue(ctx context.Context, address string) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	floor, err := s.floorValue(ctx, core.NormalizeAddress(address))
	if err != nil {
		return decimal.Zero, err
	}

	return s.oracle.Convert(ctx, floor)
}

func (s *service) Projects(ctx context.Context) ([]*core.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.stores.Projects.All(ctx)
}

func (s *service) CollateralValue(ctx context.Context, account string) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collateralValue(ctx, s.stores.Projects, core.NormalizeAddress(account))
}

func (s *service) collateralValue(ctx context.Context, projectStore core.IProjectStore, account string) (decimal.Decimal, error) {
	tokens, err := s.stores.Tokens.FindByOwner(ctx, account)
	if err != nil {
		return decimal.Zero, err
	}

	projects, err := projectStore.AllAsMap(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	return lend.CollateralValue(tokens, projects), nil
}

func (s *service) BorrowMax(ctx context.Context, account string) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.borrowMax(ctx, s.stores.Projects, core.NormalizeAddress(account))
}

func (s *service) borrowMax(ctx context.Context, projectStore core.IProjectStore, account string) (decimal.Decimal, error) {
	value, err := s.collateralValue(ctx, projectStore, account)
	if err != nil {
		return decimal.Zero, err
	}

	return risk.BorrowMax(value), nil
}

// HealthScore floor(borrow_max_usd * 100 / debt_usd), ErrNoDebt without debt
func (s *service) HealthScore(ctx context.Context, account string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account = core.NormalizeAddress(account)
	acc, err := s.stores.Accounts.Find(ctx, account)
	if err != nil {
		return 0, err
	}

	if !acc.HasDebt() {
		return 0, core.ErrNoDebt
	}

	borrowMax, err := s.borrowMax(ctx, s.stores.Projects, account)
	if err != nil {
		return 0, err
	}

	values, err := s.usd(ctx, borrowMax, acc.EthBorrowed)
	if err != nil {
		return 0, err
	}

	score, ok := risk.HealthScore(values[0], values[1])
	if !ok {
		return 0, core.ErrNoDebt
	}

	return score, nil
}

func (s *service) EthToUSD(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error) {
	return s.oracle.Convert(ctx, amount)
}

func (s *service) Treasury(ctx context.Context) (*core.Treasury, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.stores.Treasury.Find(ctx)
}

func (s *service) Loan(ctx context.Context, id uint64) (*core.Loan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	loan, err := s.stores.Loans.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if !loan.Exists() {
		return nil, core.ErrLoanNotFound
	}

	return loan, nil
}

func (s *service) Loans(ctx context.Context, account string) ([]*core.Loan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.stores.Loans.FindByBorrower(ctx, core.NormalizeAddress(account))
}

// Account figures of the account, usd values converted at query time
func (s *service) Account(ctx context.Context, account string) (*core.AccountSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account = core.NormalizeAddress(account)
	acc, err := s.stores.Accounts.Find(ctx, account)
	if err != nil {
		return nil, err
	}

	tokens, err := s.stores.Tokens.FindByOwner(ctx, account)
	if err != nil {
		return nil, err
	}

	projects, err := s.stores.Projects.AllAsMap(ctx)
	if err != nil {
		return nil, err
	}

	loans, err := s.stores.Loans.FindByBorrower(ctx, account)
	if err != nil {
		return nil, err
	}

	summary := &core.AccountSummary{
		Address:         account,
		EthBorrowed:     acc.EthBorrowed,
		CollateralValue: lend.CollateralValue(tokens, projects),
		Tokens:          tokens,
		Loans:           loans,
	}
	summary.BorrowMax = risk.BorrowMax(summary.CollateralValue)

	values, err := s.usd(ctx, summary.CollateralValue, summary.BorrowMax, summary.EthBorrowed)
	if err != nil {
		return nil, err
	}

	summary.CollateralUSDValue, summary.BorrowMaxUSD, summary.DebtUSDValue = values[0], values[1], values[2]

	if score, ok := risk.HealthScore(summary.BorrowMaxUSD, summary.DebtUSDValue); ok {
		summary.HealthScore = &score
		summary.Liquidatable = risk.Liquidatable(score)
	}

	return summary, nil
}

// DepositCandidates tokens of approved projects account holds outside custody, keyed by project
func (s *service) DepositCandidates(ctx context.Context, account string) (map[string][]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account = core.NormalizeAddress(account)
	projects, err := s.stores.Projects.All(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make(map[string][]string)
	for _, project := range projects {
		if !project.Approved {
			continue
		}

		ids, err := s.custodian.TokensOf(ctx, project.Address, account)
		if err != nil {
			return nil, err
		}

		if len(ids) > 0 {
			candidates[project.Address] = ids
		}
	}

	return candidates, nil
}
