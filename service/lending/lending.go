package lending

import (
	"context"
	"sync"
	"time"

	"nftlend/core"
	"nftlend/internal/risk"
	"nftlend/pkg/id"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Stores persistent state of the engine
type Stores struct {
	Projects     core.IProjectStore
	Tokens       core.ITokenStore
	Accounts     core.IAccountStore
	Loans        core.ILoanStore
	Treasury     core.ITreasuryStore
	Transactions core.TransactionStore
	Transfers    core.ITransferStore
}

type service struct {
	// mutations hold the write lock, queries the read lock
	mu sync.RWMutex

	db     *db.DB
	config *core.Config
	stores Stores
	// uncached, mutations read projects here
	projects core.IProjectStore

	oracle    core.IOracle
	custodian core.ICustodian
	wallet    core.IWalletService

	now func() time.Time
}

// New new lending engine
func New(database *db.DB,
	cfg *core.Config,
	stores Stores,
	oracle core.IOracle,
	custodian core.ICustodian,
	wallet core.IWalletService) core.ILendingService {
	projects := stores.Projects
	if c, ok := projects.(interface{ Origin() core.IProjectStore }); ok {
		projects = c.Origin()
	}

	return &service{
		db:        database,
		config:    cfg,
		stores:    stores,
		projects:  projects,
		oracle:    oracle,
		custodian: custodian,
		wallet:    wallet,
		now:       time.Now,
	}
}

// record append the audit transaction of an operation
func (s *service) record(ctx context.Context, tx *db.DB, traceID string, action core.ActionType, account string, amount decimal.Decimal, extra core.TransactionExtraData) error {
	if traceID == "" {
		traceID = id.GenTraceID()
	}

	transaction := core.BuildTransaction(traceID, action, account, amount, extra)
	return s.stores.Transactions.Create(ctx, tx, transaction)
}

// usd convert each eth amount, the first oracle failure aborts
func (s *service) usd(ctx context.Context, amounts ...decimal.Decimal) ([]decimal.Decimal, error) {
	values := make([]decimal.Decimal, len(amounts))
	for i, amount := range amounts {
		v, err := s.oracle.Convert(ctx, amount)
		if err != nil {
			return nil, err
		}

		values[i] = v
	}

	return values, nil
}

func (s *service) requireAdmin(caller string) error {
	if !s.config.IsAdmin(caller) {
		return core.ErrUnauthorized
	}

	return nil
}

var maxPricision = risk.MaxPricision

func validAmount(amount decimal.Decimal) bool {
	return amount.IsPositive() && amount.Equal(amount.Truncate(maxPricision))
}
