package lending

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"nftlend/core"
	"nftlend/service/custodian"
	"nftlend/service/oracle"
	"nftlend/service/wallet"
	"nftlend/store/account"
	"nftlend/store/loan"
	"nftlend/store/project"
	"nftlend/store/token"
	"nftlend/store/transaction"
	"nftlend/store/transfer"
	"nftlend/store/treasury"

	"github.com/fox-one/pkg/store/db"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	admin = "0xadmin"
	alice = "0xalice"
	bob   = "0xbob"
	kvn   = "0xkvn"
)

func eth(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

type fixture struct {
	ctx      context.Context
	db       *db.DB
	cfg      *core.Config
	oracle   core.IOracle
	svc      core.ILendingService
	stores   Stores
	registry *custodian.Registry
	ledger   *wallet.Ledger
}

func newStores(database *db.DB) Stores {
	return Stores{
		Projects:     project.Cache(project.New(database), time.Minute),
		Tokens:       token.New(database),
		Accounts:     account.New(database),
		Loans:        loan.New(database),
		Treasury:     treasury.New(database),
		Transactions: transaction.New(database),
		Transfers:    transfer.New(database),
	}
}

func newFixture(t *testing.T, source oracle.FeedSource) *fixture {
	database := db.MustOpen(db.Config{
		Dialect: "sqlite3",
		Host:    filepath.Join(t.TempDir(), "nftlend.db"),
	})
	t.Cleanup(func() { database.Close() })
	require.NoError(t, db.Migrate(database))

	if source == nil {
		// 1 ETH = 1000 USD
		source = oracle.Fixed(decimal.NewFromInt(100000000000), 8)
	}

	f := &fixture{
		ctx:      context.Background(),
		db:       database,
		cfg:      &core.Config{Admins: []string{admin}},
		oracle:   oracle.New(source, 0),
		stores:   newStores(database),
		registry: custodian.NewRegistry("0xvault"),
		ledger:   wallet.NewLedger(),
	}

	f.svc = New(f.db, f.cfg, f.stores, f.oracle, f.registry, f.ledger)
	return f
}

// peer another engine on the same database with its own project cache, like a cli process next to the server
func (f *fixture) peer() core.ILendingService {
	return New(f.db, f.cfg, newStores(f.db), f.oracle, f.registry, f.ledger)
}

// setup approved kvn with floor 0.45, alice holding the deposited tokens 0 and 1, treasury of 10 eth
func (f *fixture) setup(t *testing.T) {
	_, err := f.svc.ApproveProject(f.ctx, admin, kvn)
	require.NoError(t, err)
	_, err = f.svc.SetFloorValue(f.ctx, admin, kvn, eth("0.45"))
	require.NoError(t, err)
	_, err = f.svc.DepositFunds(f.ctx, admin, eth("10"))
	require.NoError(t, err)

	for _, id := range []string{"0", "1"} {
		f.registry.Mint(kvn, id, alice)
		_, err := f.svc.DepositToken(f.ctx, alice, kvn, id)
		require.NoError(t, err)
	}
}

func (f *fixture) transactions(t *testing.T) []*core.Transaction {
	transactions, err := f.stores.Transactions.List(f.ctx, time.Time{}, 0)
	require.NoError(t, err)
	return transactions
}

type snapshot struct {
	treasury     string
	debt         string
	tokens       int
	loans        int
	transactions int
	paid         string
}

func (f *fixture) snapshot(t *testing.T, account string) snapshot {
	treasury, err := f.svc.Treasury(f.ctx)
	require.NoError(t, err)
	acc, err := f.stores.Accounts.Find(f.ctx, account)
	require.NoError(t, err)
	tokens, err := f.stores.Tokens.FindByOwner(f.ctx, account)
	require.NoError(t, err)
	loans, err := f.svc.Loans(f.ctx, account)
	require.NoError(t, err)

	return snapshot{
		treasury:     treasury.TotalEth.String(),
		debt:         acc.EthBorrowed.String(),
		tokens:       len(tokens),
		loans:        len(loans),
		transactions: len(f.transactions(t)),
		paid:         f.ledger.Balance(account).String(),
	}
}

func TestLendingScenario(t *testing.T) {
	f := newFixture(t, nil)
	ctx := f.ctx

	f.registry.Mint(kvn, "0", alice)
	f.registry.Mint(kvn, "1", alice)

	_, err := f.svc.ApproveProject(ctx, admin, kvn)
	require.NoError(t, err)
	_, err = f.svc.SetFloorValue(ctx, admin, kvn, eth("0.45"))
	require.NoError(t, err)
	_, err = f.svc.DepositFunds(ctx, admin, eth("10"))
	require.NoError(t, err)

	candidates, err := f.svc.DepositCandidates(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{kvn: {"0", "1"}}, candidates)

	for _, id := range []string{"0", "1"} {
		token, err := f.svc.DepositToken(ctx, alice, kvn, id)
		require.NoError(t, err)
		assert.True(t, token.Exists())

		owner, _ := f.registry.OwnerOf(ctx, kvn, id)
		assert.Equal(t, "0xvault", owner)
	}

	collateral, err := f.svc.CollateralValue(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "0.9", collateral.String())

	borrowMax, err := f.svc.BorrowMax(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "0.27", borrowMax.String())

	floorUSD, err := f.svc.FloorUSDValue(ctx, kvn)
	require.NoError(t, err)
	assert.Equal(t, "450", floorUSD.String())

	_, err = f.svc.HealthScore(ctx, alice)
	assert.ErrorIs(t, err, core.ErrNoDebt)

	l, err := f.svc.Borrow(ctx, alice, eth("0.15"), time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "0.015", l.Interest.String())
	assert.Equal(t, core.LoanStatusOpen, l.Status)
	assert.Equal(t, "0.15", f.ledger.Balance(alice).String())

	s := f.snapshot(t, alice)
	assert.Equal(t, "0.165", s.debt)
	assert.Equal(t, "9.85", s.treasury)

	score, err := f.svc.HealthScore(ctx, alice)
	require.NoError(t, err)
	assert.EqualValues(t, 163, score)

	summary, err := f.svc.Account(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "900", summary.CollateralUSDValue.String())
	assert.Equal(t, "270", summary.BorrowMaxUSD.String())
	assert.Equal(t, "165", summary.DebtUSDValue.String())
	require.NotNil(t, summary.HealthScore)
	assert.EqualValues(t, 163, *summary.HealthScore)
	assert.False(t, summary.Liquidatable)
	assert.Len(t, summary.Tokens, 2)
	assert.Len(t, summary.Loans, 1)

	l, err = f.svc.Repay(ctx, alice, l.ID, eth("0.1"))
	require.NoError(t, err)
	assert.Equal(t, core.LoanStatusOpen, l.Status)
	assert.Equal(t, "0.1", l.AmountRepaid.String())

	s = f.snapshot(t, alice)
	assert.Equal(t, "0.065", s.debt)
	assert.Equal(t, "9.95", s.treasury)

	l, err = f.svc.Repay(ctx, alice, l.ID, eth("0.065"))
	require.NoError(t, err)
	assert.Equal(t, core.LoanStatusRepaid, l.Status)

	_, err = f.svc.Repay(ctx, alice, l.ID, eth("0.01"))
	assert.ErrorIs(t, err, core.ErrLoanClosed)

	_, err = f.svc.HealthScore(ctx, alice)
	assert.ErrorIs(t, err, core.ErrNoDebt)

	stored, err := f.svc.Loan(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, core.LoanStatusRepaid, stored.Status)
	assert.Equal(t, "0.165", stored.AmountRepaid.String())

	for _, id := range []string{"0", "1"} {
		require.NoError(t, f.svc.WithdrawToken(ctx, alice, kvn, id))
		owner, _ := f.registry.OwnerOf(ctx, kvn, id)
		assert.Equal(t, alice, owner)
	}

	s = f.snapshot(t, alice)
	assert.Equal(t, snapshot{
		treasury:     "10.015",
		debt:         "0",
		tokens:       0,
		loans:        1,
		transactions: 10,
		paid:         "0.15",
	}, s)

	var events []string
	for _, tx := range f.transactions(t) {
		events = append(events, tx.Event())
	}
	assert.Equal(t, []string{
		"ProjectApproved", "NewFloor", "DepositFunds",
		"Deposit", "Deposit", "BorrowEth", "Repay", "Repay",
		"Withdraw", "Withdraw",
	}, events)

	transfers, err := f.stores.Transfers.FindByLoan(ctx, l.ID)
	require.NoError(t, err)
	require.Len(t, transfers, 1)
	assert.Equal(t, alice, transfers[0].OpponentID)
	assert.Equal(t, "0.15", transfers[0].Amount.String())
}

func TestAdminOnly(t *testing.T) {
	f := newFixture(t, nil)
	ctx := f.ctx

	_, err := f.svc.ApproveProject(ctx, alice, kvn)
	assert.ErrorIs(t, err, core.ErrUnauthorized)
	_, err = f.svc.SetFloorValue(ctx, alice, kvn, eth("1"))
	assert.ErrorIs(t, err, core.ErrUnauthorized)
	_, err = f.svc.DepositFunds(ctx, alice, eth("1"))
	assert.ErrorIs(t, err, core.ErrUnauthorized)

	projects, err := f.svc.Projects(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects)
	assert.Empty(t, f.transactions(t))

	// admin check ignores case
	p, err := f.svc.ApproveProject(ctx, "0xADMIN", "0xKVN")
	require.NoError(t, err)
	assert.Equal(t, kvn, p.Address)
	assert.True(t, p.Approved)
	assert.True(t, p.FloorValue.IsZero())

	_, err = f.svc.ApproveProject(ctx, admin, kvn)
	require.NoError(t, err)
	assert.Len(t, f.transactions(t), 1, "approving twice records one event")

	_, err = f.svc.DepositFunds(ctx, admin, decimal.Zero)
	assert.ErrorIs(t, err, core.ErrInvalidAmount)
	_, err = f.svc.DepositFunds(ctx, admin, eth("-1"))
	assert.ErrorIs(t, err, core.ErrInvalidAmount)
}

func TestFloorValue(t *testing.T) {
	f := newFixture(t, nil)
	ctx := f.ctx

	_, err := f.svc.SetFloorValue(ctx, admin, kvn, eth("0.45"))
	assert.ErrorIs(t, err, core.ErrNotApproved)
	_, err = f.svc.FloorValue(ctx, kvn)
	assert.ErrorIs(t, err, core.ErrNotApproved)

	_, err = f.svc.ApproveProject(ctx, admin, kvn)
	require.NoError(t, err)

	_, err = f.svc.SetFloorValue(ctx, admin, kvn, eth("-0.1"))
	assert.ErrorIs(t, err, core.ErrInvalidAmount)

	for _, v := range []string{"0.45", "0.5", "0"} {
		_, err = f.svc.SetFloorValue(ctx, admin, kvn, eth(v))
		require.NoError(t, err)

		floor, err := f.svc.FloorValue(ctx, kvn)
		require.NoError(t, err)
		assert.Equal(t, v, floor.String())
	}
}

func TestDepositToken(t *testing.T) {
	f := newFixture(t, nil)
	ctx := f.ctx

	f.registry.Mint(kvn, "0", alice)
	f.registry.Mint(kvn, "1", bob)

	_, err := f.svc.DepositToken(ctx, alice, kvn, "0")
	assert.ErrorIs(t, err, core.ErrNotApproved)

	_, err = f.svc.ApproveProject(ctx, admin, kvn)
	require.NoError(t, err)
	before := f.snapshot(t, alice)

	// token of bob
	_, err = f.svc.DepositToken(ctx, alice, kvn, "1")
	assert.ErrorIs(t, err, core.ErrCustodyTransferFailed)
	assert.ErrorIs(t, err, custodian.ErrNotOwner)
	assert.Equal(t, before, f.snapshot(t, alice))

	_, err = f.svc.DepositToken(ctx, alice, kvn, "0")
	require.NoError(t, err)

	_, err = f.svc.DepositToken(ctx, alice, kvn, "0")
	assert.ErrorIs(t, err, core.ErrCustodyTransferFailed)
	assert.Equal(t, 1, f.snapshot(t, alice).tokens)
}

func TestBorrowChecks(t *testing.T) {
	f := newFixture(t, nil)
	ctx := f.ctx
	f.setup(t)

	_, err := f.svc.Borrow(ctx, alice, decimal.Zero, time.Hour)
	assert.ErrorIs(t, err, core.ErrInvalidAmount)
	_, err = f.svc.Borrow(ctx, alice, eth("0.1"), 0)
	assert.ErrorIs(t, err, core.ErrInvalidDuration)
	_, err = f.svc.Borrow(ctx, alice, eth("11"), time.Hour)
	assert.ErrorIs(t, err, core.ErrInsufficientTreasury)

	before := f.snapshot(t, alice)

	// 0.21 * 1.3 = 0.273 > 0.27
	_, err = f.svc.Borrow(ctx, alice, eth("0.21"), time.Hour)
	assert.ErrorIs(t, err, core.ErrInsufficientCollateral)
	assert.Equal(t, before, f.snapshot(t, alice))

	_, err = f.svc.Borrow(ctx, bob, eth("0.01"), time.Hour)
	assert.ErrorIs(t, err, core.ErrInsufficientCollateral)

	// 0.2 * 1.3 = 0.26
	_, err = f.svc.Borrow(ctx, alice, eth("0.2"), time.Hour)
	require.NoError(t, err)

	// 0.22 + 0.04 * 1.3 = 0.272
	_, err = f.svc.Borrow(ctx, alice, eth("0.04"), time.Hour)
	assert.ErrorIs(t, err, core.ErrInsufficientCollateral)

	// 0.22 + 0.03 * 1.3 = 0.259
	_, err = f.svc.Borrow(ctx, alice, eth("0.03"), 24*time.Hour)
	require.NoError(t, err)

	s := f.snapshot(t, alice)
	assert.Equal(t, "0.253", s.debt)
	assert.Equal(t, "9.77", s.treasury)
	assert.Equal(t, 2, s.loans)

	loans, err := f.svc.Loans(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "0.2", loans[0].Principal.String())
	assert.Equal(t, "0.03", loans[1].Principal.String())
	assert.EqualValues(t, 86400, loans[1].Duration)
}

func TestBorrowTreasuryLimit(t *testing.T) {
	f := newFixture(t, nil)
	ctx := f.ctx

	_, err := f.svc.ApproveProject(ctx, admin, kvn)
	require.NoError(t, err)
	_, err = f.svc.SetFloorValue(ctx, admin, kvn, eth("100"))
	require.NoError(t, err)
	_, err = f.svc.DepositFunds(ctx, admin, eth("1"))
	require.NoError(t, err)

	f.registry.Mint(kvn, "0", alice)
	_, err = f.svc.DepositToken(ctx, alice, kvn, "0")
	require.NoError(t, err)

	_, err = f.svc.Borrow(ctx, alice, eth("1"), time.Hour)
	require.NoError(t, err)

	_, err = f.svc.Borrow(ctx, alice, eth("0.000000000000000001"), time.Hour)
	assert.ErrorIs(t, err, core.ErrInsufficientTreasury)

	treasury, err := f.svc.Treasury(ctx)
	require.NoError(t, err)
	assert.True(t, treasury.TotalEth.IsZero())
}

func TestBorrowDisbursementFailure(t *testing.T) {
	f := newFixture(t, nil)
	ctx := f.ctx
	f.setup(t)

	before := f.snapshot(t, alice)
	f.ledger.Freeze(alice)

	_, err := f.svc.Borrow(ctx, alice, eth("0.15"), time.Hour)
	assert.ErrorIs(t, err, core.ErrDisbursementFailed)
	assert.ErrorIs(t, err, wallet.ErrFrozen)

	assert.Equal(t, before, f.snapshot(t, alice))
	assert.Equal(t, 0, f.ledger.Transfers())
}

func TestWithdrawToken(t *testing.T) {
	f := newFixture(t, nil)
	ctx := f.ctx
	f.setup(t)

	assert.ErrorIs(t, f.svc.WithdrawToken(ctx, bob, kvn, "0"), core.ErrTokenNotDeposited)
	assert.ErrorIs(t, f.svc.WithdrawToken(ctx, alice, kvn, "7"), core.ErrTokenNotDeposited)

	_, err := f.svc.Borrow(ctx, alice, eth("0.1"), time.Hour)
	require.NoError(t, err)

	// borrow max 0.135 covers debt 0.11
	require.NoError(t, f.svc.WithdrawToken(ctx, alice, kvn, "1"))

	before := f.snapshot(t, alice)
	assert.ErrorIs(t, f.svc.WithdrawToken(ctx, alice, kvn, "0"), core.ErrWithdrawNotAllowed)
	assert.Equal(t, before, f.snapshot(t, alice))

	// worthless collateral leaves anytime
	const punks = "0xpunks"
	_, err = f.svc.ApproveProject(ctx, admin, punks)
	require.NoError(t, err)
	f.registry.Mint(punks, "9", alice)
	_, err = f.svc.DepositToken(ctx, alice, punks, "9")
	require.NoError(t, err)
	require.NoError(t, f.svc.WithdrawToken(ctx, alice, punks, "9"))
}

func TestWithdrawCustodyFailure(t *testing.T) {
	f := newFixture(t, nil)
	ctx := f.ctx
	f.setup(t)

	// moved out of the vault behind the engine
	f.registry.Mint(kvn, "1", bob)
	before := f.snapshot(t, alice)

	err := f.svc.WithdrawToken(ctx, alice, kvn, "1")
	assert.ErrorIs(t, err, core.ErrCustodyTransferFailed)
	assert.ErrorIs(t, err, custodian.ErrNotInCustody)
	assert.Equal(t, before, f.snapshot(t, alice))
}

func TestRepay(t *testing.T) {
	f := newFixture(t, nil)
	ctx := f.ctx
	f.setup(t)

	_, err := f.svc.Repay(ctx, alice, 42, eth("0.1"))
	assert.ErrorIs(t, err, core.ErrLoanNotFound)
	_, err = f.svc.Loan(ctx, 42)
	assert.ErrorIs(t, err, core.ErrLoanNotFound)

	l, err := f.svc.Borrow(ctx, alice, eth("0.15"), time.Hour)
	require.NoError(t, err)

	before := f.snapshot(t, alice)
	_, err = f.svc.Repay(ctx, alice, l.ID, eth("0.166"))
	assert.ErrorIs(t, err, core.ErrOverRepayment)
	_, err = f.svc.Repay(ctx, alice, l.ID, decimal.Zero)
	assert.ErrorIs(t, err, core.ErrInvalidAmount)
	assert.Equal(t, before, f.snapshot(t, alice))

	// anyone may repay, the borrower debt goes down
	_, err = f.svc.Repay(ctx, bob, l.ID, eth("0.065"))
	require.NoError(t, err)

	s := f.snapshot(t, alice)
	assert.Equal(t, "0.1", s.debt)
	assert.Equal(t, "9.915", s.treasury)

	bobAccount, err := f.stores.Accounts.Find(ctx, bob)
	require.NoError(t, err)
	assert.True(t, bobAccount.EthBorrowed.IsZero())
}

func TestLiquidatable(t *testing.T) {
	f := newFixture(t, nil)
	ctx := f.ctx
	f.setup(t)

	_, err := f.svc.Borrow(ctx, alice, eth("0.2"), time.Hour)
	require.NoError(t, err)

	// collateral 0.6, borrow max 0.18, debt 0.22
	_, err = f.svc.SetFloorValue(ctx, admin, kvn, eth("0.3"))
	require.NoError(t, err)

	score, err := f.svc.HealthScore(ctx, alice)
	require.NoError(t, err)
	assert.EqualValues(t, 81, score)

	summary, err := f.svc.Account(ctx, alice)
	require.NoError(t, err)
	assert.True(t, summary.Liquidatable)
}

func TestOracleUnavailable(t *testing.T) {
	f := newFixture(t, oracle.Fixed(decimal.Zero, 8))
	ctx := f.ctx
	f.setup(t)

	before := f.snapshot(t, alice)

	_, err := f.svc.Borrow(ctx, alice, eth("0.1"), time.Hour)
	assert.ErrorIs(t, err, core.ErrOracleUnavailable)
	assert.Equal(t, before, f.snapshot(t, alice))

	_, err = f.svc.EthToUSD(ctx, eth("1"))
	assert.ErrorIs(t, err, core.ErrOracleUnavailable)

	_, err = f.svc.FloorUSDValue(ctx, kvn)
	assert.ErrorIs(t, err, core.ErrOracleUnavailable)

	_, err = f.svc.Account(ctx, alice)
	assert.ErrorIs(t, err, core.ErrOracleUnavailable)

	// eth figures need no oracle
	borrowMax, err := f.svc.BorrowMax(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "0.27", borrowMax.String())
}

func TestFloorChangedByPeer(t *testing.T) {
	f := newFixture(t, nil)
	f.setup(t)
	cli := f.peer()

	// warm the server cache with floor 0.45
	v, err := f.svc.CollateralValue(f.ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "0.9", v.String())

	t.Run("borrow", func(t *testing.T) {
		_, err := cli.SetFloorValue(f.ctx, admin, kvn, eth("0"))
		require.NoError(t, err)

		_, err = f.svc.Borrow(f.ctx, alice, eth("0.2"), time.Hour)
		assert.ErrorIs(t, err, core.ErrInsufficientCollateral)
	})

	t.Run("withdraw", func(t *testing.T) {
		_, err := cli.SetFloorValue(f.ctx, admin, kvn, eth("0.45"))
		require.NoError(t, err)

		// 0.11 eth debt against 0.27 eth borrow max
		_, err = f.svc.Borrow(f.ctx, alice, eth("0.1"), time.Hour)
		require.NoError(t, err)

		v, err := f.svc.CollateralValue(f.ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, "0.9", v.String())

		// one token left at 0.1 covers 0.03 eth only
		_, err = cli.SetFloorValue(f.ctx, admin, kvn, eth("0.1"))
		require.NoError(t, err)

		err = f.svc.WithdrawToken(f.ctx, alice, kvn, "1")
		assert.ErrorIs(t, err, core.ErrWithdrawNotAllowed)
	})

	t.Run("server writes after peer writes", func(t *testing.T) {
		_, err := f.svc.SetFloorValue(f.ctx, admin, kvn, eth("0.5"))
		require.NoError(t, err)

		floor, err := cli.FloorValue(f.ctx, kvn)
		require.NoError(t, err)
		assert.Equal(t, "0.5", floor.String())
	})
}
