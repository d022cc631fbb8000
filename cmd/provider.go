package cmd

import (
	"time"

	"nftlend/core"
	"nftlend/service/custodian"
	"nftlend/service/lending"
	"nftlend/service/oracle"
	"nftlend/service/wallet"
	"nftlend/store/account"
	"nftlend/store/loan"
	"nftlend/store/project"
	"nftlend/store/token"
	"nftlend/store/transaction"
	"nftlend/store/transfer"
	"nftlend/store/treasury"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/shopspring/decimal"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideConfig() *core.Config {
	return &cfg
}

// ---------------store-----------------------------------------

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

func provideStores(db *db.DB) lending.Stores {
	return lending.Stores{
		Projects:     project.Cache(project.New(db), time.Minute),
		Tokens:       token.New(db),
		Accounts:     account.New(db),
		Loans:        loan.New(db),
		Treasury:     treasury.New(db),
		Transactions: transaction.New(db),
		Transfers:    transfer.New(db),
	}
}

// ------------------service------------------------------------

// provideOracle the configured answer wins, otherwise the answer saved by the price worker
func provideOracle(db *db.DB) core.IOracle {
	if cfg.PriceOracle.Answer != "" {
		answer, err := decimal.NewFromString(cfg.PriceOracle.Answer)
		if err != nil {
			panic(err)
		}

		return oracle.New(oracle.Fixed(answer, cfg.PriceOracle.Decimals), 0)
	}

	return oracle.New(oracle.Property(providePropertyStore(db)), cfg.PriceOracle.MaxAge)
}

func providePriceFeedService() core.IPriceFeedService {
	return oracle.NewFeedService(cfg.PriceOracle)
}

// provideCustodian in memory only when simulating, a real deployment needs the remote registry
func provideCustodian() core.ICustodian {
	if cfg.App.Simulate {
		return custodian.NewRegistry(cfg.App.Name + ":vault")
	}

	if cfg.Custodian.EndPoint == "" {
		panic("custodian.end_point required, set app.simulate to run in memory")
	}

	return custodian.NewRemote(cfg.Custodian)
}

func provideWalletService() core.IWalletService {
	if cfg.App.Simulate {
		return wallet.NewLedger()
	}

	if cfg.Wallet.EndPoint == "" {
		panic("wallet.end_point required, set app.simulate to run in memory")
	}

	return wallet.New(cfg.Wallet)
}

func provideLendingService(db *db.DB, stores lending.Stores) core.ILendingService {
	return lending.New(db,
		provideConfig(),
		stores,
		provideOracle(db),
		provideCustodian(),
		provideWalletService())
}
