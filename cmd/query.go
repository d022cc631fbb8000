package cmd

import (
	"time"

	"nftlend/handler/views"
	"nftlend/pkg/number"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:   "account <address>",
	Short: "show collateral, debt and health of the account",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		database := provideDatabase()
		defer database.Close()

		lendingService := provideLendingService(database, provideStores(database))
		summary, err := lendingService.Account(ctx, args[0])
		if err != nil {
			cmd.PrintErrln("account error:", err)
			return
		}

		printJSON(cmd, views.AccountView(summary, time.Now()))
	},
}

var loanCmd = &cobra.Command{
	Use:   "loan <id>",
	Short: "show the loan",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		database := provideDatabase()
		defer database.Close()

		lendingService := provideLendingService(database, provideStores(database))
		loan, err := lendingService.Loan(ctx, cast.ToUint64(args[0]))
		if err != nil {
			cmd.PrintErrln("loan error:", err)
			return
		}

		printJSON(cmd, views.LoanView(loan, time.Now()))
	},
}

var treasuryCmd = &cobra.Command{
	Use:   "treasury",
	Short: "show the treasury balance",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		database := provideDatabase()
		defer database.Close()

		lendingService := provideLendingService(database, provideStores(database))
		treasury, err := lendingService.Treasury(ctx)
		if err != nil {
			cmd.PrintErrln("treasury error:", err)
			return
		}

		printJSON(cmd, treasury)
	},
}

var ethToUSDCmd = &cobra.Command{
	Use:   "eth-to-usd <amount>",
	Short: "convert eth into usd with the oracle",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		amount, err := number.Amount(args[0])
		if err != nil {
			cmd.PrintErrln("invalid amount:", err)
			return
		}

		database := provideDatabase()
		defer database.Close()

		usd, err := provideOracle(database).Convert(ctx, amount)
		if err != nil {
			cmd.PrintErrln("convert error:", err)
			return
		}

		cmd.Println(usd.String())
	},
}

func init() {
	rootCmd.AddCommand(accountCmd)
	rootCmd.AddCommand(loanCmd)
	rootCmd.AddCommand(treasuryCmd)
	rootCmd.AddCommand(ethToUSDCmd)
}
