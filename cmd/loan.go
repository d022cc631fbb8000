package cmd

import (
	"time"

	"nftlend/handler/views"
	"nftlend/pkg/number"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

var borrowCmd = &cobra.Command{
	Use:     "borrow <amount>",
	Aliases: []string{"b"},
	Short:   "borrow eth against the deposited collateral",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		amount, err := number.Amount(args[0])
		if err != nil {
			cmd.PrintErrln("invalid amount:", err)
			return
		}

		duration, _ := cmd.Flags().GetDuration("duration")

		database := provideDatabase()
		defer database.Close()

		lendingService := provideLendingService(database, provideStores(database))
		loan, err := lendingService.Borrow(ctx, caller(cmd), amount, duration)
		if err != nil {
			cmd.PrintErrln("borrow error:", err)
			return
		}

		printJSON(cmd, views.LoanView(loan, time.Now()))
	},
}

var repayCmd = &cobra.Command{
	Use:     "repay <loan id> <amount>",
	Aliases: []string{"r"},
	Short:   "repay the loan",
	Args:    cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		loanID, err := cast.ToUint64E(args[0])
		if err != nil {
			cmd.PrintErrln("invalid loan id:", err)
			return
		}

		amount, err := number.Amount(args[1])
		if err != nil {
			cmd.PrintErrln("invalid amount:", err)
			return
		}

		database := provideDatabase()
		defer database.Close()

		lendingService := provideLendingService(database, provideStores(database))
		loan, err := lendingService.Repay(ctx, caller(cmd), loanID, amount)
		if err != nil {
			cmd.PrintErrln("repay error:", err)
			return
		}

		printJSON(cmd, views.LoanView(loan, time.Now()))
	},
}

func init() {
	rootCmd.AddCommand(borrowCmd)
	borrowCmd.Flags().Duration("duration", 30*24*time.Hour, "loan duration")

	rootCmd.AddCommand(repayCmd)
}
