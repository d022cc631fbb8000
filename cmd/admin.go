package cmd

import (
	"encoding/json"

	"nftlend/pkg/number"

	"github.com/spf13/cobra"
)

func printJSON(cmd *cobra.Command, v interface{}) {
	bts, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		cmd.PrintErrln(err)
		return
	}

	cmd.Println(string(bts))
}

func caller(cmd *cobra.Command) string {
	account, _ := cmd.Flags().GetString("account")
	if account == "" {
		cmd.PrintErrln("--account required")
	}

	return account
}

var approveProjectCmd = &cobra.Command{
	Use:     "approve-project <project>",
	Aliases: []string{"ap"},
	Short:   "approve the nft project as collateral",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		database := provideDatabase()
		defer database.Close()

		lendingService := provideLendingService(database, provideStores(database))
		project, err := lendingService.ApproveProject(ctx, caller(cmd), args[0])
		if err != nil {
			cmd.PrintErrln("approve project error:", err)
			return
		}

		printJSON(cmd, project)
	},
}

var setFloorCmd = &cobra.Command{
	Use:     "set-floor <project> <floor value>",
	Aliases: []string{"sf"},
	Short:   "set the floor value (eth) of an approved project",
	Args:    cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		value, err := number.Amount(args[1])
		if err != nil {
			cmd.PrintErrln("invalid floor value:", err)
			return
		}

		database := provideDatabase()
		defer database.Close()

		lendingService := provideLendingService(database, provideStores(database))
		project, err := lendingService.SetFloorValue(ctx, caller(cmd), args[0], value)
		if err != nil {
			cmd.PrintErrln("set floor error:", err)
			return
		}

		printJSON(cmd, project)
	},
}

var depositFundsCmd = &cobra.Command{
	Use:     "deposit-funds <amount>",
	Aliases: []string{"df"},
	Short:   "add eth to the treasury",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		amount, err := number.Amount(args[0])
		if err != nil {
			cmd.PrintErrln("invalid amount:", err)
			return
		}

		database := provideDatabase()
		defer database.Close()

		lendingService := provideLendingService(database, provideStores(database))
		treasury, err := lendingService.DepositFunds(ctx, caller(cmd), amount)
		if err != nil {
			cmd.PrintErrln("deposit funds error:", err)
			return
		}

		printJSON(cmd, treasury)
	},
}

func init() {
	rootCmd.PersistentFlags().StringP("account", "a", "", "calling account")

	rootCmd.AddCommand(approveProjectCmd)
	rootCmd.AddCommand(setFloorCmd)
	rootCmd.AddCommand(depositFundsCmd)
}
