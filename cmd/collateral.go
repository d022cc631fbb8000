package cmd

import (
	"github.com/spf13/cobra"
)

var depositNFTCmd = &cobra.Command{
	Use:     "deposit-nft <project> <token id>",
	Aliases: []string{"dn"},
	Short:   "deposit the nft as collateral",
	Args:    cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		database := provideDatabase()
		defer database.Close()

		lendingService := provideLendingService(database, provideStores(database))
		token, err := lendingService.DepositToken(ctx, caller(cmd), args[0], args[1])
		if err != nil {
			cmd.PrintErrln("deposit nft error:", err)
			return
		}

		printJSON(cmd, token)
	},
}

var withdrawNFTCmd = &cobra.Command{
	Use:     "withdraw-nft <project> <token id>",
	Aliases: []string{"wn"},
	Short:   "withdraw the deposited nft",
	Args:    cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		database := provideDatabase()
		defer database.Close()

		lendingService := provideLendingService(database, provideStores(database))
		if err := lendingService.WithdrawToken(ctx, caller(cmd), args[0], args[1]); err != nil {
			cmd.PrintErrln("withdraw nft error:", err)
			return
		}

		cmd.Println("withdrawn", args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(depositNFTCmd)
	rootCmd.AddCommand(withdrawNFTCmd)
}
