package cmd

import (
	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/spf13/cobra"
)

// migrate creates the lending tables, stores register their models on import
var migrateCmd = &cobra.Command{
	Use:     "migrate",
	Aliases: []string{"setdb"},
	Short:   "migrate the lending tables",
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.FromContext(cmd.Context()).WithField("dialect", cfg.DB.Dialect)

		database := provideDatabase()
		defer database.Close()

		// properties table of the price feed
		_ = providePropertyStore(database)

		if err := db.Migrate(database); err != nil {
			log.WithError(err).Errorln("migrate database")
			return
		}

		log.Infoln("database migrated")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
