package cmd

import (
	"nftlend/worker"
	"nftlend/worker/priceoracle"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "nftlend job worker",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		database := provideDatabase()
		defer database.Close()

		spec, _ := cmd.Flags().GetString("spec")
		jobs := []worker.IJob{
			priceoracle.New(cfg.App.Location, spec, providePriceFeedService(), providePropertyStore(database)),
		}

		for _, job := range jobs {
			if err := job.Start(); err != nil {
				log.WithError(err).Fatalln("start job")
			}
		}

		ctx = signal.WithContext(ctx)

		log.Infoln("worker started")
		<-ctx.Done()

		for _, job := range jobs {
			job.Stop()
		}

		log.Infoln("worker stopped")
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
	workerCmd.Flags().String("spec", "@every 30s", "cron spec of the price feed pull")
}
