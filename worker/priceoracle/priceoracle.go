package priceoracle

import (
	"context"
	"errors"
	"time"

	"nftlend/core"
	"nftlend/service/oracle"
	"nftlend/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
	"github.com/robfig/cron/v3"
)

// ErrInvalidAnswer feed answer is not positive
var ErrInvalidAnswer = errors.New("invalid feed answer")

// Worker price feed worker, saves the latest eth/usd answer for the oracle
type Worker struct {
	worker.BaseJob
	FeedService   core.IPriceFeedService
	PropertyStore property.Store
}

// New new price feed worker
func New(location, spec string, feedService core.IPriceFeedService, propertyStore property.Store) *Worker {
	job := Worker{
		FeedService:   feedService,
		PropertyStore: propertyStore,
	}

	l, err := time.LoadLocation(location)
	if err != nil {
		l = time.UTC
	}

	job.Cron = cron.New(cron.WithLocation(l))
	if spec == "" {
		spec = "@every 30s"
	}
	job.Cron.AddFunc(spec, job.Run)
	job.OnWork = func() error {
		return job.onWork(context.Background())
	}

	return &job
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "priceoracle")

	feed, err := w.FeedService.Pull(ctx)
	if err != nil {
		log.WithError(err).Errorln("pull price feed")
		return err
	}

	if !feed.Answer.IsPositive() {
		log.Errorln("invalid feed answer:", feed.Answer)
		return ErrInvalidAnswer
	}

	if err := oracle.SaveFeed(ctx, w.PropertyStore, feed); err != nil {
		log.WithError(err).Errorln("property.Save")
		return err
	}

	log.WithField("price", feed.Price()).Debugln("price feed saved")
	return nil
}
