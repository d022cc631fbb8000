package oracle

import (
	"context"
	"fmt"
	"time"

	"nftlend/core"

	"github.com/shopspring/decimal"
)

// MaxPricision wei
const MaxPricision int32 = 18

// FeedSource where the oracle reads the latest feed answer
type FeedSource interface {
	Feed(ctx context.Context) (*core.PriceFeed, error)
}

type oracle struct {
	source FeedSource
	maxAge time.Duration
	now    func() time.Time
}

// New new oracle converting eth into usd with the feed answer of source
//
// answers older than maxAge are rejected, zero maxAge accepts any age
func New(source FeedSource, maxAge time.Duration) core.IOracle {
	return &oracle{
		source: source,
		maxAge: maxAge,
		now:    time.Now,
	}
}

// Convert amount * answer / 10^decimals, truncated to wei
func (o *oracle) Convert(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error) {
	feed, err := o.source.Feed(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %w", core.ErrOracleUnavailable, err)
	}

	if feed == nil || !feed.Answer.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: no answer", core.ErrOracleUnavailable)
	}

	if o.maxAge > 0 && !feed.UpdatedAt.IsZero() && o.now().Sub(feed.UpdatedAt) > o.maxAge {
		return decimal.Zero, fmt.Errorf("%w: answer updated at %s", core.ErrOracleUnavailable, feed.UpdatedAt.Format(time.RFC3339))
	}

	return amount.Mul(feed.Answer).Shift(-feed.Decimals).Truncate(MaxPricision), nil
}

type fixedFeed struct {
	feed core.PriceFeed
}

// Fixed feed source always answering with answer
func Fixed(answer decimal.Decimal, decimals int32) FeedSource {
	return &fixedFeed{
		feed: core.PriceFeed{
			Answer:   answer,
			Decimals: decimals,
		},
	}
}

func (f *fixedFeed) Feed(ctx context.Context) (*core.PriceFeed, error) {
	feed := f.feed
	return &feed, nil
}
