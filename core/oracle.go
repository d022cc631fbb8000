package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PriceFeed latest answer of the eth/usd feed
type PriceFeed struct {
	// fixed point, Decimals digits
	Answer    decimal.Decimal `json:"answer"`
	Decimals  int32           `json:"decimals"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Price answer as a plain decimal
func (f *PriceFeed) Price() decimal.Decimal {
	return f.Answer.Shift(-f.Decimals)
}

// IOracle converts base currency (eth) amounts into the quote currency (usd)
type IOracle interface {
	Convert(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error)
}

// IPriceFeedService pulls the feed answer from the price service
type IPriceFeedService interface {
	Pull(ctx context.Context) (*PriceFeed, error)
}
