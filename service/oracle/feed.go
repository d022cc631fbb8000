package oracle

import (
	"context"
	"fmt"
	"time"

	"nftlend/core"
	"nftlend/pkg/resthttp"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

type feedService struct {
	endpoint string
	decimals int32
}

// NewFeedService pull the eth/usd answer from the price service at endpoint
func NewFeedService(cfg core.PriceOracle) core.IPriceFeedService {
	return &feedService{
		endpoint: cfg.EndPoint,
		decimals: cfg.Decimals,
	}
}

type answerResponse struct {
	Answer    decimal.Decimal `json:"answer"`
	Decimals  *int32          `json:"decimals,omitempty"`
	UpdatedAt int64           `json:"updated_at"`
}

func (s *feedService) Pull(ctx context.Context) (*core.PriceFeed, error) {
	url := fmt.Sprintf("%s/api/feeds/eth-usd", s.endpoint)
	logger.FromContext(ctx).Debugln("pull price feed:", url)

	var resp answerResponse
	if _, err := resthttp.Execute(resthttp.Request(ctx), "GET", url, nil, &resp); err != nil {
		return nil, err
	}

	feed := core.PriceFeed{
		Answer:    resp.Answer,
		Decimals:  s.decimals,
		UpdatedAt: time.Now(),
	}

	if resp.Decimals != nil {
		feed.Decimals = *resp.Decimals
	}

	if resp.UpdatedAt > 0 {
		feed.UpdatedAt = time.Unix(resp.UpdatedAt, 0)
	}

	return &feed, nil
}
