package oracle

import (
	"context"
	"encoding/json"
	"errors"

	"nftlend/core"

	"github.com/fox-one/pkg/property"
)

// PropertyKey property holding the latest feed answer
const PropertyKey = "oracle:eth_usd_feed"

// ErrNoFeed no answer saved yet
var ErrNoFeed = errors.New("no price feed saved")

type propertyFeed struct {
	properties property.Store
}

// Property feed source reading the answer saved by the price feed worker
func Property(properties property.Store) FeedSource {
	return &propertyFeed{
		properties: properties,
	}
}

func (f *propertyFeed) Feed(ctx context.Context) (*core.PriceFeed, error) {
	v, err := f.properties.Get(ctx, PropertyKey)
	if err != nil {
		return nil, err
	}

	raw := v.String()
	if raw == "" {
		return nil, ErrNoFeed
	}

	var feed core.PriceFeed
	if err := json.Unmarshal([]byte(raw), &feed); err != nil {
		return nil, err
	}

	return &feed, nil
}

// SaveFeed save the feed answer for Property sources
func SaveFeed(ctx context.Context, properties property.Store, feed *core.PriceFeed) error {
	bts, err := json.Marshal(feed)
	if err != nil {
		return err
	}

	return properties.Save(ctx, PropertyKey, string(bts))
}
