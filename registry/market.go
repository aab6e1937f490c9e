package registry

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/kulkarohan/collections/collection"
	"github.com/shopspring/decimal"
)

// MarketClient reads royalty split configuration from the market
// registry. Splits are passed through verbatim.
type MarketClient struct {
	c *resty.Client
}

func NewMarketClient(hostURL string) *MarketClient {
	c := resty.New()
	c.SetHostURL(hostURL)
	c.SetTimeout(10 * time.Second)
	return &MarketClient{c: c}
}

type splitView struct {
	Shares []struct {
		Recipient string          `json:"recipient"`
		Percent   decimal.Decimal `json:"percent"`
	} `json:"shares"`
}

func (mc *MarketClient) ReadRoyaltySplit(ctx context.Context, assetId string) (*collection.RoyaltySplit, error) {
	var view splitView
	resp, err := mc.c.R().SetContext(ctx).SetResult(&view).Get("/markets/" + assetId + "/royalty")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, collection.NewError(collection.ErrNotFound, "royalty split for asset %s", assetId)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("market registry %s => %d", assetId, resp.StatusCode())
	}

	split := &collection.RoyaltySplit{}
	for _, s := range view.Shares {
		split.Shares = append(split.Shares, &collection.RoyaltyShare{
			Recipient: s.Recipient,
			Percent:   s.Percent,
		})
	}
	return split, nil
}
