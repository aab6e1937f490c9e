package registry

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/kulkarohan/collections/collection"
)

// AssetClient reads canonical asset metadata and creator identity from
// the asset registry.
type AssetClient struct {
	c *resty.Client
}

func NewAssetClient(hostURL string) *AssetClient {
	c := resty.New()
	c.SetHostURL(hostURL)
	c.SetTimeout(10 * time.Second)
	return &AssetClient{c: c}
}

type assetView struct {
	Creator        string `json:"creator"`
	ContentURI     string `json:"content_uri"`
	MetadataURI    string `json:"metadata_uri"`
	MetadataDigest string `json:"metadata_digest"`
}

func (ac *AssetClient) CreatorOf(ctx context.Context, assetId string) (string, error) {
	view, err := ac.readAsset(ctx, assetId)
	if err != nil {
		return "", err
	}
	return view.Creator, nil
}

func (ac *AssetClient) ReadAsset(ctx context.Context, assetId string) (*collection.AssetDescriptor, error) {
	view, err := ac.readAsset(ctx, assetId)
	if err != nil {
		return nil, err
	}
	digest, err := hex.DecodeString(view.MetadataDigest)
	if err != nil || len(digest) != 32 {
		return nil, fmt.Errorf("asset registry returned invalid metadata digest %s", view.MetadataDigest)
	}
	desc := &collection.AssetDescriptor{
		Creator:     view.Creator,
		ContentURI:  view.ContentURI,
		MetadataURI: view.MetadataURI,
	}
	copy(desc.MetadataDigest[:], digest)
	return desc, nil
}

func (ac *AssetClient) readAsset(ctx context.Context, assetId string) (*assetView, error) {
	var view assetView
	resp, err := ac.c.R().SetContext(ctx).SetResult(&view).Get("/assets/" + assetId)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, collection.NewError(collection.ErrNotFound, "asset %s", assetId)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("asset registry %s => %d", assetId, resp.StatusCode())
	}
	return &view, nil
}
