package registry

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kulkarohan/collections/collection"
	"github.com/shopspring/decimal"
)

const testAsset = "5e6f7a8b-9c0d-4e2f-9a3b-5c6d7e8f9a0b"

func testDigest() [32]byte {
	var d [32]byte
	for i := range d {
		d[i] = byte(i)
	}
	return d
}

func newRegistryServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/assets/"+testAsset, func(w http.ResponseWriter, r *http.Request) {
		digest := testDigest()
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"creator":"9d2b1c4e-0f3a-4b5c-8d6e-7f8a9b0c1d2e","content_uri":"ipfs://content","metadata_uri":"ipfs://meta","metadata_digest":"%s"}`,
			hex.EncodeToString(digest[:]))
	})
	mux.HandleFunc("/markets/"+testAsset+"/royalty", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"shares":[{"recipient":"9d2b1c4e-0f3a-4b5c-8d6e-7f8a9b0c1d2e","percent":"12.5"}]}`)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestAssetClient(t *testing.T) {
	srv := newRegistryServer(t)
	ac := NewAssetClient(srv.URL)
	ctx := context.Background()

	creator, err := ac.CreatorOf(ctx, testAsset)
	if err != nil {
		t.Fatal(err)
	}
	if creator != "9d2b1c4e-0f3a-4b5c-8d6e-7f8a9b0c1d2e" {
		t.Errorf("creator: %s", creator)
	}

	desc, err := ac.ReadAsset(ctx, testAsset)
	if err != nil {
		t.Fatal(err)
	}
	if desc.ContentURI != "ipfs://content" || desc.MetadataURI != "ipfs://meta" {
		t.Errorf("descriptor: %+v", desc)
	}
	if desc.MetadataDigest != testDigest() {
		t.Errorf("metadata digest: %x", desc.MetadataDigest)
	}

	_, err = ac.ReadAsset(ctx, "00000000-0000-0000-0000-000000000001")
	if collection.Code(err) != collection.ErrNotFound {
		t.Errorf("unknown asset: got %v, want NOT_FOUND", err)
	}
}

func TestMarketClient(t *testing.T) {
	srv := newRegistryServer(t)
	mc := NewMarketClient(srv.URL)
	ctx := context.Background()

	split, err := mc.ReadRoyaltySplit(ctx, testAsset)
	if err != nil {
		t.Fatal(err)
	}
	if len(split.Shares) != 1 {
		t.Fatalf("shares: %+v", split.Shares)
	}
	if !split.Shares[0].Percent.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("percent: %s", split.Shares[0].Percent)
	}

	_, err = mc.ReadRoyaltySplit(ctx, "00000000-0000-0000-0000-000000000001")
	if collection.Code(err) != collection.ErrNotFound {
		t.Errorf("unknown split: got %v, want NOT_FOUND", err)
	}
}
