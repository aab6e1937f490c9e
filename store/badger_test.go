package store

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kulkarohan/collections/collection"
	"github.com/shopspring/decimal"
)

const (
	testAsset   = "5e6f7a8b-9c0d-4e2f-9a3b-5c6d7e8f9a0b"
	testCreator = "9d2b1c4e-0f3a-4b5c-8d6e-7f8a9b0c1d2e"
	testBuyer   = "1a2b3c4d-5e6f-4a8b-9c0d-1e2f3a4b5c6d"
)

func openTestStore(t *testing.T) *BadgerStore {
	t.Helper()
	bs, err := OpenBadger(context.Background(), t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { bs.Close() })
	return bs
}

func testCollection(supply uint64, price string) *collection.Collection {
	return &collection.Collection{
		AssetId:   testAsset,
		Creator:   testCreator,
		Supply:    supply,
		Price:     decimal.RequireFromString(price),
		CreatedAt: time.Now(),
	}
}

func testPurchase(buyer string) *collection.PurchaseRecord {
	return &collection.PurchaseRecord{
		Buyer: buyer,
		Asset: &collection.AssetSnapshot{
			SourceURI:         "ipfs://content",
			SourceMetadataURI: "ipfs://meta",
			ContentDigest:     [32]byte{1, 2, 3},
		},
		Royalty: &collection.RoyaltySplit{
			Shares: []*collection.RoyaltyShare{
				{Recipient: testCreator, Percent: decimal.RequireFromString("12.5")},
			},
		},
		CreatedAt: time.Now(),
	}
}

func TestProperty(t *testing.T) {
	bs := openTestStore(t)

	val, err := bs.ReadProperty([]byte("missing"))
	if err != nil || val != nil {
		t.Fatalf("missing property: %v %v", val, err)
	}
	if err := bs.WriteProperty([]byte("k"), []byte("v")); err != nil {
		t.Fatal(err)
	}
	val, err = bs.ReadProperty([]byte("k"))
	if err != nil || !bytes.Equal(val, []byte("v")) {
		t.Fatalf("property roundtrip: %q %v", val, err)
	}
}

func TestWriteCollection(t *testing.T) {
	bs := openTestStore(t)

	for want := uint64(1); want <= 3; want++ {
		id, err := bs.WriteCollection(testCollection(5, "12.5"))
		if err != nil {
			t.Fatal(err)
		}
		if id != want {
			t.Fatalf("collection id: got %d, want %d", id, want)
		}
	}

	col, err := bs.ReadCollection(2)
	if err != nil {
		t.Fatal(err)
	}
	if col.Id != 2 || col.AssetId != testAsset || col.Supply != 5 || col.Sold != 0 {
		t.Errorf("collection roundtrip: %+v", col)
	}
	if !col.Price.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("price roundtrip: %s", col.Price)
	}

	col, err = bs.ReadCollection(9)
	if err != nil || col != nil {
		t.Errorf("missing collection: %v %v", col, err)
	}
}

func TestWritePurchase(t *testing.T) {
	bs := openTestStore(t)
	id, err := bs.WriteCollection(testCollection(1, "10"))
	if err != nil {
		t.Fatal(err)
	}

	tokenId, err := bs.WritePurchase(id, testPurchase(testBuyer))
	if err != nil {
		t.Fatal(err)
	}
	if tokenId != 1 {
		t.Fatalf("token id: got %d, want 1", tokenId)
	}

	col, _ := bs.ReadCollection(id)
	if col.Sold != 1 {
		t.Errorf("sold count: got %d, want 1", col.Sold)
	}
	balance, _ := bs.ReadCustodyBalance()
	if !balance.Equal(decimal.RequireFromString("10")) {
		t.Errorf("custody balance: got %s, want 10", balance)
	}

	rec, err := bs.ReadPurchase(tokenId)
	if err != nil {
		t.Fatal(err)
	}
	if rec.TokenId != tokenId || rec.CollectionId != id || rec.Buyer != testBuyer {
		t.Errorf("purchase roundtrip: %+v", rec)
	}
	if rec.Asset.SourceURI != "ipfs://content" || rec.Asset.ContentDigest != [32]byte{1, 2, 3} {
		t.Errorf("asset snapshot roundtrip: %+v", rec.Asset)
	}
	if len(rec.Royalty.Shares) != 1 || !rec.Royalty.Shares[0].Percent.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("royalty roundtrip: %+v", rec.Royalty.Shares)
	}

	// supply cap enforced inside the transaction
	_, err = bs.WritePurchase(id, testPurchase(testBuyer))
	if collection.Code(err) != collection.ErrExhausted {
		t.Fatalf("over-supply purchase: got %v, want EXHAUSTED", err)
	}
	col, _ = bs.ReadCollection(id)
	if col.Sold != 1 {
		t.Errorf("sold after rejected purchase: got %d, want 1", col.Sold)
	}
}

func TestSpendCustody(t *testing.T) {
	bs := openTestStore(t)
	id, err := bs.WriteCollection(testCollection(2, "10"))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		if _, err := bs.WritePurchase(id, testPurchase(testBuyer)); err != nil {
			t.Fatal(err)
		}
	}

	amount := decimal.RequireFromString("20")
	err = bs.SpendCustody(id, amount.Add(decimal.New(1, 0)), func() error { return nil })
	if collection.Code(err) != collection.ErrInsufficientCustody {
		t.Fatalf("overdraw: got %v, want INSUFFICIENT_CUSTODY", err)
	}

	rejected := errors.New("recipient offline")
	err = bs.SpendCustody(id, amount, func() error { return rejected })
	if !errors.Is(err, rejected) {
		t.Fatalf("transfer error not surfaced: %v", err)
	}
	withdrawn, _ := bs.ReadWithdrawn(id)
	if !withdrawn.IsZero() {
		t.Errorf("withdrawn after rollback: got %s, want 0", withdrawn)
	}
	balance, _ := bs.ReadCustodyBalance()
	if !balance.Equal(amount) {
		t.Errorf("balance after rollback: got %s, want %s", balance, amount)
	}

	var transferred bool
	err = bs.SpendCustody(id, amount, func() error { transferred = true; return nil })
	if err != nil {
		t.Fatal(err)
	}
	if !transferred {
		t.Error("transfer not executed")
	}
	withdrawn, _ = bs.ReadWithdrawn(id)
	if !withdrawn.Equal(amount) {
		t.Errorf("withdrawn after spend: got %s, want %s", withdrawn, amount)
	}
	balance, _ = bs.ReadCustodyBalance()
	if !balance.IsZero() {
		t.Errorf("balance after spend: got %s, want 0", balance)
	}
}
