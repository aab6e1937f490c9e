package collection

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Store interface {
	WriteProperty(key, val []byte) error
	ReadProperty(key []byte) ([]byte, error)

	WriteCollection(col *Collection) (uint64, error)
	ReadCollection(id uint64) (*Collection, error)

	WritePurchase(collectionId uint64, rec *PurchaseRecord) (uint64, error)
	ReadPurchase(tokenId uint64) (*PurchaseRecord, error)

	ReadWithdrawn(collectionId uint64) (decimal.Decimal, error)
	ReadCustodyBalance() (decimal.Decimal, error)
	SpendCustody(collectionId uint64, amount decimal.Decimal, transfer func() error) error
}

// AssetRegistry is the system of record for canonical asset metadata
// and creator identity. The core only ever reads from it.
type AssetRegistry interface {
	CreatorOf(ctx context.Context, assetId string) (string, error)
	ReadAsset(ctx context.Context, assetId string) (*AssetDescriptor, error)
}

// MarketRegistry owns the royalty split configuration per asset.
type MarketRegistry interface {
	ReadRoyaltySplit(ctx context.Context, assetId string) (*RoyaltySplit, error)
}

// Transferor executes value transfers out of custody. The recipient may
// run arbitrary logic on receipt, so the core never calls it without
// holding its serialization lock.
type Transferor interface {
	Transfer(ctx context.Context, receiver string, amount decimal.Decimal, memo string) error
}

type Collection struct {
	Id        uint64
	AssetId   string
	Creator   string
	Supply    uint64
	Price     decimal.Decimal
	Sold      uint64
	CreatedAt time.Time
}

type AssetDescriptor struct {
	Creator        string
	ContentURI     string
	MetadataURI    string
	MetadataDigest [32]byte
}

type AssetSnapshot struct {
	SourceURI            string
	SourceMetadataURI    string
	ContentDigest        [32]byte
	SourceMetadataDigest [32]byte
}

type RoyaltyShare struct {
	Recipient string
	Percent   decimal.Decimal
}

// RoyaltySplit is stored verbatim as fetched from the market registry,
// its semantics belong to that collaborator.
type RoyaltySplit struct {
	Shares []*RoyaltyShare
}

type PurchaseRecord struct {
	TokenId      uint64
	CollectionId uint64
	Buyer        string
	Asset        *AssetSnapshot
	Royalty      *RoyaltySplit
	CreatedAt    time.Time
}
