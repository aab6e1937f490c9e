package collection

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventCollectionCreated   = "CollectionCreated"
	EventCollectionPurchased = "CollectionPurchased"
)

type Event struct {
	Type         string
	CollectionId uint64
	AssetId      string
	Creator      string
	Supply       uint64
	Price        decimal.Decimal
	Buyer        string
	TokenId      uint64
	CreatedAt    time.Time
}

type Worker interface {
	ProcessEvent(context.Context, *Event)
}
