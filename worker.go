package main

import (
	"context"
	"log/slog"

	"github.com/kulkarohan/collections/collection"
	"github.com/shopspring/decimal"
)

// EventWorker reports collection events to the process log.
type EventWorker struct{}

func (ew *EventWorker) ProcessEvent(ctx context.Context, e *collection.Event) {
	switch e.Type {
	case collection.EventCollectionCreated:
		slog.Info(e.Type, "collection", e.CollectionId, "asset", e.AssetId,
			"creator", e.Creator, "supply", e.Supply, "price", e.Price)
	case collection.EventCollectionPurchased:
		slog.Info(e.Type, "collection", e.CollectionId, "buyer", e.Buyer, "token", e.TokenId)
	}
}

// StubTransferor accepts every transfer and only logs it, for
// deployments where settlement runs outside this process.
type StubTransferor struct{}

func (st *StubTransferor) Transfer(ctx context.Context, receiver string, amount decimal.Decimal, memo string) error {
	slog.Info("transfer", "receiver", receiver, "amount", amount, "memo", memo)
	return nil
}
