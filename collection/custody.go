package collection

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// WithdrawFunds moves everything the collection has earned but not yet
// paid out to its recorded creator. Any caller may trigger it, funds
// only ever reach the creator. The withdrawn-amount ledger is written
// before the transfer runs, inside the same store transaction, so a
// rejected transfer rolls the accounting back whole.
func (c *Core) WithdrawFunds(ctx context.Context, collectionId uint64, caller string) (decimal.Decimal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	col, err := c.store.ReadCollection(collectionId)
	if err != nil {
		return decimal.Zero, err
	}
	if col == nil {
		return decimal.Zero, NewError(ErrNotFound, "collection %d", collectionId)
	}
	withdrawn, err := c.store.ReadWithdrawn(collectionId)
	if err != nil {
		return decimal.Zero, err
	}

	total := col.Price.Mul(decimal.NewFromInt(int64(col.Sold)))
	remaining := total.Sub(withdrawn)
	if remaining.Sign() <= 0 {
		return decimal.Zero, nil
	}

	memo := fmt.Sprintf("collection %d withdrawal", collectionId)
	err = c.store.SpendCustody(collectionId, remaining, func() error {
		return c.sender.Transfer(ctx, col.Creator, remaining, memo)
	})
	if err != nil {
		return decimal.Zero, err
	}
	return remaining, nil
}

// Withdrawn returns the amount already paid out for the collection.
func (c *Core) Withdrawn(collectionId uint64) (decimal.Decimal, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	col, err := c.store.ReadCollection(collectionId)
	if err != nil {
		return decimal.Zero, err
	}
	if col == nil {
		return decimal.Zero, NewError(ErrNotFound, "collection %d", collectionId)
	}
	return c.store.ReadWithdrawn(collectionId)
}

// CustodyBalance returns the funds currently held pending withdrawal.
func (c *Core) CustodyBalance() (decimal.Decimal, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.store.ReadCustodyBalance()
}
