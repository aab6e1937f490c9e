package collection

import (
	"context"
	"fmt"
	"sync"
)

// Core owns the collection, purchase and custody state. Every operation
// runs behind one mutex, matching the serialized all-or-nothing execution
// the store transactions assume, and covering the re-entrancy hazard of
// the custody transfer call.
type Core struct {
	mu      sync.RWMutex
	store   Store
	asset   AssetRegistry
	market  MarketRegistry
	sender  Transferor
	clock   *Clock
	owner   string
	workers []Worker
}

func BuildCore(store Store, asset AssetRegistry, market MarketRegistry, sender Transferor, owner string) (*Core, error) {
	if !validIdentity(owner) {
		return nil, fmt.Errorf("invalid owner identity %s", owner)
	}
	clock, err := NewClock(store)
	if err != nil {
		return nil, err
	}
	return &Core{
		store:  store,
		asset:  asset,
		market: market,
		sender: sender,
		clock:  clock,
		owner:  owner,
	}, nil
}

func (c *Core) AddWorker(wkr Worker) {
	c.workers = append(c.workers, wkr)
}

// SetAssetRegistry swaps the asset registry collaborator. The owner
// identity bound at construction is the only one allowed to do this.
func (c *Core) SetAssetRegistry(caller string, reg AssetRegistry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if caller != c.owner {
		return NewError(ErrUnauthorized, "caller %s is not the owner", caller)
	}
	c.asset = reg
	return nil
}

func (c *Core) SetMarketRegistry(caller string, reg MarketRegistry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if caller != c.owner {
		return NewError(ErrUnauthorized, "caller %s is not the owner", caller)
	}
	c.market = reg
	return nil
}

// Collection returns the stored record for id.
func (c *Core) Collection(id uint64) (*Collection, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	col, err := c.store.ReadCollection(id)
	if err != nil {
		return nil, err
	}
	if col == nil {
		return nil, NewError(ErrNotFound, "collection %d", id)
	}
	return col, nil
}

func (c *Core) dispatch(ctx context.Context, e *Event) {
	for _, wkr := range c.workers {
		wkr.ProcessEvent(ctx, e)
	}
}
