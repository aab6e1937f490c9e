package collection

import (
	"context"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
)

// CreateCollection opens a fixed-supply, fixed-price batch of purchasable
// slots backed by assetId. Only the asset's recorded creator may create
// one. A zero supply is accepted, such a collection can never be bought
// from.
func (c *Core) CreateCollection(ctx context.Context, supply uint64, price decimal.Decimal, creator, assetId, caller string) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !validIdentity(assetId) {
		return 0, NewError(ErrInvalidRequest, "invalid asset id %s", assetId)
	}
	if !validIdentity(creator) {
		return 0, NewError(ErrInvalidRequest, "invalid creator address %s", creator)
	}
	if price.Sign() < 0 {
		return 0, NewError(ErrInvalidRequest, "negative price %s", price)
	}

	owner, err := c.asset.CreatorOf(ctx, assetId)
	if err != nil {
		return 0, err
	}
	if owner != caller {
		return 0, NewError(ErrUnauthorized, "caller %s is not the creator of asset %s", caller, assetId)
	}

	col := &Collection{
		AssetId:   assetId,
		Creator:   creator,
		Supply:    supply,
		Price:     price,
		Sold:      0,
		CreatedAt: c.clock.Now(),
	}
	id, err := c.store.WriteCollection(col)
	if err != nil {
		return 0, err
	}

	c.dispatch(ctx, &Event{
		Type:         EventCollectionCreated,
		CollectionId: id,
		AssetId:      assetId,
		Creator:      creator,
		Supply:       supply,
		Price:        price,
		CreatedAt:    col.CreatedAt,
	})
	return id, nil
}

func validIdentity(id string) bool {
	uid, _ := uuid.FromString(id)
	return uid.String() != uuid.Nil.String()
}
