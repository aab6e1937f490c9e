package collection

import (
	"context"
	"encoding/binary"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zeebo/blake3"
)

// BuyCollection sells one slot of the collection to caller for exactly
// the listed price. The new token carries snapshots of the asset and
// royalty registries taken now; the record write, sold-count increment,
// token sequence bump and custody credit commit together or not at all.
func (c *Core) BuyCollection(ctx context.Context, collectionId uint64, payment decimal.Decimal, caller string) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !validIdentity(caller) {
		return 0, NewError(ErrInvalidRequest, "invalid buyer identity %s", caller)
	}

	col, err := c.store.ReadCollection(collectionId)
	if err != nil {
		return 0, err
	}
	if col == nil || col.Supply == 0 {
		return 0, NewError(ErrNotFound, "collection %d", collectionId)
	}
	if col.Sold >= col.Supply {
		return 0, NewError(ErrExhausted, "collection %d sold out at %d", collectionId, col.Supply)
	}
	if !payment.Equal(col.Price) {
		return 0, NewError(ErrPaymentMismatch, "payment %s != price %s", payment, col.Price)
	}

	desc, err := c.asset.ReadAsset(ctx, col.AssetId)
	if err != nil {
		return 0, err
	}
	split, err := c.market.ReadRoyaltySplit(ctx, col.AssetId)
	if err != nil {
		return 0, err
	}

	now := c.clock.Now()
	rec := &PurchaseRecord{
		CollectionId: collectionId,
		Buyer:        caller,
		Asset: &AssetSnapshot{
			SourceURI:            desc.ContentURI,
			SourceMetadataURI:    desc.MetadataURI,
			ContentDigest:        ContentDigest(col.AssetId, col.Sold, now),
			SourceMetadataDigest: desc.MetadataDigest,
		},
		Royalty:   split,
		CreatedAt: now,
	}
	tokenId, err := c.store.WritePurchase(collectionId, rec)
	if err != nil {
		return 0, err
	}

	c.dispatch(ctx, &Event{
		Type:         EventCollectionPurchased,
		CollectionId: collectionId,
		AssetId:      col.AssetId,
		Creator:      col.Creator,
		Buyer:        caller,
		TokenId:      tokenId,
		Price:        col.Price,
		CreatedAt:    now,
	})
	return tokenId, nil
}

// AssetSnapshotOf returns the asset snapshot bound to tokenId. Only the
// recorded buyer may read it.
func (c *Core) AssetSnapshotOf(tokenId uint64, caller string) (*AssetSnapshot, error) {
	rec, err := c.readPurchase(tokenId, caller)
	if err != nil {
		return nil, err
	}
	return rec.Asset, nil
}

// RoyaltySnapshotOf returns the royalty split bound to tokenId. Only the
// recorded buyer may read it.
func (c *Core) RoyaltySnapshotOf(tokenId uint64, caller string) (*RoyaltySplit, error) {
	rec, err := c.readPurchase(tokenId, caller)
	if err != nil {
		return nil, err
	}
	return rec.Royalty, nil
}

func (c *Core) readPurchase(tokenId uint64, caller string) (*PurchaseRecord, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rec, err := c.store.ReadPurchase(tokenId)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, NewError(ErrNotFound, "token %d", tokenId)
	}
	if rec.Buyer != caller {
		return nil, NewError(ErrUnauthorized, "caller %s is not the buyer of token %d", caller, tokenId)
	}
	return rec, nil
}

// ContentDigest derives the digest of the new token content from the
// source asset, the sold count at purchase time and the purchase
// timestamp. Collisions are assumed impossible.
func ContentDigest(assetId string, sold uint64, ts time.Time) [32]byte {
	h := blake3.New()
	h.Write([]byte(assetId))
	h.Write(binary.BigEndian.AppendUint64(nil, sold))
	h.Write(binary.BigEndian.AppendUint64(nil, uint64(ts.UnixNano())))
	var digest [32]byte
	copy(digest[:], h.Sum(nil))
	return digest
}
