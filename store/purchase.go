package store

import (
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/kulkarohan/collections/collection"
	"github.com/shopspring/decimal"
)

const prefixPurchasePayload = "COLLECTIONS:PURCHASE:PAYLOAD:"

type purchasePayload struct {
	TokenId      uint64
	CollectionId uint64
	Buyer        string
	Asset        *collection.AssetSnapshot
	Royalty      []*royaltySharePayload
	CreatedAt    time.Time
}

type royaltySharePayload struct {
	Recipient string
	Percent   string
}

// WritePurchase commits one sale: it allocates the next global token id,
// persists the record, bumps the collection sold count and credits the
// custody balance with the price, all in one transaction. The sold count
// is re-checked here so the supply cap holds no matter who calls.
func (bs *BadgerStore) WritePurchase(collectionId uint64, rec *collection.PurchaseRecord) (uint64, error) {
	var tokenId uint64
	err := bs.db.Update(func(txn *badger.Txn) error {
		col, err := bs.readCollection(txn, collectionId)
		if err != nil {
			return err
		}
		if col == nil {
			panic(collectionId)
		}
		if col.Sold >= col.Supply {
			return collection.NewError(collection.ErrExhausted, "collection %d sold out at %d", collectionId, col.Supply)
		}

		next, err := nextSequence(txn, sequenceTokenKey)
		if err != nil {
			return err
		}
		tokenId = next
		rec.TokenId = next
		rec.CollectionId = collectionId
		err = txn.Set(purchaseKey(next), msgpackMarshalPanic(purchaseToPayload(rec)))
		if err != nil {
			return err
		}

		col.Sold += 1
		err = writeCollection(txn, col)
		if err != nil {
			return err
		}

		balance, err := readAmount(txn, []byte(keyCustodyBalance))
		if err != nil {
			return err
		}
		return writeAmount(txn, []byte(keyCustodyBalance), balance.Add(col.Price))
	})
	return tokenId, err
}

func (bs *BadgerStore) ReadPurchase(tokenId uint64) (*collection.PurchaseRecord, error) {
	txn := bs.db.NewTransaction(false)
	defer txn.Discard()

	item, err := txn.Get(purchaseKey(tokenId))
	if err == badger.ErrKeyNotFound {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return nil, err
	}
	var p purchasePayload
	err = msgpackUnmarshal(val, &p)
	if err != nil {
		return nil, err
	}
	return purchaseFromPayload(&p)
}

func purchaseToPayload(rec *collection.PurchaseRecord) *purchasePayload {
	p := &purchasePayload{
		TokenId:      rec.TokenId,
		CollectionId: rec.CollectionId,
		Buyer:        rec.Buyer,
		Asset:        rec.Asset,
		CreatedAt:    rec.CreatedAt,
	}
	if rec.Royalty != nil {
		for _, s := range rec.Royalty.Shares {
			p.Royalty = append(p.Royalty, &royaltySharePayload{
				Recipient: s.Recipient,
				Percent:   s.Percent.String(),
			})
		}
	}
	return p
}

func purchaseFromPayload(p *purchasePayload) (*collection.PurchaseRecord, error) {
	rec := &collection.PurchaseRecord{
		TokenId:      p.TokenId,
		CollectionId: p.CollectionId,
		Buyer:        p.Buyer,
		Asset:        p.Asset,
		Royalty:      &collection.RoyaltySplit{},
		CreatedAt:    p.CreatedAt,
	}
	for _, s := range p.Royalty {
		percent, err := decimal.NewFromString(s.Percent)
		if err != nil {
			return nil, err
		}
		rec.Royalty.Shares = append(rec.Royalty.Shares, &collection.RoyaltyShare{
			Recipient: s.Recipient,
			Percent:   percent,
		})
	}
	return rec, nil
}

func purchaseKey(tokenId uint64) []byte {
	return append([]byte(prefixPurchasePayload), uint64Bytes(tokenId)...)
}
