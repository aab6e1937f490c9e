package store

import (
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/kulkarohan/collections/collection"
	"github.com/shopspring/decimal"
)

const (
	prefixCollectionPayload = "COLLECTIONS:COLLECTION:PAYLOAD:"

	sequenceCollectionKey = "COLLECTIONS:SEQUENCE:COLLECTION"
	sequenceTokenKey      = "COLLECTIONS:SEQUENCE:TOKEN"
)

// amounts persist as decimal strings
type collectionPayload struct {
	Id        uint64
	AssetId   string
	Creator   string
	Supply    uint64
	Price     string
	Sold      uint64
	CreatedAt time.Time
}

// WriteCollection allocates the next collection id and persists the
// record under it, in one transaction.
func (bs *BadgerStore) WriteCollection(col *collection.Collection) (uint64, error) {
	var id uint64
	err := bs.db.Update(func(txn *badger.Txn) error {
		next, err := nextSequence(txn, sequenceCollectionKey)
		if err != nil {
			return err
		}
		id = next
		col.Id = next
		return writeCollection(txn, col)
	})
	return id, err
}

func (bs *BadgerStore) ReadCollection(id uint64) (*collection.Collection, error) {
	txn := bs.db.NewTransaction(false)
	defer txn.Discard()

	return bs.readCollection(txn, id)
}

func writeCollection(txn *badger.Txn, col *collection.Collection) error {
	p := &collectionPayload{
		Id:        col.Id,
		AssetId:   col.AssetId,
		Creator:   col.Creator,
		Supply:    col.Supply,
		Price:     col.Price.String(),
		Sold:      col.Sold,
		CreatedAt: col.CreatedAt,
	}
	return txn.Set(collectionKey(col.Id), msgpackMarshalPanic(p))
}

func (bs *BadgerStore) readCollection(txn *badger.Txn, id uint64) (*collection.Collection, error) {
	item, err := txn.Get(collectionKey(id))
	if err == badger.ErrKeyNotFound {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return nil, err
	}
	var p collectionPayload
	err = msgpackUnmarshal(val, &p)
	if err != nil {
		return nil, err
	}
	price, err := decimal.NewFromString(p.Price)
	if err != nil {
		return nil, err
	}
	return &collection.Collection{
		Id:        p.Id,
		AssetId:   p.AssetId,
		Creator:   p.Creator,
		Supply:    p.Supply,
		Price:     price,
		Sold:      p.Sold,
		CreatedAt: p.CreatedAt,
	}, nil
}

func collectionKey(id uint64) []byte {
	return append([]byte(prefixCollectionPayload), uint64Bytes(id)...)
}
