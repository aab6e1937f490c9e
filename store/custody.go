package store

import (
	"github.com/dgraph-io/badger/v3"
	"github.com/kulkarohan/collections/collection"
	"github.com/shopspring/decimal"
)

const (
	keyCustodyBalance      = "COLLECTIONS:CUSTODY:BALANCE"
	prefixCustodyWithdrawn = "COLLECTIONS:CUSTODY:WITHDRAWN:"
)

func (bs *BadgerStore) ReadWithdrawn(collectionId uint64) (decimal.Decimal, error) {
	txn := bs.db.NewTransaction(false)
	defer txn.Discard()

	return readAmount(txn, withdrawnKey(collectionId))
}

func (bs *BadgerStore) ReadCustodyBalance() (decimal.Decimal, error) {
	txn := bs.db.NewTransaction(false)
	defer txn.Discard()

	return readAmount(txn, []byte(keyCustodyBalance))
}

// SpendCustody records the withdrawal, then runs the transfer, before the
// transaction commits. The ledger update deliberately precedes the
// transfer, an error from it aborts the transaction so nothing of the
// withdrawal survives.
func (bs *BadgerStore) SpendCustody(collectionId uint64, amount decimal.Decimal, transfer func() error) error {
	return bs.db.Update(func(txn *badger.Txn) error {
		balance, err := readAmount(txn, []byte(keyCustodyBalance))
		if err != nil {
			return err
		}
		if balance.Cmp(amount) < 0 {
			return collection.NewError(collection.ErrInsufficientCustody, "balance %s < %s", balance, amount)
		}
		withdrawn, err := readAmount(txn, withdrawnKey(collectionId))
		if err != nil {
			return err
		}
		err = writeAmount(txn, withdrawnKey(collectionId), withdrawn.Add(amount))
		if err != nil {
			return err
		}
		err = writeAmount(txn, []byte(keyCustodyBalance), balance.Sub(amount))
		if err != nil {
			return err
		}
		return transfer()
	})
}

func readAmount(txn *badger.Txn, key []byte) (decimal.Decimal, error) {
	item, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return decimal.Zero, nil
	} else if err != nil {
		return decimal.Zero, err
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(string(val))
}

func writeAmount(txn *badger.Txn, key []byte, amount decimal.Decimal) error {
	return txn.Set(key, []byte(amount.String()))
}

func withdrawnKey(collectionId uint64) []byte {
	return append([]byte(prefixCustodyWithdrawn), uint64Bytes(collectionId)...)
}
