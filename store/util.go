package store

import (
	"encoding/binary"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/vmihailenco/msgpack/v4"
)

func msgpackMarshalPanic(val interface{}) []byte {
	b, err := msgpack.Marshal(val)
	if err != nil {
		panic(fmt.Errorf("msgpack.Marshal(%v) => %v", val, err))
	}
	return b
}

func msgpackUnmarshal(data []byte, val interface{}) error {
	return msgpack.Unmarshal(data, val)
}

func uint64Bytes(d uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, d)
	return buf
}

// nextSequence bumps the persisted counter at key inside txn and returns
// the new value. Counters start at 1 and only the store ever writes them.
func nextSequence(txn *badger.Txn, key string) (uint64, error) {
	var cur uint64
	item, err := txn.Get([]byte(key))
	if err == nil {
		val, err := item.ValueCopy(nil)
		if err != nil {
			return 0, err
		}
		cur = binary.BigEndian.Uint64(val)
	} else if err != badger.ErrKeyNotFound {
		return 0, err
	}
	next := cur + 1
	return next, txn.Set([]byte(key), uint64Bytes(next))
}
