package collection

import (
	"encoding/binary"
	"sync"
	"time"
)

const clockStorePropertyKey = "COLLECTIONS:CLOCK:MONOTONIC"

// Clock issues timestamps that never run backwards, across restarts
// included. Purchase digests depend on it.
type Clock struct {
	sync.Mutex
	store Store
	now   time.Time
}

func NewClock(store Store) (*Clock, error) {
	clock := &Clock{store: store, now: time.Now()}
	bs, err := store.ReadProperty([]byte(clockStorePropertyKey))
	if err != nil {
		return nil, err
	}
	if len(bs) == 8 {
		ts := time.Unix(0, int64(binary.BigEndian.Uint64(bs)))
		if ts.After(clock.now) {
			clock.now = ts
		}
	}
	return clock, nil
}

func (c *Clock) Now() time.Time {
	c.Lock()
	defer c.Unlock()

	for {
		now := time.Now()
		if now.After(c.now) {
			c.now = now
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	val := binary.BigEndian.AppendUint64(nil, uint64(c.now.UnixNano()))
	for {
		err := c.store.WriteProperty([]byte(clockStorePropertyKey), val)
		if err == nil {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	return c.now
}
