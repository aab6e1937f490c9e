package collection_test

import (
	"context"
	"testing"

	"github.com/kulkarohan/collections/collection"
	"github.com/kulkarohan/collections/store"
)

func TestClockMonotonicAcrossInstances(t *testing.T) {
	db, err := store.OpenBadger(context.Background(), t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	clock, err := collection.NewClock(db)
	if err != nil {
		t.Fatal(err)
	}
	a := clock.Now()
	b := clock.Now()
	if !b.After(a) {
		t.Fatalf("timestamps not increasing: %v then %v", a, b)
	}

	// a restarted clock resumes past the persisted timestamp
	clock, err = collection.NewClock(db)
	if err != nil {
		t.Fatal(err)
	}
	if c := clock.Now(); !c.After(b) {
		t.Fatalf("restarted clock went backwards: %v then %v", b, c)
	}
}
