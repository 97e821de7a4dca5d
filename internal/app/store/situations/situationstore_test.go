package situationstore_test

import (
	"errors"
	"testing"

	situationstore "github.com/dalemusser/recordhub/internal/app/store/situations"
	"github.com/dalemusser/recordhub/internal/domain/lifecycle"
	"github.com/dalemusser/recordhub/internal/testutil"
)

func TestStore_AppendAndCurrent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := situationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Current(ctx, 1); !errors.Is(err, situationstore.ErrNoSituation) {
		t.Fatalf("Current on empty log: got %v, want ErrNoSituation", err)
	}

	steps := []lifecycle.Status{lifecycle.Pending, lifecycle.InProgress, lifecycle.Finished, lifecycle.Pending}
	var lastSeq int64
	for _, st := range steps {
		sit, err := store.Append(ctx, 1, st)
		if err != nil {
			t.Fatalf("Append(%s) failed: %v", st, err)
		}
		if sit.Seq <= lastSeq {
			t.Errorf("seq not increasing: %d after %d", sit.Seq, lastSeq)
		}
		lastSeq = sit.Seq

		got, err := store.Current(ctx, 1)
		if err != nil {
			t.Fatalf("Current failed: %v", err)
		}
		if got != st {
			t.Errorf("Current after Append(%s) = %s", st, got)
		}
	}

	log, err := store.ListByRecord(ctx, 1)
	if err != nil {
		t.Fatalf("ListByRecord failed: %v", err)
	}
	if len(log) != len(steps) {
		t.Fatalf("log length: got %d, want %d", len(log), len(steps))
	}
	for i, e := range log {
		if e.Status != steps[i].String() {
			t.Errorf("log[%d] = %s, want %s", i, e.Status, steps[i])
		}
	}
}

func TestStore_Append_UnknownStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := situationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Append(ctx, 1, lifecycle.Status("archived")); !errors.Is(err, lifecycle.ErrUnknownStatus) {
		t.Errorf("got %v, want ErrUnknownStatus", err)
	}
}

func TestStore_CurrentFor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := situationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Interleave appends across records.
	store.Append(ctx, 1, lifecycle.Pending)
	store.Append(ctx, 2, lifecycle.Pending)
	store.Append(ctx, 1, lifecycle.Finished)
	store.Append(ctx, 2, lifecycle.InProgress)
	store.Append(ctx, 3, lifecycle.Pending)

	got, err := store.CurrentFor(ctx, []int64{1, 2, 4})
	if err != nil {
		t.Fatalf("CurrentFor failed: %v", err)
	}
	want := map[int64]lifecycle.Status{1: lifecycle.Finished, 2: lifecycle.InProgress}
	if len(got) != len(want) {
		t.Fatalf("CurrentFor: got %v, want %v", got, want)
	}
	for id, st := range want {
		if got[id] != st {
			t.Errorf("CurrentFor[%d] = %s, want %s", id, got[id], st)
		}
	}
}
