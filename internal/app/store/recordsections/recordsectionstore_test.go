package recordsectionstore_test

import (
	"testing"

	recordsectionstore "github.com/dalemusser/recordhub/internal/app/store/recordsections"
	"github.com/dalemusser/recordhub/internal/testutil"
)

func TestStore_Link_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := recordsectionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Link(ctx, 1, 10)
	if err != nil {
		t.Fatalf("Link failed: %v", err)
	}
	if !created {
		t.Error("first Link should create")
	}

	created, err = store.Link(ctx, 1, 10)
	if err != nil {
		t.Fatalf("second Link failed: %v", err)
	}
	if created {
		t.Error("second Link should not create")
	}

	n, err := store.Count(ctx, 1)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Count: got %d, want 1", n)
	}
}

func TestStore_SectionIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := recordsectionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	empty, err := store.SectionIDs(ctx, 1)
	if err != nil {
		t.Fatalf("SectionIDs failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("SectionIDs on unlinked record: got %v", empty)
	}

	store.Link(ctx, 1, 10)
	store.Link(ctx, 1, 20)
	store.Link(ctx, 2, 30)

	ids, err := store.SectionIDs(ctx, 1)
	if err != nil {
		t.Fatalf("SectionIDs failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != 10 || ids[1] != 20 {
		t.Errorf("SectionIDs: got %v, want [10 20]", ids)
	}
}
