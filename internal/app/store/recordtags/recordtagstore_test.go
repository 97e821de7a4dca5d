package recordtagstore_test

import (
	"sort"
	"testing"

	recordtagstore "github.com/dalemusser/recordhub/internal/app/store/recordtags"
	"github.com/dalemusser/recordhub/internal/testutil"
)

func TestStore_Add_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := recordtagstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := 0; i < 3; i++ {
		if _, err := store.Add(ctx, 1, 5); err != nil {
			t.Fatalf("Add #%d failed: %v", i, err)
		}
	}

	ids, err := store.TagIDs(ctx, 1)
	if err != nil {
		t.Fatalf("TagIDs failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != 5 {
		t.Errorf("TagIDs: got %v, want [5]", ids)
	}
}

func TestStore_Replace(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := recordtagstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store.Add(ctx, 1, 1)
	store.Add(ctx, 1, 2)
	store.Add(ctx, 2, 1)

	if err := store.Replace(ctx, 1, []int64{2, 3}); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	ids, _ := store.TagIDs(ctx, 1)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if len(ids) != 2 || ids[0] != 2 || ids[1] != 3 {
		t.Errorf("after Replace: got %v, want [2 3]", ids)
	}

	// Other records are untouched.
	other, _ := store.TagIDs(ctx, 2)
	if len(other) != 1 {
		t.Errorf("record 2 tags changed: %v", other)
	}

	if err := store.Replace(ctx, 1, nil); err != nil {
		t.Fatalf("Replace(nil) failed: %v", err)
	}
	ids, _ = store.TagIDs(ctx, 1)
	if len(ids) != 0 {
		t.Errorf("after clearing: got %v", ids)
	}
}
