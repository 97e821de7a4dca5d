package tagstore_test

import (
	"errors"
	"testing"

	tagstore "github.com/dalemusser/recordhub/internal/app/store/tags"
	"github.com/dalemusser/recordhub/internal/testutil"
)

func TestStore_Create_ColorUnique(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := tagstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first, err := store.Create(ctx, "urgent", "#AB1111")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if first.Color != "#ab1111" {
		t.Errorf("Color: got %q, want lowercased", first.Color)
	}

	_, err = store.Create(ctx, "late", "#ab1111")
	if !errors.Is(err, tagstore.ErrDuplicateColor) {
		t.Fatalf("second Create: got %v, want ErrDuplicateColor", err)
	}

	// The first tag is unaffected.
	got, err := store.GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "urgent" || got.Color != "#ab1111" {
		t.Errorf("first tag changed: %+v", got)
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("List: got %d tags, want 1", len(all))
	}
}

func TestStore_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := tagstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, _ := store.Create(ctx, "a", "#111111")
	if _, err := store.Create(ctx, "b", "#222222"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	name := "renamed"
	got, err := store.Update(ctx, a.ID, &name, nil)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got.Name != "renamed" || got.Color != "#111111" {
		t.Errorf("Update result: %+v", got)
	}

	taken := "#222222"
	if _, err := store.Update(ctx, a.ID, nil, &taken); !errors.Is(err, tagstore.ErrDuplicateColor) {
		t.Errorf("color collision: got %v, want ErrDuplicateColor", err)
	}

	if _, err := store.Update(ctx, 9999, &name, nil); !errors.Is(err, tagstore.ErrNotFound) {
		t.Errorf("missing tag: got %v, want ErrNotFound", err)
	}
}

func TestStore_GetByIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := tagstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, _ := store.Create(ctx, "a", "#111")
	b, _ := store.Create(ctx, "b", "#222")

	got, err := store.GetByIDs(ctx, []int64{b.ID, a.ID, 404})
	if err != nil {
		t.Fatalf("GetByIDs failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("GetByIDs: got %d tags, want 2", len(got))
	}
	if got[0].ID != a.ID {
		t.Errorf("GetByIDs not ordered by id: %+v", got)
	}
}
