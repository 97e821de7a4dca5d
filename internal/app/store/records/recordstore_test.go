package recordstore_test

import (
	"errors"
	"regexp"
	"testing"
	"time"

	recordstore "github.com/dalemusser/recordhub/internal/app/store/records"
	"github.com/dalemusser/recordhub/internal/app/system/paging"
	"github.com/dalemusser/recordhub/internal/domain/models"
	"github.com/dalemusser/recordhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

var registerRe = regexp.MustCompile(`^\d+/\d{4}$`)

func TestRegisterNumber(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	got := recordstore.RegisterNumber(ts)
	want := "1709294400000/2024"
	if got != want {
		t.Errorf("RegisterNumber = %q, want %q", got, want)
	}
	if !registerRe.MatchString(got) {
		t.Errorf("RegisterNumber %q does not match <digits>/<year>", got)
	}
}

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := recordstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rec, err := store.Create(ctx, models.Record{Requester: "City Hall", CreatedBy: 1, DepartmentID: 7})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if rec.ID == 0 {
		t.Error("expected ID to be assigned")
	}
	if !registerRe.MatchString(rec.RegisterNumber) {
		t.Errorf("RegisterNumber %q does not match <digits>/<year>", rec.RegisterNumber)
	}
	if rec.InclusionDate.IsZero() {
		t.Error("expected InclusionDate to be set")
	}

	got, err := store.GetByID(ctx, rec.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.DepartmentID != 7 || got.RegisterNumber != rec.RegisterNumber {
		t.Errorf("GetByID: %+v", got)
	}
}

func TestStore_Create_DistinctRegisterNumbers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := recordstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		rec, err := store.Create(ctx, models.Record{CreatedBy: 1, DepartmentID: 1})
		if err != nil {
			t.Fatalf("Create #%d failed: %v", i, err)
		}
		if seen[rec.RegisterNumber] {
			t.Errorf("register number %q reused", rec.RegisterNumber)
		}
		seen[rec.RegisterNumber] = true
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := recordstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.GetByID(ctx, 12345); !errors.Is(err, recordstore.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestStore_FindBySEI_Exact(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := recordstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rec, _ := store.Create(ctx, models.Record{SEINumber: "0001/2024", CreatedBy: 1, DepartmentID: 1})

	got, err := store.FindBySEI(ctx, "0001/2024")
	if err != nil {
		t.Fatalf("FindBySEI failed: %v", err)
	}
	if got.ID != rec.ID {
		t.Errorf("FindBySEI ID: got %d, want %d", got.ID, rec.ID)
	}

	for _, q := range []string{"0001", "0001/2024 ", "0001/20245"} {
		if _, err := store.FindBySEI(ctx, q); !errors.Is(err, recordstore.ErrNotFound) {
			t.Errorf("FindBySEI(%q): got %v, want ErrNotFound", q, err)
		}
	}
}

func TestStore_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := recordstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rec, _ := store.Create(ctx, models.Record{City: "Recife", State: "PE", CreatedBy: 1, DepartmentID: 1})

	city := "Olinda"
	got, err := store.Update(ctx, rec.ID, models.RecordPatch{City: &city})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got.City != "Olinda" {
		t.Errorf("City: got %q, want Olinda", got.City)
	}
	if got.State != "PE" {
		t.Errorf("State changed: got %q", got.State)
	}
	if got.RegisterNumber != rec.RegisterNumber {
		t.Error("RegisterNumber must not change on update")
	}

	if _, err := store.Update(ctx, 999, models.RecordPatch{City: &city}); !errors.Is(err, recordstore.ErrNotFound) {
		t.Errorf("missing record: got %v, want ErrNotFound", err)
	}
}

func TestStore_SetDepartment(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := recordstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rec, _ := store.Create(ctx, models.Record{CreatedBy: 1, DepartmentID: 1})
	got, err := store.SetDepartment(ctx, rec.ID, 2)
	if err != nil {
		t.Fatalf("SetDepartment failed: %v", err)
	}
	if got.DepartmentID != 2 {
		t.Errorf("DepartmentID: got %d, want 2", got.DepartmentID)
	}
}

func TestStore_FindAndCount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := recordstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := 0; i < 5; i++ {
		dept := int64(1)
		if i%2 == 1 {
			dept = 2
		}
		if _, err := store.Create(ctx, models.Record{CreatedBy: 1, DepartmentID: dept}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	n, err := store.Count(ctx, bson.M{"department_id": int64(1)})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 3 {
		t.Errorf("Count: got %d, want 3", n)
	}

	page := paging.Page{Number: 1, Size: 2}
	recs, err := store.Find(ctx, bson.M{}, page.Find("_id", 1))
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("Find page 1: got %d records, want 2", len(recs))
	}
	if recs[0].ID != 3 {
		t.Errorf("Find page 1 first id: got %d, want 3", recs[0].ID)
	}

	empty, err := store.Find(ctx, bson.M{}, paging.Page{Number: 10, Size: 2}.Find("_id", 1))
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Find beyond last page: got %d records", len(empty))
	}
}
