package departments_test

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/dalemusser/recordhub/internal/app/features/departments"
	uierrors "github.com/dalemusser/recordhub/internal/app/features/errors"
	"github.com/dalemusser/recordhub/internal/domain/models"
	"github.com/dalemusser/recordhub/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) (chi.Router, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	h := departments.NewHandler(db, uierrors.NewErrorLogger(logger), nil, logger)

	r := chi.NewRouter()
	r.Mount("/departments", departments.Routes(h))
	r.Mount("/department", departments.LookupRoutes(h))
	return r, testutil.NewFixtures(t, db)
}

func serve(t *testing.T, r http.Handler, req *http.Request) *testutil.ResponseRecorder {
	t.Helper()
	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandleCreate(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := serve(t, r, testutil.NewJSONRequest(t, "POST", "/departments", map[string]string{"name": "teste"}))
	rec.AssertStatus(t, http.StatusOK)
	var d models.Department
	rec.DecodeJSON(t, &d)
	if d.ID == 0 || d.Name != "teste" {
		t.Errorf("got %+v", d)
	}

	serve(t, r, testutil.NewJSONRequest(t, "POST", "/departments", map[string]string{})).
		AssertStatus(t, http.StatusBadRequest)
	serve(t, r, testutil.NewJSONRequest(t, "POST", "/departments", nil)).
		AssertStatus(t, http.StatusBadRequest)

	dup := serve(t, r, testutil.NewJSONRequest(t, "POST", "/departments", map[string]string{"name": "teste"}))
	dup.AssertStatus(t, http.StatusBadRequest)
	dup.AssertContains(t, "already exists")
}

func TestServeList_SortedByName(t *testing.T) {
	r, fx := newTestRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx.CreateDepartment(ctx, "Protocolo")
	fx.CreateDepartment(ctx, "gerência")
	fx.CreateDepartment(ctx, "Arquivo")

	rec := serve(t, r, testutil.NewRequest("GET", "/departments"))
	rec.AssertStatus(t, http.StatusOK)
	var got []models.Department
	rec.DecodeJSON(t, &got)
	want := []string{"Arquivo", "gerência", "Protocolo"}
	if len(got) != len(want) {
		t.Fatalf("got %d departments, want %d", len(got), len(want))
	}
	for i, d := range got {
		if d.Name != want[i] {
			t.Errorf("position %d: got %q, want %q", i, d.Name, want[i])
		}
	}
}

func TestServeByName(t *testing.T) {
	r, fx := newTestRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx.CreateDepartment(ctx, "Gerência Adjunta")

	get := func(name string) *testutil.ResponseRecorder {
		return serve(t, r, testutil.NewRequest("GET", "/department?name="+url.QueryEscape(name)))
	}

	rec := get("Gerência Adjunta")
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Gerência Adjunta")

	get("gerência adjunta").AssertStatus(t, http.StatusNotFound)
	get("NULL").AssertStatus(t, http.StatusNotFound)
	get("").AssertStatus(t, http.StatusBadRequest)
	serve(t, r, testutil.NewRequest("GET", "/department")).AssertStatus(t, http.StatusBadRequest)
}

func TestSections(t *testing.T) {
	r, fx := newTestRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	d := fx.CreateDepartment(ctx, "Protocolo")
	path := fmt.Sprintf("/departments/%d/sections", d.ID)

	rec := serve(t, r, testutil.NewJSONRequest(t, "POST", path, map[string]string{"name": "Triagem"}))
	rec.AssertStatus(t, http.StatusOK)
	var s models.Section
	rec.DecodeJSON(t, &s)
	if s.DepartmentID != d.ID || s.Name != "Triagem" {
		t.Errorf("got %+v", s)
	}

	serve(t, r, testutil.NewJSONRequest(t, "POST", path, map[string]string{"name": "Triagem"})).
		AssertStatus(t, http.StatusBadRequest)
	serve(t, r, testutil.NewJSONRequest(t, "POST", "/departments/500/sections", map[string]string{"name": "X"})).
		AssertStatus(t, http.StatusNotFound)

	rec = serve(t, r, testutil.NewRequest("GET", path))
	rec.AssertStatus(t, http.StatusOK)
	var list []models.Section
	rec.DecodeJSON(t, &list)
	if len(list) != 1 || list[0].ID != s.ID {
		t.Errorf("got %+v", list)
	}

	serve(t, r, testutil.NewRequest("GET", "/departments/500/sections")).AssertStatus(t, http.StatusNotFound)
	serve(t, r, testutil.NewRequest("GET", "/departments/x/sections")).AssertStatus(t, http.StatusBadRequest)
}

func TestServeUsers(t *testing.T) {
	r, fx := newTestRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	d := fx.CreateDepartment(ctx, "Protocolo")
	other := fx.CreateDepartment(ctx, "Arquivo")
	// created out of alphabetical order
	w := fx.CreateUser(ctx, "William", "william@pcgo.com", d.ID)
	c := fx.CreateUser(ctx, "Carla", "carla@pcgo.com", d.ID)
	m := fx.CreateUser(ctx, "Marcos", "marcos@pcgo.com", d.ID)
	fx.CreateUser(ctx, "Ana", "ana@pcgo.com", other.ID)

	rec := serve(t, r, testutil.NewRequest("GET", fmt.Sprintf("/departments/%d/users", d.ID)))
	rec.AssertStatus(t, http.StatusOK)
	var got []models.User
	rec.DecodeJSON(t, &got)
	want := []int64{c.ID, m.ID, w.ID}
	if len(got) != len(want) {
		t.Fatalf("got %d users, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d: got %s (%d), want id %d", i, got[i].Name, got[i].ID, id)
		}
	}

	serve(t, r, testutil.NewRequest("GET", "/departments/500/users")).AssertStatus(t, http.StatusNotFound)
}
