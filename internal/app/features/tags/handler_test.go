package tags_test

import (
	"fmt"
	"net/http"
	"testing"

	uierrors "github.com/dalemusser/recordhub/internal/app/features/errors"
	"github.com/dalemusser/recordhub/internal/app/features/tags"
	tagstore "github.com/dalemusser/recordhub/internal/app/store/tags"
	"github.com/dalemusser/recordhub/internal/domain/models"
	"github.com/dalemusser/recordhub/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) (chi.Router, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	h := tags.NewHandler(db, uierrors.NewErrorLogger(logger), nil, logger)

	r := chi.NewRouter()
	r.Mount("/tag", tags.Routes(h))
	r.Mount("/tags", tags.ListRoutes(h))
	return r, db
}

func do(t *testing.T, r http.Handler, method, target string, body any) *testutil.ResponseRecorder {
	t.Helper()
	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.NewJSONRequest(t, method, target, body))
	return rec
}

func TestHandleCreate_ColorUnique(t *testing.T) {
	r, db := newTestRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rec := do(t, r, "POST", "/tag/new", map[string]string{"name": "Tag One", "color": "#ab1111"})
	rec.AssertStatus(t, http.StatusOK)
	var first models.Tag
	rec.DecodeJSON(t, &first)

	dup := do(t, r, "POST", "/tag/new", map[string]string{"name": "Tag Copy", "color": "#AB1111"})
	dup.AssertStatus(t, http.StatusBadRequest)
	if dup.ErrorMessage(t) == "" {
		t.Error("expected an error message")
	}

	got, err := tagstore.New(db).GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Tag One" || got.Color != "#ab1111" {
		t.Errorf("first tag changed: %+v", got)
	}

	list := do(t, r, "GET", "/tags/all", nil)
	list.AssertStatus(t, http.StatusOK)
	var all []models.Tag
	list.DecodeJSON(t, &all)
	if len(all) != 1 {
		t.Errorf("got %d tags, want 1", len(all))
	}
}

func TestHandleCreate_Invalid(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, body := range []map[string]string{
		{"name": "", "color": "#ab1111"},
		{"name": "x", "color": "red"},
		{"name": "x", "color": "#ab11"},
		{"name": "x"},
	} {
		do(t, r, "POST", "/tag/new", body).AssertStatus(t, http.StatusBadRequest)
	}
}

func TestHandleEdit(t *testing.T) {
	r, db := newTestRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)
	one := fx.CreateTag(ctx, "Tag One", "#ab1111")
	fx.CreateTag(ctx, "Tag Two", "#ac1212")
	path := fmt.Sprintf("/tag/%d/edit", one.ID)

	rec := do(t, r, "POST", path, map[string]string{"name": "Renamed", "color": "#123456"})
	rec.AssertStatus(t, http.StatusOK)
	var msg struct {
		Message string `json:"message"`
	}
	rec.DecodeJSON(t, &msg)
	if msg.Message == "" {
		t.Error("expected a message")
	}

	got, err := tagstore.New(db).GetByID(ctx, one.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Renamed" || got.Color != "#123456" {
		t.Errorf("got %+v", got)
	}

	do(t, r, "POST", path, map[string]string{"color": "#ac1212"}).AssertStatus(t, http.StatusBadRequest)
	do(t, r, "POST", "/tag/500/edit", nil).AssertStatus(t, http.StatusNotFound)
	do(t, r, "POST", "/tag/500/edit", map[string]string{"name": "x"}).AssertStatus(t, http.StatusNotFound)
	do(t, r, "POST", path, nil).AssertStatus(t, http.StatusBadRequest)
	do(t, r, "POST", "/tag/abc/edit", nil).AssertStatus(t, http.StatusBadRequest)
}
