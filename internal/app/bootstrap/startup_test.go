package bootstrap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	departmentstore "github.com/dalemusser/recordhub/internal/app/store/departments"
	sectionstore "github.com/dalemusser/recordhub/internal/app/store/sections"
	userstore "github.com/dalemusser/recordhub/internal/app/store/users"
	"github.com/dalemusser/recordhub/internal/testutil"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

const seedYAML = `
departments:
  - name: Protocolo
    sections: [Triagem, Arquivo]
    users:
      - name: William
        email: william@pcgo.com
  - name: Financeiro
    sections: [Pagamentos]
`

func writeSeed(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	return path
}

func TestStartup_AppliesSeed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cfg := AppConfig{SeedFile: writeSeed(t, seedYAML)}
	if err := Startup(ctx, nil, cfg, DBDeps{RecordHubMongoDatabase: db}, testLogger()); err != nil {
		t.Fatalf("Startup: %v", err)
	}

	dept, err := departmentstore.New(db).GetByName(ctx, "Protocolo")
	if err != nil {
		t.Fatalf("department not seeded: %v", err)
	}
	secs, err := sectionstore.New(db).ListByDepartment(ctx, dept.ID)
	if err != nil {
		t.Fatalf("ListByDepartment: %v", err)
	}
	if len(secs) != 2 {
		t.Errorf("sections = %d, want 2", len(secs))
	}
	u, err := userstore.New(db).GetByEmail(ctx, "william@pcgo.com")
	if err != nil {
		t.Fatalf("user not seeded: %v", err)
	}
	if u.DepartmentID != dept.ID {
		t.Errorf("user department = %d, want %d", u.DepartmentID, dept.ID)
	}
}

func TestApplySeed_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	seed, err := loadSeed(writeSeed(t, seedYAML))
	if err != nil {
		t.Fatalf("loadSeed: %v", err)
	}

	first, err := applySeed(ctx, db, seed, testLogger())
	if err != nil {
		t.Fatalf("first apply: %v", err)
	}
	if first != (seedResult{Departments: 2, Sections: 3, Users: 1}) {
		t.Errorf("first apply = %+v", first)
	}

	second, err := applySeed(ctx, db, seed, testLogger())
	if err != nil {
		t.Fatalf("second apply: %v", err)
	}
	if second != (seedResult{}) {
		t.Errorf("second apply created %+v, want nothing", second)
	}

	depts, err := departmentstore.New(db).List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(depts) != 2 {
		t.Errorf("departments = %d, want 2", len(depts))
	}
}

func TestStartup_NoSeedFile(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// No database is touched when seeding is off.
	if err := Startup(ctx, nil, AppConfig{}, DBDeps{}, testLogger()); err != nil {
		t.Fatalf("Startup: %v", err)
	}
}

func TestLoadSeed_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown field", "departments:\n  - name: A\n    colour: red\n", "colour"},
		{"missing department name", "departments:\n  - sections: [X]\n", "name is required"},
		{"empty section", "departments:\n  - name: A\n    sections: ['  ']\n", "empty section"},
		{"bad email", "departments:\n  - name: A\n    users:\n      - name: B\n        email: nope\n", "invalid email"},
		{"missing user name", "departments:\n  - name: A\n    users:\n      - email: b@x.com\n", "user name is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadSeed(writeSeed(t, tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}

	if _, err := loadSeed(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
