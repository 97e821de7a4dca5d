// internal/app/bootstrap/seed.go
package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	departmentstore "github.com/dalemusser/recordhub/internal/app/store/departments"
	sectionstore "github.com/dalemusser/recordhub/internal/app/store/sections"
	userstore "github.com/dalemusser/recordhub/internal/app/store/users"
	"github.com/dalemusser/recordhub/internal/app/system/inputval"
	"github.com/dalemusser/recordhub/internal/app/system/limits"
	"github.com/dalemusser/recordhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// seedFile is the YAML layout of the startup seed:
//
//	departments:
//	  - name: Protocolo
//	    sections: [Triagem, Arquivo]
//	    users:
//	      - name: William
//	        email: william@pcgo.com
type seedFile struct {
	Departments []seedDepartment `yaml:"departments"`
}

type seedDepartment struct {
	Name     string     `yaml:"name"`
	Sections []string   `yaml:"sections"`
	Users    []seedUser `yaml:"users"`
}

type seedUser struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// seedResult counts what a seed run created. Existing entries are skipped.
type seedResult struct {
	Departments int
	Sections    int
	Users       int
}

func loadSeed(path string) (seedFile, error) {
	var s seedFile
	fi, err := os.Stat(path)
	if err != nil {
		return s, fmt.Errorf("read seed file: %w", err)
	}
	if fi.Size() > limits.MaxSeedFile {
		return s, fmt.Errorf("seed file %s exceeds %d bytes", path, limits.MaxSeedFile)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read seed file: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return s, nil // empty file seeds nothing
		}
		return s, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return s, s.validate()
}

func (s seedFile) validate() error {
	for i, d := range s.Departments {
		if strings.TrimSpace(d.Name) == "" {
			return fmt.Errorf("seed department %d: name is required", i)
		}
		for _, sec := range d.Sections {
			if strings.TrimSpace(sec) == "" {
				return fmt.Errorf("seed department %q: empty section name", d.Name)
			}
		}
		for _, u := range d.Users {
			if strings.TrimSpace(u.Name) == "" {
				return fmt.Errorf("seed department %q: user name is required", d.Name)
			}
			if !inputval.IsValidEmail(u.Email) {
				return fmt.Errorf("seed department %q: invalid email %q", d.Name, u.Email)
			}
		}
	}
	return nil
}

// applySeed creates departments, then their sections, then their users.
// Entries that already exist are left untouched, so the seed can run on
// every start.
func applySeed(ctx context.Context, db *mongo.Database, s seedFile, logger *zap.Logger) (seedResult, error) {
	var res seedResult
	depts := departmentstore.New(db)
	sections := sectionstore.New(db)
	users := userstore.New(db)

	for _, sd := range s.Departments {
		name := strings.TrimSpace(sd.Name)
		dept, err := depts.GetByName(ctx, name)
		if errors.Is(err, departmentstore.ErrNotFound) {
			dept, err = depts.Create(ctx, name)
			if err == nil {
				res.Departments++
			}
		}
		if err != nil {
			return res, fmt.Errorf("seed department %q: %w", name, err)
		}

		for _, secName := range sd.Sections {
			secName = strings.TrimSpace(secName)
			_, err := sections.GetByName(ctx, dept.ID, secName)
			if errors.Is(err, sectionstore.ErrNotFound) {
				_, err = sections.Create(ctx, dept.ID, secName)
				if err == nil {
					res.Sections++
				}
			}
			if err != nil {
				return res, fmt.Errorf("seed section %q of %q: %w", secName, name, err)
			}
		}

		for _, su := range sd.Users {
			existing, err := users.GetByEmail(ctx, su.Email)
			if err == nil {
				if existing.DepartmentID != dept.ID {
					logger.Warn("seed user belongs to another department; left unchanged",
						zap.String("email", existing.Email),
						zap.Int64("department_id", existing.DepartmentID))
				}
				continue
			}
			if !errors.Is(err, userstore.ErrNotFound) {
				return res, fmt.Errorf("seed user %q: %w", su.Email, err)
			}
			if _, err := users.Create(ctx, models.User{
				Name:         su.Name,
				Email:        su.Email,
				DepartmentID: dept.ID,
			}); err != nil {
				return res, fmt.Errorf("seed user %q: %w", su.Email, err)
			}
			res.Users++
		}
	}
	return res, nil
}
