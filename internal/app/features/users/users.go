// internal/app/features/users/users.go
package users

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/recordhub/internal/app/features/shared/jsonio"
	departmentstore "github.com/dalemusser/recordhub/internal/app/store/departments"
	userstore "github.com/dalemusser/recordhub/internal/app/store/users"
	"github.com/dalemusser/recordhub/internal/app/system/apperr"
	"github.com/dalemusser/recordhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/recordhub/internal/app/system/timeouts"
	"github.com/dalemusser/recordhub/internal/domain/models"
)

type createUserInput struct {
	Name         string `json:"name" validate:"notblank,max=200"`
	Email        string `json:"email" validate:"simpleemail,max=254"`
	DepartmentID int64  `json:"department_id" validate:"gt=0"`
}

type byMailInput struct {
	Email string `json:"email" validate:"notblank"`
}

// HandleCreate handles POST /users {name, email, department_id}.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in createUserInput
	if err := jsonio.Decode(r, &in, false); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	in.Name = htmlsanitize.PlainText(in.Name)
	if err := jsonio.Valid(&in); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ok, err := departmentstore.New(h.DB).Exists(ctx, in.DepartmentID)
	if err != nil {
		h.ErrLog.Write(w, r, apperr.Internalf(err, "check department"))
		return
	}
	if !ok {
		h.ErrLog.Write(w, r, apperr.NotFoundf("department %d not found", in.DepartmentID))
		return
	}

	u, err := userstore.New(h.DB).Create(ctx, models.User{
		Name:         in.Name,
		Email:        in.Email,
		DepartmentID: in.DepartmentID,
	})
	if errors.Is(err, userstore.ErrDuplicateEmail) {
		h.ErrLog.Write(w, r, apperr.Wrap(apperr.Conflict, err, "a user with this email already exists"))
		return
	}
	if err != nil {
		h.ErrLog.Write(w, r, apperr.Internalf(err, "create user"))
		return
	}

	h.AuditLog.UserCreated(ctx, r, u)
	jsonio.OK(w, u)
}

// HandleByMail handles POST /user/by-mail {email}. Emails match
// case-insensitively.
func (h *Handler) HandleByMail(w http.ResponseWriter, r *http.Request) {
	var in byMailInput
	if err := jsonio.DecodeValid(r, &in, false); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := userstore.New(h.DB).GetByEmail(ctx, in.Email)
	if errors.Is(err, userstore.ErrNotFound) {
		h.ErrLog.Write(w, r, apperr.NotFoundf("user %s not found", in.Email))
		return
	}
	if err != nil {
		h.ErrLog.Write(w, r, apperr.Internalf(err, "find user by email"))
		return
	}
	jsonio.OK(w, u)
}
