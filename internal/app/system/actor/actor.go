// Package actor parses user references sent in request bodies.
//
// Fields such as created_by or closed_by accept either a user's email
// (JSON string) or a user's numeric id (JSON number).
package actor

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/dalemusser/recordhub/internal/app/system/normalize"
)

var (
	ErrWrongType = errors.New("must be a user email or numeric user id")
	ErrBadID     = errors.New("must be a positive user id")
)

// Ref is a user reference. The zero value means "not provided".
type Ref struct {
	Email string
	ID    int64
}

// ByEmail builds a reference to the user with the given email.
func ByEmail(email string) Ref { return Ref{Email: normalize.Email(email)} }

// ByID builds a reference to the user with the given id.
func ByID(id int64) Ref { return Ref{ID: id} }

// IsZero reports whether no reference was given (missing, null or "").
func (r Ref) IsZero() bool { return r.Email == "" && r.ID == 0 }

func (r Ref) String() string {
	if r.Email != "" {
		return r.Email
	}
	if r.ID != 0 {
		return "#" + strconv.FormatInt(r.ID, 10)
	}
	return ""
}

// UnmarshalJSON accepts a string, an integer or null.
func (r *Ref) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*r = Ref{}
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = ByEmail(s)
		return nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		id, err := strconv.ParseInt(string(b), 10, 64)
		if err != nil || id <= 0 {
			return ErrBadID
		}
		*r = ByID(id)
		return nil
	default:
		return ErrWrongType
	}
}

// MarshalJSON writes the email or the id.
func (r Ref) MarshalJSON() ([]byte, error) {
	switch {
	case r.Email != "":
		return json.Marshal(r.Email)
	case r.ID != 0:
		return []byte(strconv.FormatInt(r.ID, 10)), nil
	default:
		return []byte("null"), nil
	}
}
