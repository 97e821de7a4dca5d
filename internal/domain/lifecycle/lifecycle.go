// Package lifecycle holds the record status rules.
//
// A record's status log is append-only. Close and reopen are guarded
// transitions; SetStatus accepts any known status.
package lifecycle

import (
	"errors"
	"strings"
)

// Status is a record situation.
type Status string

const (
	Pending    Status = "pending"
	InProgress Status = "in-progress"
	Finished   Status = "finished"
)

// All lists the valid statuses in workflow order.
var All = []Status{Pending, InProgress, Finished}

var (
	ErrUnknownStatus   = errors.New("unknown situation")
	ErrAlreadyFinished = errors.New("record is already finished")
	ErrNotFinished     = errors.New("record is not finished")
)

// ParseStatus maps a situation name to a Status.
// Surrounding whitespace is ignored; matching is exact otherwise.
func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	for _, st := range All {
		if string(st) == s {
			return st, nil
		}
	}
	return "", ErrUnknownStatus
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

func (s Status) String() string { return string(s) }

// CheckClose returns nil when a record in status current may be closed.
func CheckClose(current Status) error {
	if current == Finished {
		return ErrAlreadyFinished
	}
	return nil
}

// CheckReopen returns nil when a record in status current may be reopened.
func CheckReopen(current Status) error {
	if current != Finished {
		return ErrNotFinished
	}
	return nil
}

// Current returns the status of the entry with the highest seq.
// ok is false when there are no entries.
func Current[T any](entries []T, seq func(T) int64, status func(T) string) (Status, bool) {
	var (
		best    int64
		current string
		found   bool
	)
	for _, e := range entries {
		if s := seq(e); !found || s > best {
			best, current, found = s, status(e), true
		}
	}
	return Status(current), found
}
