package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{Validation, http.StatusBadRequest},
		{Conflict, http.StatusBadRequest},
		{NotFound, http.StatusNotFound},
		{Internal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tt.kind.Status(); got != tt.want {
				t.Errorf("Status() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	base := NotFoundf("record %d not found", 7)
	wrapped := fmt.Errorf("forward: %w", base)

	if got := KindOf(wrapped); got != NotFound {
		t.Errorf("KindOf(wrapped) = %v, want NotFound", got)
	}
	if got := Message(wrapped); got != "record 7 not found" {
		t.Errorf("Message(wrapped) = %q", got)
	}
}

func TestKindOf_Plain(t *testing.T) {
	err := errors.New("connection reset")
	if got := KindOf(err); got != Internal {
		t.Errorf("KindOf(plain) = %v, want Internal", got)
	}
	if got := Message(err); got != "internal server error" {
		t.Errorf("Message(plain) = %q", got)
	}
}

func TestInternalHidesMessage(t *testing.T) {
	cause := errors.New("socket closed")
	err := Internalf(cause, "insert record")

	if Message(err) != "internal server error" {
		t.Errorf("internal message leaked: %q", Message(err))
	}
	if !errors.Is(err, cause) {
		t.Error("expected Internalf to wrap its cause")
	}
	if err.Error() != "insert record: socket closed" {
		t.Errorf("Error() = %q", err.Error())
	}
}
