package htmlsanitize_test

import (
	"testing"

	"github.com/dalemusser/recordhub/internal/app/system/htmlsanitize"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "Ofício nº 12", "Ofício nº 12"},
		{"trims", "  padded  ", "padded"},
		{"strips tags", "<b>urgent</b> request", "urgent request"},
		{"drops script", "<script>alert('x')</script>ok", "ok"},
		{"keeps ampersand", "Tom & Jerry", "Tom & Jerry"},
		{"drops handlers", `<a href="#" onclick="x()">link</a>`, "link"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := htmlsanitize.PlainText(tt.in); got != tt.want {
				t.Errorf("PlainText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPlainTextPtr(t *testing.T) {
	if htmlsanitize.PlainTextPtr(nil) != nil {
		t.Error("expected nil for nil input")
	}
	in := "<i>x</i>"
	got := htmlsanitize.PlainTextPtr(&in)
	if got == nil || *got != "x" {
		t.Errorf("PlainTextPtr = %v, want \"x\"", got)
	}
	if in != "<i>x</i>" {
		t.Error("input was modified")
	}
}
