package ratelimit

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

func TestAllow(t *testing.T) {
	l := New(2, time.Minute)

	if !l.Allow("a") || !l.Allow("a") {
		t.Fatal("first two requests should pass")
	}
	if l.Allow("a") {
		t.Error("third request should be limited")
	}
	if !l.Allow("b") {
		t.Error("other keys are independent")
	}
}

func TestRefill(t *testing.T) {
	l := New(1, 20*time.Millisecond)

	l.Allow("k")
	if l.Allow("k") {
		t.Fatal("expected limit right after the burst")
	}
	time.Sleep(40 * time.Millisecond)
	if !l.Allow("k") {
		t.Error("expected a request to be allowed after refill")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name   string
		xff    string
		remote string
		want   string
	}{
		{"remote", "", "1.2.3.4:5", "1.2.3.4"},
		{"remote no port", "", "1.2.3.4", "1.2.3.4"},
		{"ipv6", "", "[::1]:80", "::1"},
		{"forwarded header ignored", "10.0.0.1", "1.2.3.4:5", "1.2.3.4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if got := ClientIP(r); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestWriteMiddleware(t *testing.T) {
	h := New(1, time.Minute).WriteMiddleware(okHandler())

	do := func(method string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(method, "/records", nil)
		req.RemoteAddr = "9.9.9.9:1000"
		h.ServeHTTP(rec, req)
		return rec
	}

	if rec := do(http.MethodPost); rec.Code != http.StatusOK {
		t.Errorf("first POST = %d, want 200", rec.Code)
	}
	rec := do(http.MethodPost)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second POST = %d, want 429", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if ra := rec.Header().Get("Retry-After"); ra != "60" {
		t.Errorf("Retry-After = %q, want 60", ra)
	}
	if rec := do(http.MethodGet); rec.Code != http.StatusOK {
		t.Errorf("GET = %d, want 200 (reads are not limited)", rec.Code)
	}
}

func TestWriteMiddleware_RotatingForwardedFor(t *testing.T) {
	h := New(2, time.Minute).WriteMiddleware(okHandler())

	accepted := 0
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodPost, "/records", nil)
		req.RemoteAddr = "9.9.9.9:1000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code == http.StatusOK {
			accepted++
		}
	}
	if accepted != 2 {
		t.Errorf("accepted %d writes from one peer, want 2", accepted)
	}
}

func TestWriteMiddleware_TrustedProxy(t *testing.T) {
	// behind RealIP each forwarded client gets its own budget
	h := chimw.RealIP(New(1, time.Minute).WriteMiddleware(okHandler()))

	for _, client := range []string{"10.0.0.1", "10.0.0.2"} {
		req := httptest.NewRequest(http.MethodPost, "/records", nil)
		req.RemoteAddr = "9.9.9.9:1000"
		req.Header.Set("X-Forwarded-For", client)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("client %s: status %d, want 200", client, rec.Code)
		}
	}
}
