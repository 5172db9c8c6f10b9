package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vntrieu/chatbackend/internal/ratelimit"
)

// denyAllLimiter denies every request (for testing 429).
type denyAllLimiter struct{}

func (denyAllLimiter) Allow(key string) (bool, int) { return false, 60 }

// recordingLimiter allows everything and remembers the keys it saw.
type recordingLimiter struct{ keys []string }

func (l *recordingLimiter) Allow(key string) (bool, int) {
	l.keys = append(l.keys, key)
	return true, 0
}

func TestRateLimitMiddleware_Returns429WhenDenied(t *testing.T) {
	var lim ratelimit.Limiter = denyAllLimiter{}
	handler := RateLimitMiddleware(lim, RateLimitKeyByIP)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") != "60" {
		t.Errorf("expected Retry-After 60, got %q", w.Header().Get("Retry-After"))
	}
}

func TestRateLimitMiddleware_ProxiesWhenAllowed(t *testing.T) {
	handler := RateLimitMiddleware(&ratelimit.Noop{}, RateLimitKeyByIP)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if w.Body.String() != "ok" {
		t.Errorf("expected body ok, got %q", w.Body.String())
	}
}

func TestRateLimitMiddleware_EmptyKeyFallsBack(t *testing.T) {
	lim := &recordingLimiter{}
	handler := RateLimitMiddleware(lim, func(*http.Request) string { return "" })(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if len(lim.keys) != 1 || lim.keys[0] != "unknown" {
		t.Errorf("expected key unknown, got %v", lim.keys)
	}
}

func TestRateLimitKeyByIP(t *testing.T) {
	t.Run("remote addr without port", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.7:5555"
		if got := RateLimitKeyByIP(req); got != "10.0.0.7" {
			t.Errorf("expected 10.0.0.7, got %q", got)
		}
	})

	t.Run("x-real-ip wins", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Real-IP", "203.0.113.9")
		req.Header.Set("X-Forwarded-For", "198.51.100.1")
		if got := RateLimitKeyByIP(req); got != "203.0.113.9" {
			t.Errorf("expected 203.0.113.9, got %q", got)
		}
	})

	t.Run("first forwarded hop", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.1")
		if got := RateLimitKeyByIP(req); got != "198.51.100.1" {
			t.Errorf("expected 198.51.100.1, got %q", got)
		}
	})

	t.Run("unparsable remote addr", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "pipe"
		if got := RateLimitKeyByIP(req); got != "pipe" {
			t.Errorf("expected pipe, got %q", got)
		}
	})
}

func TestLimitRequestBody(t *testing.T) {
	var readErr error
	handler := LimitRequestBody(4)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader("abcd")))
	if readErr != nil {
		t.Errorf("body at the limit should be readable, got %v", readErr)
	}

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader("abcde")))
	var maxErr *http.MaxBytesError
	if readErr == nil || !errors.As(readErr, &maxErr) {
		t.Errorf("expected MaxBytesError over the limit, got %v", readErr)
	}
}

func TestRequestLogger_LogsStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	handler := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte("hello"))
	}))
	req := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected one JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "http request" {
		t.Errorf("unexpected msg: %v", entry["msg"])
	}
	if entry["method"] != "POST" || entry["path"] != "/api/chat" {
		t.Errorf("unexpected method/path: %v %v", entry["method"], entry["path"])
	}
	if entry["status"] != float64(http.StatusAccepted) || entry["bytes"] != float64(5) {
		t.Errorf("unexpected status/bytes: %v %v", entry["status"], entry["bytes"])
	}
}
