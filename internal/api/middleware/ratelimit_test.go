package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/forkcast/forkcast/internal/ratelimit"
)

func rateLimitedRequest(userID string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/v1/users/"+userID+"/assistant", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("userId", userID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestRateLimit_AllowsUnderLimit(t *testing.T) {
	limiter := ratelimit.NewLimiter()
	limit := ratelimit.Limit{MaxRequests: 3, Window: time.Minute}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	wrapped := RateLimit(limiter, "assistant", limit)(next)

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, rateLimitedRequest("user-a"))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, rec.Code)
		}
	}
}

func TestRateLimit_RejectsFourthRequest(t *testing.T) {
	limiter := ratelimit.NewLimiter()
	limit := ratelimit.Limit{MaxRequests: 3, Window: time.Minute}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	wrapped := RateLimit(limiter, "assistant", limit)(next)

	for i := 0; i < 3; i++ {
		wrapped.ServeHTTP(httptest.NewRecorder(), rateLimitedRequest("user-a"))
	}

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, rateLimitedRequest("user-a"))

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("4th request: status = %d, want 429", rec.Code)
	}

	if rec.Header().Get("Retry-After") == "" {
		t.Error("429 response missing Retry-After header")
	}

	var body struct {
		Status            int `json:"status"`
		RetryAfterSeconds int `json:"retry_after_seconds"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode problem body: %v", err)
	}
	if body.RetryAfterSeconds < 1 {
		t.Errorf("retry_after_seconds = %d, want >= 1", body.RetryAfterSeconds)
	}
}

func TestRateLimit_IsolatesIdentifiers(t *testing.T) {
	limiter := ratelimit.NewLimiter()
	limit := ratelimit.Limit{MaxRequests: 1, Window: time.Minute}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	wrapped := RateLimit(limiter, "assistant", limit)(next)

	wrapped.ServeHTTP(httptest.NewRecorder(), rateLimitedRequest("user-a"))

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, rateLimitedRequest("user-b"))
	if rec.Code != http.StatusOK {
		t.Errorf("user-b first request: status = %d, want 200", rec.Code)
	}
}

func TestIdentify(t *testing.T) {
	t.Run("prefers user id", func(t *testing.T) {
		if got := identify(rateLimitedRequest("user-a")); got != "user-a" {
			t.Errorf("identify() = %q, want user-a", got)
		}
	})

	t.Run("falls back to ip", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "203.0.113.9:1234"
		if got := identify(req); got != "203.0.113.9" {
			t.Errorf("identify() = %q, want 203.0.113.9", got)
		}
	})

	t.Run("anonymous without either", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ""
		if got := identify(req); got != "anonymous" {
			t.Errorf("identify() = %q, want anonymous", got)
		}
	})
}
