package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterCountsPerClient(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	now := time.Now()

	for i := 0; i < 3; i++ {
		if !rl.allow("a", now) {
			t.Fatalf("request %d should pass", i+1)
		}
	}
	if rl.allow("a", now) {
		t.Error("4th request should be limited")
	}
	if !rl.allow("b", now) {
		t.Error("other client should not share the window")
	}
}

func TestRateLimiterWindowReset(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	now := time.Now()

	rl.allow("a", now)
	rl.allow("a", now)
	if rl.allow("a", now) {
		t.Error("should be limited inside the window")
	}
	if !rl.allow("a", now.Add(time.Minute+time.Second)) {
		t.Error("a lapsed window should reset the count")
	}
}

func TestRateLimiterPrunesLapsedWindows(t *testing.T) {
	rl := NewRateLimiter(5, time.Minute)
	now := time.Now()

	rl.allow("a", now)
	rl.allow("b", now)
	rl.prune(now.Add(2 * time.Minute))

	if n := len(rl.buckets); n != 0 {
		t.Errorf("buckets after prune = %d, want 0", n)
	}
}

func TestRateLimiterMiddlewareRejectsWithJSON(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	handler := rl.Middleware(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.RemoteAddr = "192.168.1.1:12345"

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("first request: status %d, want 200", rr.Code)
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("second request: status %d, want 429", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q, want JSON", ct)
	}
	if rr.Header().Get("Retry-After") == "" {
		t.Error("429 should carry Retry-After")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		xff        string
		xri        string
		remoteAddr string
		want       string
	}{
		{name: "x-forwarded-for single", xff: "10.0.0.1", remoteAddr: "192.168.1.1:1234", want: "10.0.0.1"},
		{name: "x-forwarded-for multiple", xff: "10.0.0.1, 172.16.0.1", remoteAddr: "192.168.1.1:1234", want: "10.0.0.1"},
		{name: "x-real-ip", xri: "10.0.0.2", remoteAddr: "192.168.1.1:1234", want: "10.0.0.2"},
		{name: "remote addr only", remoteAddr: "192.168.1.1:1234", want: "192.168.1.1"},
		{name: "remote addr ipv6", remoteAddr: "[::1]:1234", want: "::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}
			if got := clientIP(req); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
