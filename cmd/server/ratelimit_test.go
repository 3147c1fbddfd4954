package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestRateLimiterAllowsBurstThenRejects(t *testing.T) {
	rl := newRateLimiter(1, 2)
	now := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	if !rl.allow("10.0.0.1") || !rl.allow("10.0.0.1") {
		t.Fatalf("expected burst of 2 to be allowed")
	}
	if rl.allow("10.0.0.1") {
		t.Fatalf("expected third request to be limited")
	}
	if !rl.allow("10.0.0.2") {
		t.Fatalf("expected a different client to have its own bucket")
	}

	now = now.Add(time.Second)
	if !rl.allow("10.0.0.1") {
		t.Fatalf("expected a token to refill after one second")
	}
}

func TestRateLimiterSweepsIdleVisitors(t *testing.T) {
	rl := newRateLimiter(1, 1)
	now := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.allow("10.0.0.1")
	now = now.Add(visitorTTL + 2*time.Minute)
	rl.allow("10.0.0.2")

	if _, ok := rl.visitors["10.0.0.1"]; ok {
		t.Fatalf("expected idle visitor to be swept")
	}
	if len(rl.visitors) != 1 {
		t.Fatalf("expected 1 visitor, got %d", len(rl.visitors))
	}
}

func TestRateLimitAppliesToAPIOnly(t *testing.T) {
	srv := newTestServer(t)
	srv.limiter = newRateLimiter(0.001, 1)
	handler := srv.routes(true)

	send := func(method, target string) int {
		req := httptest.NewRequest(method, target, strings.NewReader(handmadeGoodsJSON))
		req.RemoteAddr = "192.0.2.7:4242"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code
	}

	if code := send(http.MethodPost, "/api/plan"); code != http.StatusOK {
		t.Fatalf("expected first API call to pass, got %d", code)
	}
	if code := send(http.MethodPost, "/api/plan"); code != http.StatusTooManyRequests {
		t.Fatalf("expected second API call to be limited, got %d", code)
	}
	if code := send(http.MethodGet, "/health"); code != http.StatusOK {
		t.Fatalf("expected health to bypass the limiter, got %d", code)
	}
}
