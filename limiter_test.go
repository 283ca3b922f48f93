package sitepress

import (
	"testing"
	"time"
)

func TestAttemptLimiterBlocksAfterMax(t *testing.T) {
	limiter := newAttemptLimiter(2, 200*time.Millisecond)
	ip := "203.0.113.10"

	if !limiter.Allow(ip) {
		t.Fatalf("expected first attempt to be allowed")
	}
	if !limiter.Allow(ip) {
		t.Fatalf("expected second attempt to be allowed")
	}
	if limiter.Allow(ip) {
		t.Fatalf("expected third attempt to be blocked")
	}
}

func TestAttemptLimiterResetsAfterWindow(t *testing.T) {
	limiter := newAttemptLimiter(1, 150*time.Millisecond)
	ip := "203.0.113.20"

	if !limiter.Allow(ip) {
		t.Fatalf("expected first attempt to be allowed")
	}
	if limiter.Allow(ip) {
		t.Fatalf("expected second attempt to be blocked")
	}

	time.Sleep(200 * time.Millisecond)
	if !limiter.Allow(ip) {
		t.Fatalf("expected attempt after window to be allowed")
	}
}

func TestAttemptLimiterIsPerIP(t *testing.T) {
	limiter := newAttemptLimiter(1, 200*time.Millisecond)

	if !limiter.Allow("203.0.113.30") {
		t.Fatalf("expected first ip to be allowed")
	}
	if !limiter.Allow("203.0.113.31") {
		t.Fatalf("expected second ip to be allowed independently")
	}
	if limiter.Allow("203.0.113.30") {
		t.Fatalf("expected first ip to be blocked after max")
	}
}

func TestAttemptLimiterCheckDoesNotRecord(t *testing.T) {
	limiter := newAttemptLimiter(1, 200*time.Millisecond)
	ip := "203.0.113.40"

	if !limiter.Check(ip) {
		t.Fatalf("Check should pass on a fresh ip")
	}
	if !limiter.Check(ip) {
		t.Fatalf("Check alone must not consume the budget")
	}
	limiter.Record(ip)
	if limiter.Check(ip) {
		t.Fatalf("Check should fail after Record fills the budget")
	}
}
