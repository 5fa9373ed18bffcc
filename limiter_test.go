package portfolio

import (
	"testing"
	"time"
)

func TestLoginLimiterBlocksAfterLimit(t *testing.T) {
	l := NewLoginLimiter(3, time.Minute)
	for i := 0; i < 3; i++ {
		if !l.Check("10.0.0.1") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
		l.Record("10.0.0.1")
	}
	if l.Check("10.0.0.1") {
		t.Error("fourth attempt should be blocked")
	}
}

func TestLoginLimiterCheckDoesNotCount(t *testing.T) {
	l := NewLoginLimiter(2, time.Minute)
	for i := 0; i < 10; i++ {
		if !l.Check("10.0.0.1") {
			t.Fatal("checks alone must never exhaust the budget")
		}
	}
}

func TestLoginLimiterPerIP(t *testing.T) {
	l := NewLoginLimiter(1, time.Minute)
	l.Record("10.0.0.1")
	if l.Check("10.0.0.1") {
		t.Error("first IP should be exhausted")
	}
	if !l.Check("10.0.0.2") {
		t.Error("second IP should have its own budget")
	}
}

func TestLoginLimiterWindowExpiry(t *testing.T) {
	l := NewLoginLimiter(1, 30*time.Millisecond)
	l.Record("10.0.0.1")
	if l.Check("10.0.0.1") {
		t.Fatal("attempt within the window should be blocked")
	}
	time.Sleep(50 * time.Millisecond)
	if !l.Check("10.0.0.1") {
		t.Error("attempt after the window should be allowed again")
	}
}
