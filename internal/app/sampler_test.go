package app

import (
	"testing"
	"time"
)

func TestIntervalGate(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	g := NewIntervalGate(200 * time.Millisecond)
	g.now = func() time.Time { return now }

	if !g.Allow() {
		t.Fatal("first call should pass")
	}
	if g.Allow() {
		t.Error("immediate second call should be gated")
	}

	now = now.Add(100 * time.Millisecond)
	if g.Allow() {
		t.Error("call within the interval should be gated")
	}

	now = now.Add(100 * time.Millisecond)
	if !g.Allow() {
		t.Error("call after the interval should pass")
	}
	if g.Allow() {
		t.Error("gate should re-arm after passing")
	}
}

func TestIntervalGate_Reset(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	g := NewIntervalGate(time.Hour)
	g.now = func() time.Time { return now }

	if !g.Allow() {
		t.Fatal("first call should pass")
	}
	if g.Allow() {
		t.Fatal("second call should be gated")
	}

	g.Reset()
	if !g.Allow() {
		t.Error("call after reset should pass")
	}
}
