package cache

import (
	"context"
	"testing"
	"time"

	"github.com/skyquery/flightlookup/internal/types"
)

func testRecord(flightNumber string) *types.FlightRecord {
	return &types.FlightRecord{
		FlightNumber: flightNumber,
		Status:       types.StatusInFlight,
		Source:       types.SourceLive,
		LastUpdate:   time.Now().UTC(),
	}
}

func TestMemoryPutGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	m.Put(ctx, "AI101", testRecord("AI101"))

	rec, ok := m.Get(ctx, "AI101")
	if !ok {
		t.Fatal("Get() should hit after Put()")
	}
	if rec.FlightNumber != "AI101" {
		t.Errorf("Get() FlightNumber = %s, want AI101", rec.FlightNumber)
	}

	// Keys are case-insensitive
	if _, ok := m.Get(ctx, " ai101 "); !ok {
		t.Error("Get() should normalize key case and whitespace")
	}

	if _, ok := m.Get(ctx, "EK500"); ok {
		t.Error("Get() should miss for unknown key")
	}
}

func TestMemoryTTLBoundary(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	current := t0
	m.now = func() time.Time { return current }

	m.Put(ctx, "AI101", testRecord("AI101"))

	// Still valid just before TTL
	current = t0.Add(4*time.Minute + 59*time.Second)
	if _, ok := m.Get(ctx, "AI101"); !ok {
		t.Error("Get() should hit at t0 + 4m59s")
	}

	// Absent just after TTL, and lazily evicted
	current = t0.Add(5*time.Minute + 1*time.Second)
	if _, ok := m.Get(ctx, "AI101"); ok {
		t.Error("Get() should miss at t0 + 5m01s")
	}
	if s := m.Stats(ctx); s.Total != 0 {
		t.Errorf("expired entry should be evicted on Get, still have %d", s.Total)
	}
}

func TestMemoryOverwrite(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	m.Put(ctx, "AI101", testRecord("AI101"))
	updated := testRecord("AI101")
	updated.Status = types.StatusLanded
	m.Put(ctx, "AI101", updated)

	rec, ok := m.Get(ctx, "AI101")
	if !ok || rec.Status != types.StatusLanded {
		t.Errorf("Put() should overwrite, got %+v", rec)
	}
	if s := m.Stats(ctx); s.Total != 1 {
		t.Errorf("Stats() Total = %d, want 1", s.Total)
	}
}

func TestMemoryClear(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	m.Put(ctx, "AI101", testRecord("AI101"))
	m.Put(ctx, "EK500", testRecord("EK500"))

	if n := m.Clear(ctx); n != 2 {
		t.Errorf("Clear() = %d, want 2", n)
	}
	if _, ok := m.Get(ctx, "AI101"); ok {
		t.Error("Get() should miss after Clear()")
	}
	if n := m.Clear(ctx); n != 0 {
		t.Errorf("Clear() on empty cache = %d, want 0", n)
	}
}

func TestMemoryStats(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	current := t0
	m.now = func() time.Time { return current }

	m.Put(ctx, "AI101", testRecord("AI101"))
	current = t0.Add(3 * time.Minute)
	m.Put(ctx, "EK500", testRecord("EK500"))

	// AI101 is now expired, EK500 still valid
	current = t0.Add(6 * time.Minute)
	s := m.Stats(ctx)
	if s.Total != 2 || s.Valid != 1 || s.Expired != 1 {
		t.Errorf("Stats() = %+v, want total 2, valid 1, expired 1", s)
	}
}
