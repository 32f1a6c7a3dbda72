package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/skyquery/flightlookup/internal/types"
)

// TTL is how long a resolved flight record stays servable. A policy
// constant, not a per-call parameter.
const TTL = 5 * time.Minute

// Stats summarizes cache contents.
type Stats struct {
	Total   int
	Valid   int
	Expired int
}

// Store is the contract the engine caches resolved records through.
type Store interface {
	Get(ctx context.Context, key string) (*types.FlightRecord, bool)
	Put(ctx context.Context, key string, rec *types.FlightRecord)
	Clear(ctx context.Context) int
	Stats(ctx context.Context) Stats
	Close() error
}

type entry struct {
	record     *types.FlightRecord
	insertedAt time.Time
}

// Memory is the in-process Store backend. Eviction is lazy: expired
// entries are dropped when Get touches them, there is no sweeper.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the cached record for key, treating entries older than TTL
// as absent and evicting them.
func (m *Memory) Get(_ context.Context, key string) (*types.FlightRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[normalizeKey(key)]
	if !ok {
		return nil, false
	}
	if m.now().Sub(e.insertedAt) >= TTL {
		delete(m.entries, normalizeKey(key))
		return nil, false
	}
	return e.record, true
}

// Put stores a record under key, overwriting any prior entry.
func (m *Memory) Put(_ context.Context, key string, rec *types.FlightRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[normalizeKey(key)] = entry{record: rec, insertedAt: m.now()}
}

// Clear removes all entries and returns how many were removed.
func (m *Memory) Clear(_ context.Context) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.entries)
	m.entries = make(map[string]entry)
	return n
}

// Stats counts total, still-valid and expired entries without evicting.
func (m *Memory) Stats(_ context.Context) Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Stats{Total: len(m.entries)}
	now := m.now()
	for _, e := range m.entries {
		if now.Sub(e.insertedAt) >= TTL {
			s.Expired++
		} else {
			s.Valid++
		}
	}
	return s
}

// Close is a no-op for the in-memory backend.
func (m *Memory) Close() error {
	return nil
}

func normalizeKey(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}
