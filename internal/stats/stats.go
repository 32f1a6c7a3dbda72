package stats

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// Sink persists a statistics snapshot.
type Sink interface {
	StoreUsageSnapshot(stats map[string]interface{}) error
}

// Stats tracks lookup processing statistics
type Stats struct {
	// Lookup counts
	TotalLookups    uint64
	CacheHits       uint64
	LiveHits        uint64
	ScheduledHits   uint64
	HybridResults   uint64
	MockResults     uint64
	ProviderErrors  uint64

	// Timing
	LastLookupTime time.Time
	ProcessingTime time.Duration

	// Sink for persistence
	sink Sink

	mu sync.RWMutex
}

// New creates a new Stats instance
func New() *Stats {
	return &Stats{
		LastLookupTime: time.Now(),
	}
}

// SetSink sets the persistence sink
func (s *Stats) SetSink(sink Sink) {
	s.mu.Lock()
	s.sink = sink
	s.mu.Unlock()
}

// Persist stores the current statistics through the sink
func (s *Stats) Persist() error {
	s.mu.RLock()
	if s.sink == nil {
		s.mu.RUnlock()
		return fmt.Errorf("persistence sink not set")
	}
	sink := s.sink
	s.mu.RUnlock()

	return sink.StoreUsageSnapshot(s.GetStats())
}

// IncrementTotalLookups increments the total lookups counter
func (s *Stats) IncrementTotalLookups() {
	atomic.AddUint64(&s.TotalLookups, 1)
}

// IncrementCacheHits increments the cache hit counter
func (s *Stats) IncrementCacheHits() {
	atomic.AddUint64(&s.CacheHits, 1)
}

// IncrementLiveHits increments the live provider hit counter
func (s *Stats) IncrementLiveHits() {
	atomic.AddUint64(&s.LiveHits, 1)
}

// IncrementScheduledHits increments the scheduled provider hit counter
func (s *Stats) IncrementScheduledHits() {
	atomic.AddUint64(&s.ScheduledHits, 1)
}

// IncrementHybridResults increments the merged-result counter
func (s *Stats) IncrementHybridResults() {
	atomic.AddUint64(&s.HybridResults, 1)
}

// IncrementMockResults increments the synthetic-fallback counter
func (s *Stats) IncrementMockResults() {
	atomic.AddUint64(&s.MockResults, 1)
}

// IncrementProviderErrors increments the provider failure counter
func (s *Stats) IncrementProviderErrors() {
	atomic.AddUint64(&s.ProviderErrors, 1)
}

// UpdateLastLookupTime updates the last lookup time
func (s *Stats) UpdateLastLookupTime() {
	s.mu.Lock()
	s.LastLookupTime = time.Now()
	s.mu.Unlock()
}

// AddProcessingTime adds to the total processing time
func (s *Stats) AddProcessingTime(duration time.Duration) {
	s.mu.Lock()
	s.ProcessingTime += duration
	s.mu.Unlock()
}

// GetStats returns a copy of the current statistics
func (s *Stats) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"total_lookups":   atomic.LoadUint64(&s.TotalLookups),
		"cache_hits":      atomic.LoadUint64(&s.CacheHits),
		"live_hits":       atomic.LoadUint64(&s.LiveHits),
		"scheduled_hits":  atomic.LoadUint64(&s.ScheduledHits),
		"hybrid_results":  atomic.LoadUint64(&s.HybridResults),
		"mock_results":    atomic.LoadUint64(&s.MockResults),
		"provider_errors": atomic.LoadUint64(&s.ProviderErrors),
		"last_lookup":     s.LastLookupTime,
		"processing_time": s.ProcessingTime,
	}
}

// String returns a string representation of the statistics
func (s *Stats) String() string {
	stats := s.GetStats()
	return fmt.Sprintf(
		"Total Lookups: %d\n"+
			"Cache Hits: %d\n"+
			"Live Hits: %d\n"+
			"Scheduled Hits: %d\n"+
			"Hybrid Results: %d\n"+
			"Mock Results: %d\n"+
			"Provider Errors: %d\n"+
			"Last Lookup: %s\n"+
			"Processing Time: %s",
		stats["total_lookups"],
		stats["cache_hits"],
		stats["live_hits"],
		stats["scheduled_hits"],
		stats["hybrid_results"],
		stats["mock_results"],
		stats["provider_errors"],
		stats["last_lookup"],
		stats["processing_time"],
	)
}

// StartPersistence starts periodic persistence of statistics
func (s *Stats) StartPersistence(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Final persistence before shutdown
			if err := s.Persist(); err != nil {
				log.Printf("Failed to persist final statistics: %v", err)
			}
			return
		case <-ticker.C:
			if err := s.Persist(); err != nil {
				log.Printf("Failed to persist statistics: %v", err)
			}
		}
	}
}
