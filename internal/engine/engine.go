// Package engine implements the flight lookup waterfall: cache, live
// telemetry, metered schedule data, merge, synthetic fallback. Resolve
// always terminates with some record, real or synthetic.
package engine

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/skyquery/flightlookup/internal/cache"
	"github.com/skyquery/flightlookup/internal/enrich"
	"github.com/skyquery/flightlookup/internal/provider"
	"github.com/skyquery/flightlookup/internal/quota"
	"github.com/skyquery/flightlookup/internal/registry"
	"github.com/skyquery/flightlookup/internal/stats"
	"github.com/skyquery/flightlookup/internal/synth"
	"github.com/skyquery/flightlookup/internal/types"
)

// AuditSink receives one audit row per resolve call.
type AuditSink interface {
	StoreLookupAudit(audit *types.LookupAudit) error
}

// Publisher receives every resolved record.
type Publisher interface {
	PublishResolved(rec *types.FlightRecord) error
}

// Engine owns all mutable lookup state: the cache, the quota tracker
// and the providers. There are no package-level singletons; construct
// one Engine per process and share it.
type Engine struct {
	reg       *registry.Registry
	cache     cache.Store
	quota     *quota.Tracker
	live      provider.Live
	scheduled provider.Scheduled
	enricher  *enrich.Enricher
	synth     *synth.Generator
	stats     *stats.Stats

	auditSink AuditSink
	publisher Publisher
}

// New creates an Engine. scheduled may be nil when the metered provider
// is not configured; live may be nil only in tests.
func New(reg *registry.Registry, store cache.Store, tracker *quota.Tracker, live provider.Live, scheduled provider.Scheduled) *Engine {
	return &Engine{
		reg:       reg,
		cache:     store,
		quota:     tracker,
		live:      live,
		scheduled: scheduled,
		enricher:  enrich.New(reg),
		synth:     synth.New(reg),
		stats:     stats.New(),
	}
}

// SetAuditSink sets the optional audit persistence sink.
func (e *Engine) SetAuditSink(sink AuditSink) {
	e.auditSink = sink
}

// SetPublisher sets the optional resolved-record publisher.
func (e *Engine) SetPublisher(pub Publisher) {
	e.publisher = pub
}

// Stats returns the engine's lookup counters.
func (e *Engine) Stats() *stats.Stats {
	return e.stats
}

// Resolve returns the best available record for the identifier. It
// never fails: when no provider yields data the result is a synthetic
// record tagged Source="mock".
func (e *Engine) Resolve(ctx context.Context, identifier string) *types.FlightRecord {
	start := time.Now()
	lookupID := uuid.New().String()
	e.stats.IncrementTotalLookups()
	e.stats.UpdateLastLookupTime()

	n := e.reg.Normalize(identifier)

	if rec, ok := e.cacheLookup(ctx, n); ok {
		e.stats.IncrementCacheHits()
		e.finish(lookupID, n.Original, rec, true, start)
		return rec
	}

	// Live telemetry carries no schedule, so a live hit alone is not a
	// complete record; the scheduled source is still consulted within
	// budget and the two are merged when both answer. A blank identifier
	// queries nothing and falls straight through to the synthetic record.
	var liveRec, schedRec *types.FlightRecord
	if n.Original != "" {
		liveRec = e.tryLive(ctx, lookupID, n)
		schedRec = e.tryScheduled(ctx, lookupID, n)
	}

	var rec *types.FlightRecord
	switch {
	case liveRec != nil && schedRec != nil:
		rec = mergeRecords(schedRec, liveRec)
		e.stats.IncrementHybridResults()
	case liveRec != nil:
		rec = liveRec
		e.stats.IncrementLiveHits()
	case schedRec != nil:
		rec = schedRec
		e.stats.IncrementScheduledHits()
	default:
		rec = e.synth.Generate(n.Original)
		e.stats.IncrementMockResults()
		log.Printf("[%s] no provider data for %q, returning synthetic record", lookupID, n.Original)
	}

	e.cacheAndFinish(ctx, lookupID, n, rec, start)
	return rec
}

// UsageStats reports quota and cache state for operational visibility.
func (e *Engine) UsageStats(ctx context.Context) types.UsageStats {
	q := e.quota.Snapshot()
	c := e.cache.Stats(ctx)
	return types.UsageStats{
		QuotaUsed:       q.Used,
		QuotaLimit:      q.Limit,
		QuotaRemaining:  q.Remaining,
		QuotaResetAt:    q.ResetAt,
		CacheSize:       c.Total,
		CacheTTLSeconds: int(cache.TTL.Seconds()),
	}
}

// ClearCache drops every cached record and returns how many were removed.
func (e *Engine) ClearCache(ctx context.Context) int {
	return e.cache.Clear(ctx)
}

// AirportLookup exposes the airport registry for collaborators that
// need a one-off airport name.
func (e *Engine) AirportLookup(code string) (types.Airport, bool) {
	return e.reg.Airport(code)
}

func (e *Engine) cacheLookup(ctx context.Context, n registry.Normalized) (*types.FlightRecord, bool) {
	if rec, ok := e.cache.Get(ctx, n.Original); ok {
		return rec, true
	}
	if n.Normalized != n.Original {
		if rec, ok := e.cache.Get(ctx, n.Normalized); ok {
			return rec, true
		}
	}
	return nil, false
}

func (e *Engine) tryLive(ctx context.Context, lookupID string, n registry.Normalized) *types.FlightRecord {
	if e.live == nil {
		return nil
	}
	sv, err := e.live.Find(ctx, n.Normalized)
	if err != nil {
		e.stats.IncrementProviderErrors()
		log.Printf("[%s] Warning: %s lookup failed: %v", lookupID, e.live.Name(), err)
		return nil
	}
	if sv == nil {
		return nil
	}
	return e.enricher.Enrich(sv, n.Normalized)
}

func (e *Engine) tryScheduled(ctx context.Context, lookupID string, n registry.Normalized) *types.FlightRecord {
	if e.scheduled == nil {
		return nil
	}
	if !e.quota.CanConsume() {
		log.Printf("[%s] quota exhausted, skipping %s", lookupID, e.scheduled.Name())
		return nil
	}
	altIdent := ""
	if n.WasICAO {
		altIdent = n.Original
	}
	rec, err := e.scheduled.Find(ctx, n.Normalized, altIdent)
	if err != nil {
		e.stats.IncrementProviderErrors()
		log.Printf("[%s] Warning: %s lookup failed: %v", lookupID, e.scheduled.Name(), err)
		return nil
	}
	return rec
}

// mergeRecords overlays live telemetry onto the scheduled base: the
// schedule knows airports, terminals and gates, while live telemetry is
// the more current witness for status and position.
func mergeRecords(sched, live *types.FlightRecord) *types.FlightRecord {
	merged := *sched
	merged.Status = live.Status
	merged.Live = live.Live
	merged.Position = live.Position
	merged.Source = types.SourceHybrid
	if merged.Aircraft == "" {
		merged.Aircraft = live.Aircraft
		merged.AircraftModel = live.AircraftModel
		merged.AircraftEstimated = live.AircraftEstimated
	}
	if merged.Airline == "" {
		merged.Airline = live.Airline
		merged.AirlineCode = live.AirlineCode
	}
	return &merged
}

func (e *Engine) cacheAndFinish(ctx context.Context, lookupID string, n registry.Normalized, rec *types.FlightRecord, start time.Time) {
	e.cache.Put(ctx, n.Original, rec)
	if n.Normalized != n.Original {
		e.cache.Put(ctx, n.Normalized, rec)
	}
	e.finish(lookupID, n.Original, rec, false, start)
}

// finish records stats and hands the result to the optional sinks
// without blocking the caller on their failures.
func (e *Engine) finish(lookupID, identifier string, rec *types.FlightRecord, cacheHit bool, start time.Time) {
	e.stats.AddProcessingTime(time.Since(start))

	audit := &types.LookupAudit{
		LookupID:   lookupID,
		Identifier: identifier,
		Source:     rec.Source,
		Live:       rec.Live,
		Status:     rec.Status,
		CacheHit:   cacheHit,
		Duration:   time.Since(start),
		ResolvedAt: time.Now(),
	}

	sink := e.auditSink
	pub := e.publisher
	if sink == nil && (pub == nil || cacheHit) {
		return
	}
	go func() {
		if sink != nil {
			if err := sink.StoreLookupAudit(audit); err != nil {
				log.Printf("Warning: Failed to store lookup audit: %v", err)
			}
		}
		if pub != nil && !cacheHit {
			if err := pub.PublishResolved(rec); err != nil {
				log.Printf("Warning: Failed to publish resolved record: %v", err)
			}
		}
	}()
}
