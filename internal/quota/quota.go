package quota

import (
	"sync"
	"time"

	"github.com/skyquery/flightlookup/internal/types"
)

// Tracker budgets calls against the metered provider over a calendar
// month. All methods are safe for concurrent use; a single mutex
// serializes the rollover check and the increment so two lookups can
// never both spend the last unit.
type Tracker struct {
	mu      sync.Mutex
	count   int
	limit   int
	resetAt time.Time
	enabled bool
	now     func() time.Time
}

// New creates a tracker with the given monthly limit. A non-positive
// limit or enabled=false produces a tracker that never permits a call,
// which is how a missing API key is modeled.
func New(limit int, enabled bool) *Tracker {
	t := &Tracker{
		limit:   limit,
		enabled: enabled && limit > 0,
		now:     time.Now,
	}
	t.resetAt = firstOfNextMonth(t.now())
	return t
}

// SetResetAt overrides the next reset instant, for operational recovery
// when the provider-side billing window is known to differ.
func (t *Tracker) SetResetAt(at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !at.IsZero() {
		t.resetAt = at
	}
}

// CanConsume reports whether the budget permits another call. It first
// handles month rollover: once now crosses resetAt the count returns to
// zero and resetAt advances to the first instant of the next month.
func (t *Tracker) CanConsume() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.enabled {
		return false
	}
	t.rollover()
	return t.count < t.limit
}

// Consume charges one unit. Charged per call issued, not per call that
// returns a match.
func (t *Tracker) Consume() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.enabled {
		return
	}
	t.rollover()
	t.count++
}

// TryConsume checks the budget and charges one unit in a single locked
// step, so two concurrent lookups can never both spend the last unit.
// This is the only charge path callers that issue metered requests
// should use; CanConsume alone is advisory.
func (t *Tracker) TryConsume() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.enabled {
		return false
	}
	t.rollover()
	if t.count >= t.limit {
		return false
	}
	t.count++
	return true
}

// ForceExhaust spends the entire remaining budget. Used when the
// provider reports rate-limited or payment-required: true server-side
// usage is unknown but clearly at capacity.
func (t *Tracker) ForceExhaust() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.enabled {
		return
	}
	t.count = t.limit
}

// Remaining returns how many calls the current period still permits.
func (t *Tracker) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.enabled {
		return 0
	}
	t.rollover()
	return t.limit - t.count
}

// Snapshot returns a point-in-time copy of the budget state.
func (t *Tracker) Snapshot() types.QuotaSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.enabled {
		t.rollover()
	}
	remaining := t.limit - t.count
	if !t.enabled {
		remaining = 0
	}
	return types.QuotaSnapshot{
		Used:      t.count,
		Limit:     t.limit,
		Remaining: remaining,
		ResetAt:   t.resetAt,
	}
}

// rollover resets the count when the period has ended. Callers must hold mu.
func (t *Tracker) rollover() {
	now := t.now()
	if now.Before(t.resetAt) {
		return
	}
	t.count = 0
	t.resetAt = firstOfNextMonth(now)
}

func firstOfNextMonth(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
}
