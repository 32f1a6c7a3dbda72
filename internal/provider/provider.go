// Package provider contains the adapters for the external flight data
// sources. Each adapter parses its provider's payload through a typed
// schema and reports "no data" as a nil record, never as an error; only
// genuine transport or decoding failures surface as errors, and the
// orchestrator treats those the same as no data.
package provider

import (
	"context"

	"github.com/skyquery/flightlookup/internal/types"
)

// Live is a source of current telemetry for active flights.
type Live interface {
	// Name returns a human-readable provider name for logging.
	Name() string

	// Find returns the state vector whose callsign matches the
	// identifier, or nil when no active flight matches.
	Find(ctx context.Context, ident string) (*types.StateVector, error)
}

// Scheduled is a metered source of schedule-grade flight data.
type Scheduled interface {
	Name() string

	// Find tries the identifier and, when it differs, the alternate
	// form, charging quota per attempt issued. Nil means no data.
	Find(ctx context.Context, ident, altIdent string) (*types.FlightRecord, error)
}

// Budget is the slice of the quota tracker the scheduled adapter needs.
// TryConsume charges atomically; a separate check-then-charge pair would
// let two concurrent lookups both spend the last unit.
type Budget interface {
	TryConsume() bool
	ForceExhaust()
}

// Bearer is the slice of the token manager the live adapter needs.
type Bearer interface {
	Token(ctx context.Context) (string, error)
}
