// Package synth produces placeholder flight records when every provider
// comes up empty. Records are tagged Source="mock" so callers and tests
// can tell synthesized data from genuine provider data. The generator
// performs no I/O and never fails.
package synth

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/skyquery/flightlookup/internal/registry"
	"github.com/skyquery/flightlookup/internal/types"
)

// canned holds realistic records for a handful of well-known flights so
// demos and tests get stable output for them.
type cannedFlight struct {
	airlineIATA string
	aircraft    string
	from        string
	to          string
	departIn    time.Duration
	duration    time.Duration
}

var canned = map[string]cannedFlight{
	"AI101": {airlineIATA: "AI", aircraft: "B77W", from: "DEL", to: "JFK", departIn: 2 * time.Hour, duration: 15 * time.Hour},
	"AI302": {airlineIATA: "AI", aircraft: "B788", from: "DEL", to: "BOM", departIn: 90 * time.Minute, duration: 2 * time.Hour},
	"6E203": {airlineIATA: "6E", aircraft: "A20N", from: "DEL", to: "BLR", departIn: time.Hour, duration: 150 * time.Minute},
	"EK500": {airlineIATA: "EK", aircraft: "A388", from: "DXB", to: "BOM", departIn: 3 * time.Hour, duration: 3 * time.Hour},
	"BA117": {airlineIATA: "BA", aircraft: "B77W", from: "LHR", to: "JFK", departIn: 4 * time.Hour, duration: 8 * time.Hour},
}

// Pools for identifiers outside the canned table.
var (
	poolCarriers = []string{"AI", "6E", "EK", "QR", "BA", "LH", "SQ", "UA"}
	poolAircraft = []string{"A320", "B738", "A20N", "B788", "B77W", "A359"}
	poolAirports = []string{"DEL", "BOM", "BLR", "DXB", "DOH", "LHR", "FRA", "SIN", "JFK", "HND"}
)

// Generator synthesizes fallback flight records. One Generator is
// shared across concurrent lookups; mu serializes the rand draws,
// which mutate the source's internal state.
type Generator struct {
	reg *registry.Registry
	now func() time.Time

	mu   sync.Mutex
	rand *rand.Rand
}

// New creates a Generator over the given registry.
func New(reg *registry.Registry) *Generator {
	return &Generator{
		reg:  reg,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
		now:  time.Now,
	}
}

// Generate returns a plausible placeholder record for the identifier.
func (g *Generator) Generate(ident string) *types.FlightRecord {
	ident = strings.ToUpper(strings.TrimSpace(ident))
	if c, ok := canned[ident]; ok {
		return g.build(ident, c)
	}

	g.mu.Lock()
	from := poolAirports[g.rand.Intn(len(poolAirports))]
	to := poolAirports[g.rand.Intn(len(poolAirports))]
	for to == from {
		to = poolAirports[g.rand.Intn(len(poolAirports))]
	}
	aircraft := poolAircraft[g.rand.Intn(len(poolAircraft))]
	carrier := poolCarriers[g.rand.Intn(len(poolCarriers))]
	departIn := time.Duration(1+g.rand.Intn(6)) * time.Hour
	duration := time.Duration(2+g.rand.Intn(9)) * time.Hour
	g.mu.Unlock()

	if len(ident) >= 2 {
		if _, ok := g.reg.AirlineByIATA(ident[:2]); ok {
			carrier = ident[:2]
		}
	}

	return g.build(ident, cannedFlight{
		airlineIATA: carrier,
		aircraft:    aircraft,
		from:        from,
		to:          to,
		departIn:    departIn,
		duration:    duration,
	})
}

func (g *Generator) build(ident string, c cannedFlight) *types.FlightRecord {
	now := g.now()
	departure := now.Add(c.departIn)
	arrival := departure.Add(c.duration)

	rec := &types.FlightRecord{
		FlightNumber: ident,
		Status:       types.StatusScheduled,
		Source:       types.SourceMock,
		LastUpdate:   now,
	}

	if airline, ok := g.reg.AirlineByIATA(c.airlineIATA); ok {
		rec.Airline = airline.Name
		rec.AirlineCode = airline.IATA
	}
	if aircraft, ok := g.reg.Aircraft(c.aircraft); ok {
		rec.Aircraft = aircraft.Name
		rec.AircraftModel = aircraft.Code
		rec.AircraftEstimated = true
	}

	rec.Departure = g.endpoint(c.from, departure)
	rec.Arrival = g.endpoint(c.to, arrival)

	return rec
}

func (g *Generator) endpoint(code string, at time.Time) types.Endpoint {
	ep := types.Endpoint{Code: code, Scheduled: at}
	if ap, ok := g.reg.Airport(code); ok {
		ep.Airport = ap.Name
		ep.City = ap.City
		ep.Country = ap.Country
	}
	return ep
}
