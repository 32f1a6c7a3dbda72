// Package enrich turns a sparse live telemetry row into a full flight
// record using the static registries and great-circle geometry. Much of
// what it fills in is estimation, and the output says so: aircraft
// guesses are flagged and route guesses always carry Estimated=true.
package enrich

import (
	"strings"
	"time"

	"github.com/skyquery/flightlookup/internal/geo"
	"github.com/skyquery/flightlookup/internal/registry"
	"github.com/skyquery/flightlookup/internal/types"
)

// Enricher combines registry lookups and ETA math.
type Enricher struct {
	reg *registry.Registry
	now func() time.Time
}

// New creates an Enricher over the given registry.
func New(reg *registry.Registry) *Enricher {
	return &Enricher{reg: reg, now: time.Now}
}

// Enrich builds a FlightRecord from a live state vector. ident is the
// identifier the caller searched for, used as the display flight number
// when it is more specific than the broadcast callsign.
func (e *Enricher) Enrich(sv *types.StateVector, ident string) *types.FlightRecord {
	now := e.now()
	callsign := strings.ToUpper(strings.TrimSpace(sv.Callsign))
	display := callsign
	if display == "" {
		display = strings.ToUpper(strings.TrimSpace(ident))
	}

	rec := &types.FlightRecord{
		FlightNumber: display,
		Live:         true,
		Source:       types.SourceLive,
		LastUpdate:   now,
		Position: &types.Position{
			Latitude:     sv.Latitude,
			Longitude:    sv.Longitude,
			Altitude:     sv.BaroAltitude,
			GroundSpeed:  sv.Velocity,
			Heading:      sv.TrueTrack,
			VerticalRate: sv.VerticalRate,
		},
	}

	if sv.OnGround {
		rec.Status = types.StatusLanded
	} else {
		rec.Status = types.StatusInFlight
	}

	airline, carrier := e.lookupAirline(display)
	if airline != nil {
		rec.Airline = airline.Name
		rec.AirlineCode = airline.IATA
	} else {
		rec.AirlineCode = carrier
	}

	aircraft, _ := e.reg.TypicalAircraft(carrier)
	rec.Aircraft = aircraft.Name
	rec.AircraftModel = aircraft.Code
	// Carrier-keyed fleet guess, not telemetry. Always low confidence.
	rec.AircraftEstimated = true

	rec.Route = e.estimateRoute(carrier, sv)
	e.fillEndpoints(rec, sv, now)

	return rec
}

// lookupAirline resolves the carrier from the callsign prefix, trying
// the 2-letter IATA form first and the 3-letter ICAO form second.
// Returns the airline (nil when unknown) and the IATA carrier code.
func (e *Enricher) lookupAirline(callsign string) (*types.Airline, string) {
	if len(callsign) >= 2 {
		if a, ok := e.reg.AirlineByIATA(callsign[:2]); ok {
			return &a, a.IATA
		}
	}
	if len(callsign) >= 3 {
		if a, ok := e.reg.AirlineByICAO(callsign[:3]); ok {
			return &a, a.IATA
		}
	}
	if len(callsign) >= 2 {
		return nil, callsign[:2]
	}
	return nil, callsign
}

// estimateRoute picks the carrier's most common tabulated route, or
// falls back to the airport nearest the current position.
func (e *Enricher) estimateRoute(carrier string, sv *types.StateVector) *types.RouteEstimate {
	if rt, ok := e.reg.CommonRoute(carrier); ok {
		return &types.RouteEstimate{
			From:      rt.From,
			To:        rt.To,
			Frequency: rt.Frequency,
			Estimated: true,
		}
	}
	if sv.Latitude == 0 && sv.Longitude == 0 {
		return nil
	}
	nearest, _ := e.reg.NearestAirport(sv.Latitude, sv.Longitude)
	if nearest.IATA == "" {
		return nil
	}
	return &types.RouteEstimate{
		To:        nearest.IATA,
		Estimated: true,
	}
}

// fillEndpoints populates departure/arrival from the route estimate and
// computes the ETA from the current position and groundspeed.
func (e *Enricher) fillEndpoints(rec *types.FlightRecord, sv *types.StateVector, now time.Time) {
	if rec.Route == nil {
		return
	}

	if from, ok := e.reg.Airport(rec.Route.From); ok {
		rec.Departure = types.Endpoint{
			Airport: from.Name,
			Code:    from.IATA,
			City:    from.City,
			Country: from.Country,
		}
	}

	to, ok := e.reg.Airport(rec.Route.To)
	if !ok {
		return
	}
	rec.Arrival = types.Endpoint{
		Airport: to.Name,
		Code:    to.IATA,
		City:    to.City,
		Country: to.Country,
	}

	if rec.Status != types.StatusInFlight {
		return
	}
	dist := geo.HaversineKm(sv.Latitude, sv.Longitude, to.Lat, to.Lon)
	rec.Arrival.Estimated = geo.ETA(now, dist, geo.MSToKmh(sv.Velocity))
}
