package enrich

import (
	"testing"
	"time"

	"github.com/skyquery/flightlookup/internal/registry"
	"github.com/skyquery/flightlookup/internal/testutils"
	"github.com/skyquery/flightlookup/internal/types"
)

func TestEnrichLiveFlight(t *testing.T) {
	e := New(registry.New())

	sv := testutils.MockStateVector("AI101", 19.09, 72.87, 230)
	rec := e.Enrich(sv, "AI101")

	if rec.Airline != "Air India" {
		t.Errorf("Airline = %s, want Air India", rec.Airline)
	}
	if rec.AirlineCode != "AI" {
		t.Errorf("AirlineCode = %s, want AI", rec.AirlineCode)
	}
	if rec.Status != types.StatusInFlight {
		t.Errorf("Status = %s, want in-flight", rec.Status)
	}
	if !rec.Live {
		t.Error("Live = false, want true")
	}
	if rec.Position == nil {
		t.Fatal("Position missing for a live record")
	}
	if rec.Position.Latitude != 19.09 || rec.Position.Longitude != 72.87 {
		t.Errorf("Position = %f,%f, want 19.09,72.87", rec.Position.Latitude, rec.Position.Longitude)
	}
	if rec.Source != types.SourceLive {
		t.Errorf("Source = %s, want %s", rec.Source, types.SourceLive)
	}
}

func TestEnrichAircraftIsEstimated(t *testing.T) {
	e := New(registry.New())

	rec := e.Enrich(testutils.MockStateVector("EK500", 25.25, 55.36, 240), "EK500")
	if rec.Aircraft == "" {
		t.Fatal("Aircraft should be guessed from the carrier fleet table")
	}
	if !rec.AircraftEstimated {
		t.Error("AircraftEstimated must be true for carrier-keyed guesses")
	}
	if rec.AircraftModel != "A388" {
		t.Errorf("AircraftModel = %s, want A388 (Emirates fleet leaning)", rec.AircraftModel)
	}
}

func TestEnrichICAOCallsign(t *testing.T) {
	e := New(registry.New())

	// "QT" is not a tabulated IATA code, so only the 3-letter ICAO
	// prefix can resolve this callsign
	rec := e.Enrich(testutils.MockStateVector("QTR123", 25.27, 51.61, 250), "QTR123")
	if rec.Airline != "Qatar Airways" {
		t.Errorf("Airline = %s, want Qatar Airways", rec.Airline)
	}
	if rec.AirlineCode != "QR" {
		t.Errorf("AirlineCode = %s, want QR", rec.AirlineCode)
	}
}

func TestEnrichRouteFromTable(t *testing.T) {
	e := New(registry.New())

	rec := e.Enrich(testutils.MockStateVector("AI101", 19.09, 72.87, 230), "AI101")
	if rec.Route == nil {
		t.Fatal("Route missing")
	}
	if !rec.Route.Estimated {
		t.Error("Route.Estimated must be true, route guesses are provisional")
	}
	if rec.Route.From != "DEL" || rec.Route.To != "BOM" {
		t.Errorf("Route = %s-%s, want DEL-BOM", rec.Route.From, rec.Route.To)
	}
	if rec.Arrival.Code != "BOM" {
		t.Errorf("Arrival.Code = %s, want BOM", rec.Arrival.Code)
	}
}

func TestEnrichRouteNearestAirportFallback(t *testing.T) {
	e := New(registry.New())

	// Unknown carrier near Heathrow: no tabulated route, nearest airport wins
	rec := e.Enrich(testutils.MockStateVector("ZZ123", 51.47, -0.45, 200), "ZZ123")
	if rec.Route == nil {
		t.Fatal("Route missing")
	}
	if rec.Route.To != "LHR" {
		t.Errorf("Route.To = %s, want LHR (nearest airport)", rec.Route.To)
	}
	if !rec.Route.Estimated {
		t.Error("Route.Estimated must be true")
	}
}

func TestEnrichETA(t *testing.T) {
	e := New(registry.New())
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e.now = func() time.Time { return now }

	// Over Mumbai heading for BOM per the AI route table: ETA is near now
	rec := e.Enrich(testutils.MockStateVector("AI101", 19.09, 72.87, 230), "AI101")
	if rec.Arrival.Estimated.IsZero() {
		t.Fatal("Arrival.Estimated missing for an in-flight record")
	}
	if rec.Arrival.Estimated.Before(now) {
		t.Error("ETA must not be in the past")
	}
	if rec.Arrival.Estimated.After(now.Add(time.Hour)) {
		t.Errorf("ETA = %v, want within an hour of %v for a flight over its destination", rec.Arrival.Estimated, now)
	}
}

func TestEnrichETAFloorSpeed(t *testing.T) {
	e := New(registry.New())
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e.now = func() time.Time { return now }

	// Zero velocity must not stall the ETA at infinity
	rec := e.Enrich(testutils.MockStateVector("AI101", 19.09, 72.87, 0), "AI101")
	if rec.Arrival.Estimated.IsZero() {
		t.Fatal("Arrival.Estimated missing")
	}
	if rec.Arrival.Estimated.After(now.Add(24 * time.Hour)) {
		t.Errorf("ETA = %v, floor speed should bound it", rec.Arrival.Estimated)
	}
}

func TestEnrichOnGround(t *testing.T) {
	e := New(registry.New())

	sv := testutils.MockStateVector("AI101", 19.09, 72.87, 5)
	sv.OnGround = true
	rec := e.Enrich(sv, "AI101")

	if rec.Status != types.StatusLanded {
		t.Errorf("Status = %s, want landed for on-ground telemetry", rec.Status)
	}
	if rec.Arrival.Estimated.IsZero() == false && rec.Status == types.StatusLanded {
		t.Error("landed record should not carry an ETA")
	}
}
