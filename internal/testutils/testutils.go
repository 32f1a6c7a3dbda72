package testutils

import (
	"context"
	"fmt"
	"time"

	"github.com/skyquery/flightlookup/internal/types"
)

// MockStateVector creates a live telemetry row for testing.
func MockStateVector(callsign string, lat, lon, velocity float64) *types.StateVector {
	return &types.StateVector{
		ICAO24:        "abc123",
		Callsign:      callsign,
		OriginCountry: "India",
		Latitude:      lat,
		Longitude:     lon,
		BaroAltitude:  10000,
		Velocity:      velocity,
		TrueTrack:     270,
		LastContact:   time.Now().UTC(),
	}
}

// MockScheduledRecord creates a schedule-sourced flight record for testing.
func MockScheduledRecord(flightNumber string) *types.FlightRecord {
	now := time.Now().UTC()
	return &types.FlightRecord{
		FlightNumber: flightNumber,
		Airline:      "Air India",
		AirlineCode:  "AI",
		Departure: types.Endpoint{
			Airport:   "Indira Gandhi International Airport",
			Code:      "DEL",
			Scheduled: now.Add(-2 * time.Hour),
			Actual:    now.Add(-110 * time.Minute),
			Terminal:  "3",
			Gate:      "12B",
		},
		Arrival: types.Endpoint{
			Airport:   "Chhatrapati Shivaji Maharaj International Airport",
			Code:      "BOM",
			Scheduled: now.Add(15 * time.Minute),
			Terminal:  "2",
			Gate:      "44",
		},
		Status:     types.StatusInFlight,
		Source:     types.SourceScheduled,
		LastUpdate: now,
	}
}

// StubLive is a canned Live provider for engine tests.
type StubLive struct {
	Vector *types.StateVector
	Err    error
	Calls  int
}

func (s *StubLive) Name() string { return "stub-live" }

func (s *StubLive) Find(_ context.Context, _ string) (*types.StateVector, error) {
	s.Calls++
	return s.Vector, s.Err
}

// StubScheduled is a canned Scheduled provider for engine tests.
type StubScheduled struct {
	Record *types.FlightRecord
	Err    error
	Calls  int
}

func (s *StubScheduled) Name() string { return "stub-scheduled" }

func (s *StubScheduled) Find(_ context.Context, _, _ string) (*types.FlightRecord, error) {
	s.Calls++
	return s.Record, s.Err
}

// WaitForCondition waits for a condition to be true with timeout
func WaitForCondition(condition func() bool, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for condition")
		case <-ticker.C:
			if condition() {
				return nil
			}
		}
	}
}
