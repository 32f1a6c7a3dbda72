package types

import (
	"time"
)

// Flight status values derived from schedule or live telemetry.
const (
	StatusScheduled = "scheduled"
	StatusInFlight  = "in-flight"
	StatusLanded    = "landed"
)

// Source tags recording which provider(s) contributed to a record.
const (
	SourceLive      = "opensky"
	SourceScheduled = "aerodata"
	SourceHybrid    = "opensky+aerodata"
	SourceMock      = "mock"
)

// Position is a live telemetry snapshot attached to a FlightRecord.
type Position struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Altitude     float64 `json:"altitude"`
	GroundSpeed  float64 `json:"groundspeed"`
	Heading      float64 `json:"heading"`
	VerticalRate float64 `json:"vertical_rate"`
}

// Endpoint describes one end of a flight (departure or arrival).
type Endpoint struct {
	Airport      string    `json:"airport"`
	Code         string    `json:"code"`
	City         string    `json:"city"`
	Country      string    `json:"country"`
	Scheduled    time.Time `json:"scheduled"`
	Actual       time.Time `json:"actual"`
	Estimated    time.Time `json:"estimated"`
	Terminal     string    `json:"terminal"`
	Gate         string    `json:"gate"`
	DelayMinutes int       `json:"delay_minutes"`
}

// RouteEstimate is a best-effort origin/destination guess for a live
// flight with no tabulated schedule. Estimated is always true; callers
// must not treat it as authoritative.
type RouteEstimate struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Frequency int    `json:"frequency"`
	Estimated bool   `json:"estimated"`
}

// FlightRecord is the unit of output of the lookup engine. Instances are
// immutable once cached; a fresh lookup after TTL expiry produces a new
// instance. Live=true implies Position is non-nil.
type FlightRecord struct {
	FlightNumber      string         `json:"flight_number"`
	Airline           string         `json:"airline"`
	AirlineCode       string         `json:"airline_code"`
	Aircraft          string         `json:"aircraft"`
	AircraftModel     string         `json:"aircraft_model"`
	AircraftEstimated bool           `json:"aircraft_estimated,omitempty"`
	Departure         Endpoint       `json:"departure"`
	Arrival           Endpoint       `json:"arrival"`
	Status            string         `json:"status"`
	Live              bool           `json:"live"`
	Position          *Position      `json:"position,omitempty"`
	Route             *RouteEstimate `json:"route,omitempty"`
	Source            string         `json:"source"`
	LastUpdate        time.Time      `json:"last_update"`
}

// StateVector is one live telemetry row as reported by the unlimited
// provider, before enrichment.
type StateVector struct {
	ICAO24        string    `json:"icao24"`
	Callsign      string    `json:"callsign"`
	OriginCountry string    `json:"origin_country"`
	Longitude     float64   `json:"longitude"`
	Latitude      float64   `json:"latitude"`
	BaroAltitude  float64   `json:"baro_altitude"`
	OnGround      bool      `json:"on_ground"`
	Velocity      float64   `json:"velocity"`
	TrueTrack     float64   `json:"true_track"`
	VerticalRate  float64   `json:"vertical_rate"`
	GeoAltitude   float64   `json:"geo_altitude"`
	Squawk        string    `json:"squawk"`
	LastContact   time.Time `json:"last_contact"`
}

// QuotaSnapshot is a point-in-time copy of the metered provider budget.
type QuotaSnapshot struct {
	Used      int       `json:"used"`
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"reset_at"`
}

// UsageStats is the operational summary exposed to collaborators.
type UsageStats struct {
	QuotaUsed       int       `json:"quota_used"`
	QuotaLimit      int       `json:"quota_limit"`
	QuotaRemaining  int       `json:"quota_remaining"`
	QuotaResetAt    time.Time `json:"quota_reset_at"`
	CacheSize       int       `json:"cache_size"`
	CacheTTLSeconds int       `json:"cache_ttl_seconds"`
}

// LookupAudit is one audit row per resolve call.
type LookupAudit struct {
	LookupID   string        `json:"lookup_id"`
	Identifier string        `json:"identifier"`
	Source     string        `json:"source"`
	Live       bool          `json:"live"`
	Status     string        `json:"status"`
	CacheHit   bool          `json:"cache_hit"`
	Duration   time.Duration `json:"duration"`
	ResolvedAt time.Time     `json:"resolved_at"`
}

// Airline is a static registry record keyed by IATA and ICAO codes.
type Airline struct {
	IATA    string `json:"iata"`
	ICAO    string `json:"icao"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

// Airport is a static registry record with coordinates for distance math.
type Airport struct {
	IATA    string  `json:"iata"`
	ICAO    string  `json:"icao"`
	Name    string  `json:"name"`
	City    string  `json:"city"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Aircraft is a static registry record describing an airframe type.
type Aircraft struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	Manufacturer string `json:"manufacturer"`
	Category     string `json:"category"`
}

// Route is a static registry record: a carrier's tabulated city pair with
// a relative frequency tier (higher means more common).
type Route struct {
	Carrier   string `json:"carrier"`
	From      string `json:"from"`
	To        string `json:"to"`
	Frequency int    `json:"frequency"`
}
