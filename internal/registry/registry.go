package registry

import (
	"strings"

	"github.com/skyquery/flightlookup/internal/geo"
	"github.com/skyquery/flightlookup/internal/types"
)

// Registry holds the static reference tables, indexed once at startup.
// All lookups are read-only and safe for concurrent use.
type Registry struct {
	airlinesByIATA map[string]types.Airline
	airlinesByICAO map[string]types.Airline
	airportsByIATA map[string]types.Airport
	airportsByICAO map[string]types.Airport
	aircraftByCode map[string]types.Aircraft
	routesByIATA   map[string][]types.Route
	airports       []types.Airport
}

// New builds a Registry from the compiled-in reference tables.
func New() *Registry {
	r := &Registry{
		airlinesByIATA: make(map[string]types.Airline, len(airlines)),
		airlinesByICAO: make(map[string]types.Airline, len(airlines)),
		airportsByIATA: make(map[string]types.Airport, len(airports)),
		airportsByICAO: make(map[string]types.Airport, len(airports)),
		aircraftByCode: make(map[string]types.Aircraft, len(aircraftTypes)),
		routesByIATA:   make(map[string][]types.Route),
		airports:       airports,
	}
	for _, a := range airlines {
		r.airlinesByIATA[a.IATA] = a
		r.airlinesByICAO[a.ICAO] = a
	}
	for _, a := range airports {
		r.airportsByIATA[a.IATA] = a
		r.airportsByICAO[a.ICAO] = a
	}
	for _, a := range aircraftTypes {
		r.aircraftByCode[a.Code] = a
	}
	for _, rt := range routes {
		r.routesByIATA[rt.Carrier] = append(r.routesByIATA[rt.Carrier], rt)
	}
	return r
}

// AirlineByIATA looks up an airline by its 2-letter code.
func (r *Registry) AirlineByIATA(code string) (types.Airline, bool) {
	a, ok := r.airlinesByIATA[strings.ToUpper(code)]
	return a, ok
}

// AirlineByICAO looks up an airline by its 3-letter code.
func (r *Registry) AirlineByICAO(code string) (types.Airline, bool) {
	a, ok := r.airlinesByICAO[strings.ToUpper(code)]
	return a, ok
}

// Airport looks up an airport by IATA or ICAO code.
func (r *Registry) Airport(code string) (types.Airport, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if a, ok := r.airportsByIATA[code]; ok {
		return a, true
	}
	a, ok := r.airportsByICAO[code]
	return a, ok
}

// Aircraft looks up an airframe type by its type designator.
func (r *Registry) Aircraft(code string) (types.Aircraft, bool) {
	a, ok := r.aircraftByCode[strings.ToUpper(code)]
	return a, ok
}

// TypicalAircraft guesses the airframe a carrier most likely operates.
// The second return reports whether the guess came from the tabulated
// fleet leanings; either way the result is an estimate, not telemetry.
func (r *Registry) TypicalAircraft(carrierIATA string) (types.Aircraft, bool) {
	carrierIATA = strings.ToUpper(carrierIATA)
	if code, ok := typicalAircraft[carrierIATA]; ok {
		if a, found := r.aircraftByCode[code]; found {
			return a, true
		}
	}
	if longHaulCarriers[carrierIATA] {
		return r.aircraftByCode["B77W"], false
	}
	return r.aircraftByCode["A320"], false
}

// CommonRoute returns the highest-frequency tabulated route for a carrier.
func (r *Registry) CommonRoute(carrierIATA string) (types.Route, bool) {
	best := types.Route{}
	found := false
	for _, rt := range r.routesByIATA[strings.ToUpper(carrierIATA)] {
		if !found || rt.Frequency > best.Frequency {
			best = rt
			found = true
		}
	}
	return best, found
}

// NearestAirport returns the airport closest to the given position and
// its great-circle distance in kilometers.
func (r *Registry) NearestAirport(lat, lon float64) (types.Airport, float64) {
	var nearest types.Airport
	bestDist := -1.0
	for _, a := range r.airports {
		d := geo.HaversineKm(lat, lon, a.Lat, a.Lon)
		if bestDist < 0 || d < bestDist {
			nearest = a
			bestDist = d
		}
	}
	return nearest, bestDist
}
