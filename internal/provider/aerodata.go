package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/skyquery/flightlookup/internal/types"
)

const defaultAeroDataBaseURL = "https://api.aviationstack.com/v1"

// AeroData queries the commercial scheduled-flight API. Every request
// issued drains the shared monthly budget, so attempts stop the moment
// the tracker says no.
type AeroData struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	budget     Budget
	now        func() time.Time
}

// AeroDataOption configures the AeroData adapter.
type AeroDataOption func(*AeroData)

// WithAeroDataBaseURL overrides the API endpoint (useful for testing).
func WithAeroDataBaseURL(u string) AeroDataOption {
	return func(a *AeroData) { a.baseURL = u }
}

// WithAeroDataHTTPClient sets a custom HTTP client.
func WithAeroDataHTTPClient(hc *http.Client) AeroDataOption {
	return func(a *AeroData) { a.httpClient = hc }
}

// NewAeroData creates the metered provider adapter.
func NewAeroData(apiKey string, budget Budget, opts ...AeroDataOption) *AeroData {
	a := &AeroData{
		baseURL:    defaultAeroDataBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		budget:     budget,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name returns the provider name for logging.
func (a *AeroData) Name() string {
	return "aerodata"
}

// aeroDataResponse mirrors the provider's JSON payload.
type aeroDataResponse struct {
	Data []aeroDataFlight `json:"data"`
}

type aeroDataFlight struct {
	FlightStatus string           `json:"flight_status"`
	Departure    aeroDataEndpoint `json:"departure"`
	Arrival      aeroDataEndpoint `json:"arrival"`
	Airline      aeroDataAirline  `json:"airline"`
	Flight       aeroDataIdent    `json:"flight"`
	Aircraft     aeroDataAircraft `json:"aircraft"`
}

type aeroDataEndpoint struct {
	Airport   string `json:"airport"`
	IATA      string `json:"iata"`
	Terminal  string `json:"terminal"`
	Gate      string `json:"gate"`
	Delay     int    `json:"delay"`
	Scheduled string `json:"scheduled"`
	Estimated string `json:"estimated"`
	Actual    string `json:"actual"`
}

type aeroDataAirline struct {
	Name string `json:"name"`
	IATA string `json:"iata"`
	ICAO string `json:"icao"`
}

type aeroDataIdent struct {
	Number string `json:"number"`
	IATA   string `json:"iata"`
	ICAO   string `json:"icao"`
}

type aeroDataAircraft struct {
	Registration string `json:"registration"`
	IATA         string `json:"iata"`
	ICAO         string `json:"icao"`
	ICAO24       string `json:"icao24"`
}

// errRateLimited marks 429/402-class responses, which exhaust the budget.
type errRateLimited struct {
	status int
}

func (e *errRateLimited) Error() string {
	return fmt.Sprintf("provider rate limited (status %d)", e.status)
}

// Find tries a fixed set of query shapes, stopping at the first
// non-empty result. Each attempt actually issued charges one quota
// unit; a rate-limit response force-exhausts the budget and aborts the
// remaining attempts.
func (a *AeroData) Find(ctx context.Context, ident, altIdent string) (*types.FlightRecord, error) {
	type attempt struct {
		ident  string
		status string
	}
	attempts := []attempt{
		{ident: ident, status: "active"},
		{ident: ident},
	}
	if altIdent != "" && altIdent != ident {
		attempts = append(attempts, attempt{ident: altIdent})
	}

	for _, at := range attempts {
		if !a.budget.TryConsume() {
			log.Printf("Quota exhausted, skipping remaining %s attempts", a.Name())
			return nil, nil
		}

		flight, err := a.query(ctx, at.ident, at.status)
		if err != nil {
			if _, limited := err.(*errRateLimited); limited {
				a.budget.ForceExhaust()
				log.Printf("Warning: %s reported rate limit, budget force-exhausted", a.Name())
				return nil, nil
			}
			return nil, err
		}
		if flight != nil {
			return a.toRecord(flight), nil
		}
	}
	return nil, nil
}

func (a *AeroData) query(ctx context.Context, ident, status string) (*aeroDataFlight, error) {
	params := url.Values{}
	params.Set("access_key", a.apiKey)
	params.Set("flight_iata", ident)
	if status != "" {
		params.Set("flight_status", status)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		a.baseURL+"/flights?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusPaymentRequired {
		return nil, &errRateLimited{status: resp.StatusCode}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	var raw aeroDataResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	if len(raw.Data) == 0 {
		return nil, nil
	}
	return &raw.Data[0], nil
}

// toRecord converts the provider payload into a FlightRecord, deriving
// status from the scheduled/actual instants rather than trusting the
// provider's own status string, which lags.
func (a *AeroData) toRecord(f *aeroDataFlight) *types.FlightRecord {
	now := a.now()

	rec := &types.FlightRecord{
		FlightNumber: strings.ToUpper(f.Flight.IATA),
		Airline:      f.Airline.Name,
		AirlineCode:  strings.ToUpper(f.Airline.IATA),
		Departure:    a.toEndpoint(f.Departure),
		Arrival:      a.toEndpoint(f.Arrival),
		Source:       types.SourceScheduled,
		LastUpdate:   now,
	}
	if rec.FlightNumber == "" {
		rec.FlightNumber = strings.ToUpper(f.Flight.ICAO)
	}

	departed := pickTime(rec.Departure.Actual, rec.Departure.Scheduled)
	arrived := pickTime(rec.Arrival.Actual, rec.Arrival.Scheduled)
	switch {
	case !arrived.IsZero() && arrived.Before(now):
		rec.Status = types.StatusLanded
	case !departed.IsZero() && departed.Before(now):
		rec.Status = types.StatusInFlight
	default:
		rec.Status = types.StatusScheduled
	}

	return rec
}

func (a *AeroData) toEndpoint(e aeroDataEndpoint) types.Endpoint {
	return types.Endpoint{
		Airport:      e.Airport,
		Code:         strings.ToUpper(e.IATA),
		Terminal:     e.Terminal,
		Gate:         e.Gate,
		DelayMinutes: e.Delay,
		Scheduled:    parseTime(e.Scheduled),
		Estimated:    parseTime(e.Estimated),
		Actual:       parseTime(e.Actual),
	}
}

func pickTime(actual, scheduled time.Time) time.Time {
	if !actual.IsZero() {
		return actual
	}
	return scheduled
}

// parseTime handles the provider's timestamp flavors; a malformed or
// empty value is the zero time, never an error.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
