package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/skyquery/flightlookup/internal/types"
)

const defaultOpenSkyBaseURL = "https://opensky-network.org/api"

// OpenSky queries the OpenSky Network live state-vector feed. Calls are
// free and unmetered; authentication is optional and only loosens the
// provider-side rate limits.
type OpenSky struct {
	baseURL    string
	httpClient *http.Client
	bearer     Bearer
}

// OpenSkyOption configures the OpenSky adapter.
type OpenSkyOption func(*OpenSky)

// WithOpenSkyBaseURL overrides the API endpoint (useful for testing).
func WithOpenSkyBaseURL(u string) OpenSkyOption {
	return func(o *OpenSky) { o.baseURL = u }
}

// WithOpenSkyHTTPClient sets a custom HTTP client.
func WithOpenSkyHTTPClient(hc *http.Client) OpenSkyOption {
	return func(o *OpenSky) { o.httpClient = hc }
}

// NewOpenSky creates the live provider adapter. bearer may be nil for
// unauthenticated operation.
func NewOpenSky(bearer Bearer, opts ...OpenSkyOption) *OpenSky {
	o := &OpenSky{
		baseURL:    defaultOpenSkyBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		bearer:     bearer,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Name returns the provider name for logging.
func (o *OpenSky) Name() string {
	return "opensky"
}

// openSkyResponse mirrors the JSON shape returned by /states/all. Each
// state is a positional array, not an object.
type openSkyResponse struct {
	Time   int64           `json:"time"`
	States [][]interface{} `json:"states"`
}

// Find fetches the current state vectors and scans them for a callsign
// containing the identifier: the exact form first, then the 2-letter
// carrier prefix as a looser fallback. A blank identifier is absent,
// never a wildcard over the whole feed.
func (o *OpenSky) Find(ctx context.Context, ident string) (*types.StateVector, error) {
	ident = strings.ToUpper(strings.TrimSpace(ident))
	if ident == "" {
		return nil, nil
	}

	states, err := o.fetchStates(ctx)
	if err != nil {
		return nil, err
	}

	if sv := matchCallsign(states, ident); sv != nil {
		return sv, nil
	}
	if len(ident) > 2 {
		if sv := matchCallsign(states, ident[:2]); sv != nil {
			return sv, nil
		}
	}
	return nil, nil
}

func matchCallsign(states []types.StateVector, term string) *types.StateVector {
	for i := range states {
		callsign := strings.ToUpper(strings.TrimSpace(states[i].Callsign))
		if callsign != "" && strings.Contains(callsign, term) {
			return &states[i]
		}
	}
	return nil
}

func (o *OpenSky) fetchStates(ctx context.Context) ([]types.StateVector, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/states/all", nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	if o.bearer != nil {
		tok, err := o.bearer.Token(ctx)
		if err != nil {
			// Degrade to unauthenticated rather than failing the lookup.
			log.Printf("Warning: OpenSky token acquisition failed, proceeding unauthenticated: %v", err)
		} else if tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	var raw openSkyResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	return parseStates(raw), nil
}

// parseStates converts the positional arrays into typed state vectors,
// skipping rows too short to carry a full vector.
func parseStates(raw openSkyResponse) []types.StateVector {
	states := make([]types.StateVector, 0, len(raw.States))
	for _, s := range raw.States {
		if len(s) < 17 {
			continue
		}
		sv := types.StateVector{
			ICAO24:        stringVal(s[0]),
			Callsign:      stringVal(s[1]),
			OriginCountry: stringVal(s[2]),
			OnGround:      boolVal(s[8]),
			Squawk:        stringVal(s[14]),
		}
		if v, ok := s[4].(float64); ok {
			sv.LastContact = time.Unix(int64(v), 0)
		}
		if v, ok := s[5].(float64); ok {
			sv.Longitude = v
		}
		if v, ok := s[6].(float64); ok {
			sv.Latitude = v
		}
		if v, ok := s[7].(float64); ok {
			sv.BaroAltitude = v
		}
		if v, ok := s[9].(float64); ok {
			sv.Velocity = v
		}
		if v, ok := s[10].(float64); ok {
			sv.TrueTrack = v
		}
		if v, ok := s[11].(float64); ok {
			sv.VerticalRate = v
		}
		if v, ok := s[13].(float64); ok {
			sv.GeoAltitude = v
		}
		states = append(states, sv)
	}
	return states
}

func stringVal(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func boolVal(v interface{}) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return false
}
