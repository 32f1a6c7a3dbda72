package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/skyquery/flightlookup/internal/types"
)

const (
	// SubjectResolved carries every record the engine resolves.
	SubjectResolved = "flights.resolved"

	// SubjectLookup is the request/reply endpoint for lookups.
	SubjectLookup = "flights.lookup"
)

// Resolver is the slice of the engine the lookup service needs.
type Resolver interface {
	Resolve(ctx context.Context, identifier string) *types.FlightRecord
}

// LookupRequest is the payload expected on SubjectLookup.
type LookupRequest struct {
	Flight string `json:"flight"`
}

// Client represents a NATS client
type Client struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// New creates a new NATS client
func New(url string) (*Client, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to get JetStream context: %w", err)
	}

	// Create stream if it doesn't exist
	_, err = js.AddStream(&nats.StreamConfig{
		Name:     "FLIGHTS",
		Subjects: []string{SubjectResolved},
		Storage:  nats.FileStorage,
		MaxAge:   24 * time.Hour,
	})
	if err != nil && !strings.Contains(err.Error(), "stream name already in use") {
		nc.Close()
		return nil, fmt.Errorf("failed to create stream: %w", err)
	}

	return &Client{
		conn: nc,
		js:   js,
	}, nil
}

// PublishResolved publishes a resolved flight record
func (c *Client) PublishResolved(rec *types.FlightRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	_, err = c.js.Publish(SubjectResolved, data)
	if err != nil {
		return fmt.Errorf("failed to publish record: %w", err)
	}

	return nil
}

// SubscribeResolved subscribes to resolved flight records
func (c *Client) SubscribeResolved(handler func(*types.FlightRecord)) error {
	_, err := c.js.Subscribe(SubjectResolved, func(msg *nats.Msg) {
		var rec types.FlightRecord
		if err := json.Unmarshal(msg.Data, &rec); err != nil {
			log.Printf("Error unmarshaling record: %v", err)
			return
		}
		handler(&rec)
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	return nil
}

// ServeLookups answers lookup requests on SubjectLookup until the
// subscription is closed. Malformed requests get an error reply;
// resolution itself never fails.
func (c *Client) ServeLookups(ctx context.Context, resolver Resolver) error {
	_, err := c.conn.Subscribe(SubjectLookup, func(msg *nats.Msg) {
		var req LookupRequest
		if err := json.Unmarshal(msg.Data, &req); err != nil || strings.TrimSpace(req.Flight) == "" {
			respond(msg, []byte(`{"error":"expected {\"flight\":\"<identifier>\"}"}`))
			return
		}

		rec := resolver.Resolve(ctx, req.Flight)
		data, err := json.Marshal(rec)
		if err != nil {
			log.Printf("Error marshaling resolved record: %v", err)
			respond(msg, []byte(`{"error":"internal"}`))
			return
		}
		respond(msg, data)
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to lookups: %w", err)
	}

	return nil
}

func respond(msg *nats.Msg, data []byte) {
	if err := msg.Respond(data); err != nil {
		log.Printf("Error responding to lookup request: %v", err)
	}
}

// Close closes the NATS connection
func (c *Client) Close() {
	if c.conn != nil {
		c.conn.Close()
	}
}
