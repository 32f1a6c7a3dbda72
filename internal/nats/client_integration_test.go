package nats

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	natscontainer "github.com/testcontainers/testcontainers-go/modules/nats"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/skyquery/flightlookup/internal/types"
)

func startNATS(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := natscontainer.Run(ctx, "nats:2.9-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Server is ready"),
		),
	)
	if err != nil {
		t.Fatalf("Failed to start NATS container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Failed to terminate NATS container: %v", err)
		}
	})

	url, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("Failed to get NATS connection string: %v", err)
	}
	return url
}

// stubResolver answers every lookup with the same canned record.
type stubResolver struct {
	rec *types.FlightRecord
}

func (s *stubResolver) Resolve(_ context.Context, identifier string) *types.FlightRecord {
	rec := *s.rec
	rec.FlightNumber = identifier
	return &rec
}

func TestIntegration_PublishAndSubscribeResolved(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	client, err := New(startNATS(t))
	if err != nil {
		t.Fatalf("Failed to create NATS client: %v", err)
	}
	defer client.Close()

	received := make(chan *types.FlightRecord, 1)
	if err := client.SubscribeResolved(func(rec *types.FlightRecord) {
		received <- rec
	}); err != nil {
		t.Fatalf("SubscribeResolved() failed: %v", err)
	}

	// Give subscription time to establish
	time.Sleep(100 * time.Millisecond)

	rec := &types.FlightRecord{
		FlightNumber: "AI101",
		Airline:      "Air India",
		Status:       types.StatusInFlight,
		Source:       types.SourceHybrid,
		Live:         true,
		LastUpdate:   time.Now().UTC(),
	}
	if err := client.PublishResolved(rec); err != nil {
		t.Fatalf("PublishResolved() failed: %v", err)
	}

	select {
	case got := <-received:
		if got.FlightNumber != "AI101" {
			t.Errorf("FlightNumber = %s, want AI101", got.FlightNumber)
		}
		if got.Source != types.SourceHybrid {
			t.Errorf("Source = %s, want %s", got.Source, types.SourceHybrid)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Timeout waiting for resolved record")
	}
}

func TestIntegration_ServeLookups(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	client, err := New(startNATS(t))
	if err != nil {
		t.Fatalf("Failed to create NATS client: %v", err)
	}
	defer client.Close()

	resolver := &stubResolver{rec: &types.FlightRecord{
		Airline: "Air India",
		Status:  types.StatusScheduled,
		Source:  types.SourceMock,
	}}
	if err := client.ServeLookups(context.Background(), resolver); err != nil {
		t.Fatalf("ServeLookups() failed: %v", err)
	}

	time.Sleep(100 * time.Millisecond)

	msg, err := client.conn.Request(SubjectLookup, []byte(`{"flight":"AI101"}`), 5*time.Second)
	if err != nil {
		t.Fatalf("Request() failed: %v", err)
	}

	var rec types.FlightRecord
	if err := json.Unmarshal(msg.Data, &rec); err != nil {
		t.Fatalf("Failed to unmarshal reply: %v", err)
	}
	if rec.FlightNumber != "AI101" {
		t.Errorf("FlightNumber = %s, want AI101", rec.FlightNumber)
	}
}

func TestIntegration_ServeLookupsMalformedRequest(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	client, err := New(startNATS(t))
	if err != nil {
		t.Fatalf("Failed to create NATS client: %v", err)
	}
	defer client.Close()

	resolver := &stubResolver{rec: &types.FlightRecord{Source: types.SourceMock}}
	if err := client.ServeLookups(context.Background(), resolver); err != nil {
		t.Fatalf("ServeLookups() failed: %v", err)
	}

	time.Sleep(100 * time.Millisecond)

	msg, err := client.conn.Request(SubjectLookup, []byte(`not json`), 5*time.Second)
	if err != nil {
		t.Fatalf("Request() failed: %v", err)
	}

	var reply map[string]string
	if err := json.Unmarshal(msg.Data, &reply); err != nil {
		t.Fatalf("Failed to unmarshal error reply: %v", err)
	}
	if reply["error"] == "" {
		t.Errorf("reply = %s, want an error payload", msg.Data)
	}
}
