package nats

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewInvalidURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"empty URL", ""},
		{"malformed URL", "not-a-url"},
		{"unreachable host", "nats://127.0.0.1:1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(tt.url)
			if err == nil {
				client.Close()
				t.Fatal("New() should fail")
			}
			if client != nil {
				t.Error("New() should return nil client on error")
			}
		})
	}
}

func TestCloseNilSafety(t *testing.T) {
	client := &Client{}
	client.Close() // must not panic
}

func TestSubjects(t *testing.T) {
	if SubjectResolved != "flights.resolved" {
		t.Errorf("SubjectResolved = %s, want flights.resolved", SubjectResolved)
	}
	if SubjectLookup != "flights.lookup" {
		t.Errorf("SubjectLookup = %s, want flights.lookup", SubjectLookup)
	}
}

func TestLookupRequestDecoding(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		flight  string
		valid   bool
	}{
		{"well formed", `{"flight":"AI101"}`, "AI101", true},
		{"missing field", `{}`, "", false},
		{"blank flight", `{"flight":"   "}`, "   ", false},
		{"not JSON", `AI101`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req LookupRequest
			err := json.Unmarshal([]byte(tt.payload), &req)
			// This mirrors the guard in ServeLookups.
			ok := err == nil && strings.TrimSpace(req.Flight) != ""
			if ok != tt.valid {
				t.Errorf("valid = %v, want %v", ok, tt.valid)
			}
			if tt.valid && req.Flight != tt.flight {
				t.Errorf("Flight = %q, want %q", req.Flight, tt.flight)
			}
		})
	}
}
