package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/skyquery/flightlookup/internal/types"
)

func newMockClient(t *testing.T) (*Client, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewWithDB(db), mock
}

func TestEnsureSchema(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS flight_lookups`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE INDEX IF NOT EXISTS idx_flight_lookups_identifier`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS usage_snapshots`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := client.EnsureSchema(); err != nil {
		t.Fatalf("EnsureSchema() failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestEnsureSchemaFailure(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS flight_lookups`).
		WillReturnError(fmt.Errorf("permission denied"))

	if err := client.EnsureSchema(); err == nil {
		t.Error("EnsureSchema() should fail when a statement fails")
	}
}

func TestStoreLookupAudit(t *testing.T) {
	client, mock := newMockClient(t)

	resolvedAt := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	audit := &types.LookupAudit{
		LookupID:   "3d6f0e8a-0f7c-4c4c-9f6e-2a1b3c4d5e6f",
		Identifier: "AI101",
		Source:     types.SourceHybrid,
		Live:       true,
		Status:     types.StatusInFlight,
		CacheHit:   false,
		Duration:   350 * time.Millisecond,
		ResolvedAt: resolvedAt,
	}

	mock.ExpectExec(`INSERT INTO flight_lookups`).
		WithArgs(audit.LookupID, "AI101", types.SourceHybrid, true,
			types.StatusInFlight, false, int64(350), resolvedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := client.StoreLookupAudit(audit); err != nil {
		t.Fatalf("StoreLookupAudit() failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRecentLookups(t *testing.T) {
	client, mock := newMockClient(t)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"lookup_id", "identifier", "source", "live", "status",
		"cache_hit", "duration_ms", "resolved_at",
	}).
		AddRow("id-2", "AI101", types.SourceHybrid, true, types.StatusInFlight, false, int64(200), now).
		AddRow("id-1", "AI101", types.SourceMock, false, types.StatusScheduled, false, int64(15), now.Add(-time.Hour))

	mock.ExpectQuery(`SELECT lookup_id, identifier, source`).
		WithArgs("AI101", 10).
		WillReturnRows(rows)

	audits, err := client.RecentLookups("AI101", 10)
	if err != nil {
		t.Fatalf("RecentLookups() failed: %v", err)
	}
	if len(audits) != 2 {
		t.Fatalf("RecentLookups() returned %d rows, want 2", len(audits))
	}
	if audits[0].LookupID != "id-2" {
		t.Errorf("first row LookupID = %s, want id-2 (newest first)", audits[0].LookupID)
	}
	if audits[0].Duration != 200*time.Millisecond {
		t.Errorf("Duration = %s, want 200ms", audits[0].Duration)
	}
}

func TestRecentLookupsEmpty(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectQuery(`SELECT lookup_id, identifier, source`).
		WithArgs("ZZ9999", 5).
		WillReturnRows(sqlmock.NewRows([]string{
			"lookup_id", "identifier", "source", "live", "status",
			"cache_hit", "duration_ms", "resolved_at",
		}))

	audits, err := client.RecentLookups("ZZ9999", 5)
	if err != nil {
		t.Fatalf("RecentLookups() failed: %v", err)
	}
	if len(audits) != 0 {
		t.Errorf("RecentLookups() returned %d rows, want 0", len(audits))
	}
}

func TestStoreUsageSnapshot(t *testing.T) {
	client, mock := newMockClient(t)

	stats := map[string]interface{}{
		"total_lookups":   uint64(42),
		"cache_hits":      uint64(20),
		"live_hits":       uint64(10),
		"scheduled_hits":  uint64(5),
		"hybrid_results":  uint64(4),
		"mock_results":    uint64(3),
		"provider_errors": uint64(1),
		"processing_time": 2 * time.Second,
	}

	mock.ExpectExec(`INSERT INTO usage_snapshots`).
		WithArgs(sqlmock.AnyArg(), uint64(42), uint64(20), uint64(10),
			uint64(5), uint64(4), uint64(3), uint64(1), int64(2000)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := client.StoreUsageSnapshot(stats); err != nil {
		t.Fatalf("StoreUsageSnapshot() failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestStoreUsageSnapshotMissingProcessingTime(t *testing.T) {
	client, mock := newMockClient(t)

	stats := map[string]interface{}{
		"total_lookups":   uint64(1),
		"cache_hits":      uint64(0),
		"live_hits":       uint64(1),
		"scheduled_hits":  uint64(0),
		"hybrid_results":  uint64(0),
		"mock_results":    uint64(0),
		"provider_errors": uint64(0),
	}

	mock.ExpectExec(`INSERT INTO usage_snapshots`).
		WithArgs(sqlmock.AnyArg(), uint64(1), uint64(0), uint64(1),
			uint64(0), uint64(0), uint64(0), uint64(0), int64(0)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// Absent processing_time stores as zero instead of panicking
	if err := client.StoreUsageSnapshot(stats); err != nil {
		t.Fatalf("StoreUsageSnapshot() failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
