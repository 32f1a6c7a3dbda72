package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/skyquery/flightlookup/internal/types"
)

// Client persists lookup audit rows and usage snapshots to Postgres.
// The store is an optional sink: the engine keeps serving lookups when
// it is absent or failing.
type Client struct {
	db *sql.DB
}

// New creates a new database client
func New(connStr string) (*Client, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	return &Client{db: db}, nil
}

// NewWithDB wraps an existing database handle (useful for testing)
func NewWithDB(db *sql.DB) *Client {
	return &Client{db: db}
}

// Close closes the database connection
func (c *Client) Close() error {
	return c.db.Close()
}

// EnsureSchema creates the tables the store writes to if they do not exist.
func (c *Client) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS flight_lookups (
			lookup_id UUID PRIMARY KEY,
			identifier TEXT NOT NULL,
			source TEXT NOT NULL,
			live BOOLEAN NOT NULL,
			status TEXT NOT NULL,
			cache_hit BOOLEAN NOT NULL,
			duration_ms BIGINT NOT NULL,
			resolved_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_flight_lookups_identifier
			ON flight_lookups (identifier, resolved_at)`,
		`CREATE TABLE IF NOT EXISTS usage_snapshots (
			time TIMESTAMPTZ NOT NULL,
			total_lookups BIGINT NOT NULL,
			cache_hits BIGINT NOT NULL,
			live_hits BIGINT NOT NULL,
			scheduled_hits BIGINT NOT NULL,
			hybrid_results BIGINT NOT NULL,
			mock_results BIGINT NOT NULL,
			provider_errors BIGINT NOT NULL,
			processing_time_ms BIGINT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := c.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

// StoreLookupAudit stores one audit row for a resolve call
func (c *Client) StoreLookupAudit(audit *types.LookupAudit) error {
	query := `
		INSERT INTO flight_lookups (
			lookup_id, identifier, source, live, status,
			cache_hit, duration_ms, resolved_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := c.db.Exec(query,
		audit.LookupID, audit.Identifier, audit.Source, audit.Live,
		audit.Status, audit.CacheHit, audit.Duration.Milliseconds(),
		audit.ResolvedAt,
	)
	return err
}

// RecentLookups retrieves audit rows for an identifier, newest first
func (c *Client) RecentLookups(identifier string, limit int) ([]*types.LookupAudit, error) {
	query := `
		SELECT lookup_id, identifier, source, live, status,
			cache_hit, duration_ms, resolved_at
		FROM flight_lookups
		WHERE identifier = $1
		ORDER BY resolved_at DESC
		LIMIT $2
	`
	rows, err := c.db.Query(query, identifier, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var audits []*types.LookupAudit
	for rows.Next() {
		var a types.LookupAudit
		var durationMs int64
		if err := rows.Scan(
			&a.LookupID, &a.Identifier, &a.Source, &a.Live, &a.Status,
			&a.CacheHit, &durationMs, &a.ResolvedAt,
		); err != nil {
			return nil, err
		}
		a.Duration = time.Duration(durationMs) * time.Millisecond
		audits = append(audits, &a)
	}
	return audits, rows.Err()
}

// StoreUsageSnapshot stores aggregated lookup statistics
func (c *Client) StoreUsageSnapshot(stats map[string]interface{}) error {
	query := `
		INSERT INTO usage_snapshots (
			time, total_lookups, cache_hits, live_hits, scheduled_hits,
			hybrid_results, mock_results, provider_errors, processing_time_ms
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	var processingTime int64
	if d, ok := stats["processing_time"].(time.Duration); ok {
		processingTime = d.Milliseconds()
	}

	_, err := c.db.Exec(query,
		time.Now(),
		stats["total_lookups"],
		stats["cache_hits"],
		stats["live_hits"],
		stats["scheduled_hits"],
		stats["hybrid_results"],
		stats["mock_results"],
		stats["provider_errors"],
		processingTime,
	)

	return err
}
