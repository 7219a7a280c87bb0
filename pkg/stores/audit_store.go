package stores

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	// SQLite driver
	_ "modernc.org/sqlite"

	"github.com/samy8144/AI-Operations-Coordinator/pkg/engine"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// AuditStore records scan runs and status-change events in SQLite, giving
// operators a history of what the engine found and what was changed.
type AuditStore struct {
	db   *sql.DB
	path string
}

// NewAuditStore creates an audit store instance for the given database
// path. Call Init before use.
func NewAuditStore(path string) (*AuditStore, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is required")
	}
	return &AuditStore{path: path}, nil
}

// Init opens the database, enables WAL mode, and runs migrations.
func (s *AuditStore) Init(ctx context.Context) error {
	dsn := fmt.Sprintf("%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", s.path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s.db = db
	return s.migrate()
}

// Close closes the database connection.
func (s *AuditStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *AuditStore) migrate() error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}
	driver, err := sqlite3.WithInstance(s.db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("failed to create database driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// RecordScan persists a scan report summary and its individual conflicts.
func (s *AuditStore) RecordScan(ctx context.Context, report *engine.ScanReport) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO scans (id, generated_at, conflicts, high, medium, low, advisories)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		report.ID,
		report.GeneratedAt,
		len(report.Conflicts),
		report.CountBySeverity(engine.SeverityHigh),
		report.CountBySeverity(engine.SeverityMedium),
		report.CountBySeverity(engine.SeverityLow),
		len(report.Advisories),
	)
	if err != nil {
		return fmt.Errorf("failed to insert scan: %w", err)
	}

	for i := range report.Conflicts {
		c := &report.Conflicts[i]
		_, err = tx.ExecContext(ctx,
			`INSERT INTO scan_conflicts (scan_id, type, severity, pilot_id, drone_id, mission_id, description)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			report.ID, string(c.Type), string(c.Severity), c.PilotID, c.DroneID, c.MissionID, c.Description,
		)
		if err != nil {
			return fmt.Errorf("failed to insert conflict: %w", err)
		}
	}

	return tx.Commit()
}

// RecordStatusEvent persists one status change.
func (s *AuditStore) RecordStatusEvent(ctx context.Context, event *StatusEvent) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO status_events (resource_kind, resource_id, old_status, new_status, note)
		 VALUES (?, ?, ?, ?, ?)`,
		event.ResourceKind, event.ResourceID, event.OldStatus, event.NewStatus, event.Note,
	)
	if err != nil {
		return fmt.Errorf("failed to insert status event: %w", err)
	}
	return nil
}

// RecentScans returns the latest scan summaries, newest first.
func (s *AuditStore) RecentScans(ctx context.Context, limit int) ([]ScanRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, generated_at, conflicts, high, medium, low, advisories, created_at
		 FROM scans ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query scans: %w", err)
	}
	defer rows.Close()

	var scans []ScanRecord
	for rows.Next() {
		var r ScanRecord
		if err := rows.Scan(&r.ID, &r.GeneratedAt, &r.Conflicts, &r.High, &r.Medium, &r.Low, &r.Advisories, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		scans = append(scans, r)
	}
	return scans, rows.Err()
}

// RecentStatusEvents returns the latest status changes, newest first.
func (s *AuditStore) RecentStatusEvents(ctx context.Context, limit int) ([]StatusEvent, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, resource_kind, resource_id, old_status, new_status, COALESCE(note, ''), created_at
		 FROM status_events ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query status events: %w", err)
	}
	defer rows.Close()

	var events []StatusEvent
	for rows.Next() {
		var e StatusEvent
		if err := rows.Scan(&e.ID, &e.ResourceKind, &e.ResourceID, &e.OldStatus, &e.NewStatus, &e.Note, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
