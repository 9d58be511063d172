// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tidwall/gjson"
	_ "modernc.org/sqlite" // SQLite driver
)

// ErrInvalidProfile is returned for an empty profile name.
var ErrInvalidProfile = errors.New("profile name cannot be empty")

// Profile describes one stored schedule.
type Profile struct {
	Name      string
	Version   int
	UpdatedAt time.Time
}

// SQLite stores encoded schedule snapshots, one row per profile.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// LoadSnapshot returns the stored record for profile, or nil if there is none.
func (s *SQLite) LoadSnapshot(ctx context.Context, profile string) ([]byte, error) {
	if profile == "" {
		return nil, ErrInvalidProfile
	}

	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM snapshots WHERE profile = ?`, profile,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying snapshot: %w", err)
	}
	return data, nil
}

// SaveSnapshot overwrites the stored record for profile.
func (s *SQLite) SaveSnapshot(ctx context.Context, profile string, data []byte) error {
	if profile == "" {
		return ErrInvalidProfile
	}

	query := `
		INSERT INTO snapshots (profile, version, data, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(profile) DO UPDATE SET
			version    = excluded.version,
			data       = excluded.data,
			updated_at = excluded.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		profile,
		recordVersion(data),
		data,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}

// ListProfiles returns every stored profile, most recently updated first.
func (s *SQLite) ListProfiles(ctx context.Context) ([]Profile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT profile, version, updated_at FROM snapshots ORDER BY updated_at DESC, profile`)
	if err != nil {
		return nil, fmt.Errorf("querying profiles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var profiles []Profile
	for rows.Next() {
		var (
			p         Profile
			updatedAt string
		)
		if err := rows.Scan(&p.Name, &p.Version, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning profile: %w", err)
		}
		p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing updated_at: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating profiles: %w", err)
	}
	return profiles, nil
}

// DeleteProfile removes a stored profile. Deleting a missing profile is not
// an error.
func (s *SQLite) DeleteProfile(ctx context.Context, profile string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE profile = ?`, profile); err != nil {
		return fmt.Errorf("deleting snapshot: %w", err)
	}
	return nil
}

// CopyProfile copies the record of src into dst inside one transaction.
// It returns false if src does not exist.
func (s *SQLite) CopyProfile(ctx context.Context, src, dst string) (bool, error) {
	if src == "" || dst == "" {
		return false, ErrInvalidProfile
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var (
		version int
		data    []byte
	)
	err = tx.QueryRowContext(ctx,
		`SELECT version, data FROM snapshots WHERE profile = ?`, src,
	).Scan(&version, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("querying snapshot: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO snapshots (profile, version, data, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(profile) DO UPDATE SET
			version    = excluded.version,
			data       = excluded.data,
			updated_at = excluded.updated_at
	`, dst, version, data, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return false, fmt.Errorf("copying snapshot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing transaction: %w", err)
	}
	return true, nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// recordVersion reads the schema version stamped in a record, 0 if absent.
func recordVersion(data []byte) int {
	return int(gjson.GetBytes(data, "version").Int())
}
