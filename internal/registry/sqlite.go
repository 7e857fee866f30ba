package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"photovault/internal/gallery"
	"photovault/internal/registry/migrations"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// SQLiteRegistry implements the Registry interface using a local SQLite
// database. It is the "remote" registry of a single-machine setup; driver
// and connection failures surface as ErrRemoteUnavailable so callers treat
// it like any other unreachable backend.
type SQLiteRegistry struct {
	db    *sql.DB
	clock gallery.Clock
	path  string
}

// NewSQLiteRegistry opens (and migrates, if new) the registry database at
// path. path can be a file path or ":memory:".
func NewSQLiteRegistry(path string, clock gallery.Clock) (*SQLiteRegistry, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating registry schema: %w", err)
	}

	return &SQLiteRegistry{db: db, clock: clock, path: path}, nil
}

// OpenConnection opens and configures a SQLite connection with the
// PRAGMAs the registry relies on.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", gallery.ErrRemoteUnavailable, err)
	}

	// Foreign keys are OFF by default in SQLite.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: enabling foreign keys: %v", gallery.ErrRemoteUnavailable, err)
	}

	return db, nil
}

// Close closes the underlying database.
func (r *SQLiteRegistry) Close() error {
	return r.db.Close()
}

func (r *SQLiteRegistry) ListFiles(ctx context.Context, caller string) ([]gallery.FileRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, size, mime_type, uploaded_at
		 FROM file_references WHERE caller = ? ORDER BY rowid`, caller)
	if err != nil {
		return nil, fmt.Errorf("%w: listing files: %v", gallery.ErrRemoteUnavailable, err)
	}
	defer rows.Close()

	var files []gallery.FileRecord
	for rows.Next() {
		var f gallery.FileRecord
		if err := rows.Scan(&f.ID, &f.Name, &f.Size, &f.MimeType, &f.UploadedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning file record: %v", gallery.ErrRemoteUnavailable, err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading file records: %v", gallery.ErrRemoteUnavailable, err)
	}
	return files, nil
}

func (r *SQLiteRegistry) SaveFileReference(ctx context.Context, caller string, ref gallery.FileReference) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO file_references (caller, id, blob_handle, name, size, mime_type, uploaded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		caller, ref.ID, ref.BlobHandle, ref.Name, ref.Size, ref.MimeType, r.clock.Now().UnixNano())
	if err != nil {
		if isConstraintViolation(err) {
			return fmt.Errorf("%w: duplicate file id %q", gallery.ErrRejected, ref.ID)
		}
		return fmt.Errorf("%w: saving file reference: %v", gallery.ErrRemoteUnavailable, err)
	}
	return nil
}

func (r *SQLiteRegistry) RemoveFileReference(ctx context.Context, caller string, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM file_references WHERE caller = ? AND id = ?`, caller, id)
	if err != nil {
		return fmt.Errorf("%w: removing file reference: %v", gallery.ErrRemoteUnavailable, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: checking removal: %v", gallery.ErrRemoteUnavailable, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: no file reference %q", gallery.ErrRejected, id)
	}
	return nil
}

func (r *SQLiteRegistry) GetUserProfile(ctx context.Context, caller string) (*gallery.UserProfile, error) {
	var p gallery.UserProfile
	err := r.db.QueryRowContext(ctx,
		`SELECT name FROM user_profiles WHERE caller = ?`, caller).Scan(&p.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: fetching profile: %v", gallery.ErrRemoteUnavailable, err)
	}
	return &p, nil
}

func (r *SQLiteRegistry) SaveUserProfile(ctx context.Context, caller string, profile gallery.UserProfile) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_profiles (caller, name) VALUES (?, ?)
		 ON CONFLICT(caller) DO UPDATE SET name = excluded.name`,
		caller, profile.Name)
	if err != nil {
		return fmt.Errorf("%w: saving profile: %v", gallery.ErrRemoteUnavailable, err)
	}
	return nil
}

func (r *SQLiteRegistry) Quota(ctx context.Context, caller string) (int64, error) {
	var quota int64
	err := r.db.QueryRowContext(ctx,
		`SELECT quota_bytes FROM caller_quotas WHERE caller = ?`, caller).Scan(&quota)
	if errors.Is(err, sql.ErrNoRows) {
		return gallery.DefaultQuotaBytes, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: fetching quota: %v", gallery.ErrRemoteUnavailable, err)
	}
	return quota, nil
}

// SetQuota assigns an explicit quota for a caller.
func (r *SQLiteRegistry) SetQuota(ctx context.Context, caller string, quota int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO caller_quotas (caller, quota_bytes) VALUES (?, ?)
		 ON CONFLICT(caller) DO UPDATE SET quota_bytes = excluded.quota_bytes`,
		caller, quota)
	if err != nil {
		return fmt.Errorf("%w: saving quota: %v", gallery.ErrRemoteUnavailable, err)
	}
	return nil
}

// isConstraintViolation reports whether err is a SQLite constraint
// failure rather than a connection-level problem.
func isConstraintViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint
}

// DatabasePath returns the on-disk location for a registry rooted at dataDir.
func DatabasePath(dataDir string) string {
	return filepath.Join(dataDir, "registry.db")
}

var _ gallery.Registry = (*SQLiteRegistry)(nil)
