package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/wirraway/authgate/internal/authgate/domain"
)

// SQLiteStore is the sqlite-backed directory. Emails are compared
// case-insensitively; roles are stored space-delimited.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the directory database.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Resolve implements Resolver. Any failure other than a missing row maps to
// ErrUnavailable so callers can distinguish "unknown user" from "directory
// down".
func (s *SQLiteStore) Resolve(ctx context.Context, email string) (domain.DirectoryRecord, error) {
	u, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		return domain.DirectoryRecord{}, err
	}

	return domain.DirectoryRecord{
		Roles:      u.Roles,
		TenantID:   u.TenantID,
		TenantName: u.TenantName,
	}, nil
}

// GetUserByEmail returns the full directory row, including the password
// hash for the credentials login path.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (User, error) {
	const q = `
		SELECT email, roles, tenant_id, tenant_name, password_hash
		FROM directory_users
		WHERE email = lower(?)
	`

	var u User
	var roles string
	err := s.db.QueryRowContext(ctx, q, strings.TrimSpace(email)).
		Scan(&u.Email, &roles, &u.TenantID, &u.TenantName, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	u.Roles = splitRoles(roles)
	return u, nil
}

// CreateUser inserts a directory row. The email is lowercased on write so
// lookups stay case-insensitive.
func (s *SQLiteStore) CreateUser(ctx context.Context, u User) error {
	const q = `
		INSERT INTO directory_users (email, roles, tenant_id, tenant_name, password_hash, created_at, updated_at)
		VALUES (lower(?), ?, ?, ?, ?, ?, ?)
	`

	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, q,
		strings.TrimSpace(u.Email),
		strings.Join(u.Roles, " "),
		u.TenantID,
		u.TenantName,
		u.PasswordHash,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("directory: create user: %w", err)
	}
	return nil
}

// UpdateUserRoles replaces the roles and tenant assignment for an email.
// Outstanding tokens keep their old claims until they expire; there is no
// revocation list.
func (s *SQLiteStore) UpdateUserRoles(ctx context.Context, email string, roles []string, tenantID, tenantName string) error {
	const q = `
		UPDATE directory_users
		SET roles = ?, tenant_id = ?, tenant_name = ?, updated_at = ?
		WHERE email = lower(?)
	`

	res, err := s.db.ExecContext(ctx, q,
		strings.Join(roles, " "),
		tenantID,
		tenantName,
		time.Now().UTC(),
		strings.TrimSpace(email),
	)
	if err != nil {
		return fmt.Errorf("directory: update roles: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("directory: update roles: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func splitRoles(s string) []string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}
	return fields
}
