// Package directory resolves authorization metadata (roles, tenant) for an
// email address. The directory is the system of record; authgate only reads
// it. Absence of a record is not an error and is defaulted by the caller,
// but a lookup failure must surface: silently granting default-user access
// during a directory outage would be a silent privilege decision.
package directory

import (
	"context"
	"errors"

	"github.com/wirraway/authgate/internal/authgate/domain"
)

var (
	// ErrNotFound means the directory holds no record for the email.
	// Callers default to minimal privilege, never reject.
	ErrNotFound = errors.New("directory: user not found")

	// ErrUnavailable means the lookup itself failed. This is NOT a miss
	// and must never be defaulted.
	ErrUnavailable = errors.New("directory: unavailable")
)

// Resolver looks up the directory record for an email address.
type Resolver interface {
	Resolve(ctx context.Context, email string) (domain.DirectoryRecord, error)
}

// User is a full directory row, including the credential hash used by the
// password login path.
type User struct {
	Email        string
	Roles        []string
	TenantID     string
	TenantName   string
	PasswordHash string // argon2id encoded; empty for SSO-only users
}
