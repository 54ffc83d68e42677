// Package store defines the credential store contract.
//
// The store is the system of record for accounts: it owns password hashing
// and verification, enforces username/email uniqueness, and reports
// rejections as structured reasons. Any backend implementing CredentialStore
// is substitutable; the persistence package provides the GORM-based default.
package store

import (
	"context"
	"errors"

	"github.com/NicolasLepore/DiasDeChuvaDiasDeSol/identity"
)

// ErrUnavailable marks infrastructure faults (connectivity, driver errors)
// as opposed to user-caused rejections. Implementations wrap it so callers
// can test with errors.Is.
var ErrUnavailable = errors.New("credential store unavailable")

// Rejection is a single reason the store refused an operation.
type Rejection struct {
	Description string `json:"description"`
}

// CreateResult reports the outcome of an account creation attempt. When
// Succeeded is false, Errors holds every rejection reason in the order the
// store found them.
type CreateResult struct {
	Succeeded bool
	Errors    []Rejection
}

// CredentialStore is the contract the authentication service depends on.
//
// CreateAccount is all-or-nothing: a rejected creation leaves no partial
// account behind. VerifyAndFetch deliberately collapses unknown-user and
// wrong-password into a single false result so callers cannot enumerate
// usernames. The error return on any method is reserved for infrastructure
// faults and wraps ErrUnavailable.
type CredentialStore interface {
	CreateAccount(ctx context.Context, username, email, password string) (CreateResult, error)
	VerifyAndFetch(ctx context.Context, username, password string) (bool, error)
	FindByUsername(ctx context.Context, username string) (*identity.Identity, error)
	ListIdentities(ctx context.Context) ([]identity.Identity, error)
}
