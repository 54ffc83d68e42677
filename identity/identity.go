// Package identity provides the account record and token claim types shared
// by the authentication service and the credential store.
//
// An Identity is a durable account record held by the credential store. The
// core never mutates one directly: registration asks the store to create it,
// and login reads it back to build the Claims embedded in a session token.
package identity

import "time"

// DateOnly is the wire format for birth dates, both in API responses and in
// token claims.
const DateOnly = "2006-01-02"

// Identity represents a registered account.
type Identity struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex;size:64"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:32"`
	BirthDate time.Time `json:"birth_date"`

	// PasswordHash is owned by the credential store and never serialized.
	PasswordHash string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Claims is the subset of an Identity embedded in a session token. It is
// assembled from the store's copy of the identity, never from client input.
type Claims struct {
	ID        string
	Username  string
	BirthDate string
}

// NewClaims extracts token claims from an identity. The birth date is
// truncated to a date-only string.
func NewClaims(ident *Identity) Claims {
	return Claims{
		ID:        ident.ID,
		Username:  ident.Username,
		BirthDate: ident.BirthDate.Format(DateOnly),
	}
}
