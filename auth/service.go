// Package auth implements the authentication service: the sole point of
// contact with the credential store and the token issuer.
package auth

import (
	"context"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/NicolasLepore/DiasDeChuvaDiasDeSol/identity"
	"github.com/NicolasLepore/DiasDeChuvaDiasDeSol/session"
	"github.com/NicolasLepore/DiasDeChuvaDiasDeSol/store"
)

// Store-side field limits, re-validated here independently of transport
// validation.
const (
	MaxUsernameLength = 64
	MaxEmailLength    = 32
	MaxPasswordLength = 16
)

// AccountCredentials is the registration input. It lives for the duration
// of one request and is never persisted.
type AccountCredentials struct {
	Username             string `json:"username"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"passwordConfirmation"`
}

// SignInCredentials is the login input.
type SignInCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Service orchestrates registration and login against the credential store
// and the token issuer. It holds no mutable state; concurrent requests are
// independent.
type Service struct {
	store  store.CredentialStore
	issuer *session.Issuer
	log    *zap.Logger
}

func NewService(credStore store.CredentialStore, issuer *session.Issuer, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: credStore, issuer: issuer, log: log}
}

// RegisterAccount creates a new account. The password/confirmation match is
// the caller's responsibility; this method re-validates field shape and
// delegates hashing, policy, and uniqueness to the store. Account creation
// is all-or-nothing: a rejection leaves no partial account behind.
func (s *Service) RegisterAccount(ctx context.Context, creds AccountCredentials) (*identity.Identity, error) {
	if details := validateAccountFields(creds); len(details) > 0 {
		return nil, validationError(details...)
	}

	result, err := s.store.CreateAccount(ctx, creds.Username, creds.Email, creds.Password)
	if err != nil {
		s.log.Error("credential store unreachable during registration", zap.Error(err))
		return nil, storeUnavailable()
	}
	if !result.Succeeded {
		reasons := make([]string, len(result.Errors))
		for i, rejection := range result.Errors {
			reasons[i] = rejection.Description
		}
		s.log.Info("registration rejected",
			zap.String("username", creds.Username),
			zap.Strings("reasons", reasons),
		)
		return nil, registrationRejected(reasons)
	}

	ident, err := s.store.FindByUsername(ctx, creds.Username)
	if err != nil {
		s.log.Error("credential store unreachable reading back identity", zap.Error(err))
		return nil, storeUnavailable()
	}
	if ident == nil {
		return nil, storeUnavailable()
	}

	s.log.Info("account registered", zap.String("username", ident.Username), zap.String("id", ident.ID))
	return ident, nil
}

// Authenticate verifies a username/password pair and mints a session token.
// Unknown-user and wrong-password produce the same failure so callers
// cannot enumerate usernames.
func (s *Service) Authenticate(ctx context.Context, creds SignInCredentials) (string, error) {
	ok, err := s.store.VerifyAndFetch(ctx, creds.Username, creds.Password)
	if err != nil {
		s.log.Error("credential store unreachable during login", zap.Error(err))
		return "", storeUnavailable()
	}
	if !ok {
		return "", invalidCredentials()
	}

	// Claims come from the store's copy of the identity, never from client
	// input.
	ident, err := s.store.FindByUsername(ctx, creds.Username)
	if err != nil {
		s.log.Error("credential store unreachable reading back identity", zap.Error(err))
		return "", storeUnavailable()
	}
	if ident == nil {
		return "", invalidCredentials()
	}

	token, err := s.issuer.Mint(identity.NewClaims(ident))
	if err != nil {
		return "", fmt.Errorf("auth: mint session token: %w", err)
	}

	s.log.Info("login succeeded", zap.String("username", ident.Username))
	return token, nil
}

// ListIdentities exposes the store's account listing for the administrative
// boundary.
func (s *Service) ListIdentities(ctx context.Context) ([]identity.Identity, error) {
	idents, err := s.store.ListIdentities(ctx)
	if err != nil {
		s.log.Error("credential store unreachable listing identities", zap.Error(err))
		return nil, storeUnavailable()
	}
	return idents, nil
}

func validateAccountFields(creds AccountCredentials) []string {
	var details []string
	if creds.Username == "" {
		details = append(details, "The Username field is required.")
	} else if utf8.RuneCountInString(creds.Username) > MaxUsernameLength {
		details = append(details, fmt.Sprintf("Username must not exceed %d characters.", MaxUsernameLength))
	}
	if creds.Email == "" {
		details = append(details, "The Email field is required.")
	} else if utf8.RuneCountInString(creds.Email) > MaxEmailLength {
		details = append(details, fmt.Sprintf("Email must not exceed %d characters.", MaxEmailLength))
	}
	if creds.Password == "" {
		details = append(details, "The Password field is required.")
	} else if utf8.RuneCountInString(creds.Password) > MaxPasswordLength {
		details = append(details, fmt.Sprintf("Password must not exceed %d characters.", MaxPasswordLength))
	}
	return details
}
