package flow

import (
	"context"
	"net/http"

	"github.com/NicolasLepore/DiasDeChuvaDiasDeSol/auth"
)

// Registration is the sign-up use case.
type Registration struct {
	service *auth.Service
}

func NewRegistration(service *auth.Service) *Registration {
	return &Registration{service: service}
}

// Submit validates the request shape and delegates account creation to the
// authentication service. The password/confirmation match is checked here,
// before the store is ever touched: a mismatch is a caller bug, not a store
// rejection. Registration never logs the user in, so the outcome carries no
// token.
func (r *Registration) Submit(ctx context.Context, creds auth.AccountCredentials) (Outcome, error) {
	if creds.Password != creds.PasswordConfirmation {
		return Outcome{}, &auth.Error{
			Kind:    auth.KindValidation,
			Reason:  "validation failed",
			Details: []string{"'Password' and 'PasswordConfirmation' do not match."},
		}
	}

	if _, err := r.service.RegisterAccount(ctx, creds); err != nil {
		return Outcome{}, err
	}

	return Outcome{Success: true, StatusCode: http.StatusOK}, nil
}
