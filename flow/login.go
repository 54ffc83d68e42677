package flow

import (
	"context"
	"net/http"

	"github.com/NicolasLepore/DiasDeChuvaDiasDeSol/auth"
)

// Login is the sign-in use case.
type Login struct {
	service *auth.Service
}

func NewLogin(service *auth.Service) *Login {
	return &Login{service: service}
}

// Authenticate delegates credential verification to the authentication
// service and wraps the minted token in the response envelope. Failures
// propagate as typed errors and never say more than "invalid credentials".
func (l *Login) Authenticate(ctx context.Context, creds auth.SignInCredentials) (Outcome, error) {
	token, err := l.service.Authenticate(ctx, creds)
	if err != nil {
		return Outcome{}, err
	}

	return Outcome{Success: true, StatusCode: http.StatusOK, Token: token}, nil
}
