// Package api is the HTTP boundary: a thin echo adapter that binds request
// bodies, invokes the use cases, and maps typed failures to status codes.
package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/NicolasLepore/DiasDeChuvaDiasDeSol/auth"
	"github.com/NicolasLepore/DiasDeChuvaDiasDeSol/flow"
	"github.com/NicolasLepore/DiasDeChuvaDiasDeSol/identity"
	"github.com/NicolasLepore/DiasDeChuvaDiasDeSol/session"
)

type Handler struct {
	registration *flow.Registration
	login        *flow.Login
	service      *auth.Service
	issuer       *session.Issuer
}

func NewHandler(registration *flow.Registration, login *flow.Login, service *auth.Service, issuer *session.Issuer) *Handler {
	return &Handler{registration: registration, login: login, service: service, issuer: issuer}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/auth/signup", h.HandleSignUp)
	g.POST("/auth/signin", h.HandleSignIn)
	g.GET("/auth/users", h.HandleListUsers)

	protected := g.Group("")
	protected.Use(h.AuthMiddleware)
	protected.GET("/auth/whoami", h.HandleWhoAmI)
}

func (h *Handler) HandleSignUp(c echo.Context) error {
	var body auth.AccountCredentials
	if err := c.Bind(&body); err != nil {
		return h.Error(c, http.StatusBadRequest, "Invalid request body", nil)
	}

	outcome, err := h.registration.Submit(c.Request().Context(), body)
	if err != nil {
		return h.mapAuthError(c, err)
	}

	return c.JSON(outcome.StatusCode, map[string]interface{}{
		"success": outcome.Success,
		"message": "Success in creating the account",
	})
}

func (h *Handler) HandleSignIn(c echo.Context) error {
	var body auth.SignInCredentials
	if err := c.Bind(&body); err != nil {
		return h.Error(c, http.StatusBadRequest, "Invalid request body", nil)
	}

	outcome, err := h.login.Authenticate(c.Request().Context(), body)
	if err != nil {
		return h.mapAuthError(c, err)
	}

	return c.JSON(outcome.StatusCode, map[string]interface{}{
		"success": outcome.Success,
		"token":   outcome.Token,
	})
}

func (h *Handler) HandleListUsers(c echo.Context) error {
	idents, err := h.service.ListIdentities(c.Request().Context())
	if err != nil {
		return h.mapAuthError(c, err)
	}
	return c.JSON(http.StatusOK, idents)
}

// AuthMiddleware validates the bearer token and stores the verified claims
// in the request context.
func (h *Handler) AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := c.Request().Header.Get("Authorization")
		token = strings.TrimPrefix(token, "Bearer ")
		if token == "" {
			return h.Error(c, http.StatusUnauthorized, "Authorization header required", nil)
		}

		claims, err := h.issuer.Verify(token)
		if err != nil {
			return h.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		}

		c.Set("claims", claims)
		return next(c)
	}
}

func (h *Handler) HandleWhoAmI(c echo.Context) error {
	claims := c.Get("claims").(identity.Claims)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "authenticated",
		"id":        claims.ID,
		"username":  claims.Username,
		"birthdate": claims.BirthDate,
	})
}

// mapAuthError translates the typed failure taxonomy into transport status
// codes. User-caused failures map to 400, infrastructure faults to 503.
// Invalid credentials stay generic so usernames cannot be enumerated.
func (h *Handler) mapAuthError(c echo.Context, err error) error {
	switch auth.KindOf(err) {
	case auth.KindValidation:
		return h.Error(c, http.StatusBadRequest, "Validation failed", auth.DetailsOf(err))
	case auth.KindRegistrationRejected:
		return h.Error(c, http.StatusBadRequest, "Failed to register user!", auth.DetailsOf(err))
	case auth.KindInvalidCredentials:
		return h.Error(c, http.StatusBadRequest, "invalid credentials", nil)
	case auth.KindStoreUnavailable:
		return h.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable", nil)
	default:
		return h.Error(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}

func (h *Handler) Error(c echo.Context, code int, message string, details []string) error {
	resp := map[string]interface{}{
		"success": false,
		"status":  message,
		"code":    code,
	}
	if len(details) > 0 {
		resp["errors"] = details
	}
	return c.JSON(code, resp)
}
