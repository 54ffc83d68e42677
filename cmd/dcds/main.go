package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/NicolasLepore/DiasDeChuvaDiasDeSol/api"
	"github.com/NicolasLepore/DiasDeChuvaDiasDeSol/auth"
	"github.com/NicolasLepore/DiasDeChuvaDiasDeSol/config"
	"github.com/NicolasLepore/DiasDeChuvaDiasDeSol/flow"
	"github.com/NicolasLepore/DiasDeChuvaDiasDeSol/logger"
	"github.com/NicolasLepore/DiasDeChuvaDiasDeSol/persistence"
	"github.com/NicolasLepore/DiasDeChuvaDiasDeSol/session"
	"github.com/NicolasLepore/DiasDeChuvaDiasDeSol/store"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger.InitLogger(cfg.LogLevel)
	defer logger.Log.Sync()

	logger.Log.Info("Starting DCDS Authentication Service",
		zap.Int("port", cfg.Port),
		zap.String("db_type", cfg.DBType),
	)

	repo, err := persistence.Open(cfg.DBType, cfg.DSN,
		persistence.RepositoryOptions{
			Hasher: store.NewBcryptHasher(cfg.BcryptCost),
			Policy: store.DefaultPasswordPolicy(),
		},
		persistence.Options{SkipAutoMigrate: cfg.SkipAutoMigrate},
	)
	if err != nil {
		logger.Log.Fatal("failed to initialize credential store", zap.Error(err))
	}

	issuer, err := session.NewIssuer([]byte(cfg.TokenSigningKey), cfg.TokenTTL)
	if err != nil {
		logger.Log.Fatal("failed to initialize token issuer", zap.Error(err))
	}

	service := auth.NewService(repo, issuer, logger.Log)
	registration := flow.NewRegistration(service)
	login := flow.NewLogin(service)

	if cfg.SeedUsers {
		seedDemoAccounts(service)
	}

	h := api.NewHandler(registration, login, service, issuer)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Log.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
			)
			return nil
		},
	}))

	g := e.Group("/api/v1")
	h.RegisterRoutes(g)

	logger.Log.Info("Server is starting", zap.Int("port", cfg.Port))
	if err := e.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		logger.Log.Fatal("server failed to start", zap.Error(err))
	}
}

// seedDemoAccounts creates the demo accounts used by the frontend mock
// pages. Accounts that already exist are skipped.
func seedDemoAccounts(service *auth.Service) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	names := []string{"Antonio", "Gustavo", "Henri", "Nicolas", "Rafael"}
	for _, name := range names {
		_, err := service.RegisterAccount(ctx, auth.AccountCredentials{
			Username:             name,
			Email:                fmt.Sprintf("%s@gmail.com", name),
			Password:             "123Senha!",
			PasswordConfirmation: "123Senha!",
		})
		switch auth.KindOf(err) {
		case 0:
			if err != nil {
				logger.Log.Warn("failed to seed demo account", zap.String("username", name), zap.Error(err))
			} else {
				logger.Log.Info("seeded demo account", zap.String("username", name))
			}
		case auth.KindRegistrationRejected:
			// Already present from a previous run.
		default:
			logger.Log.Warn("failed to seed demo account", zap.String("username", name), zap.Error(err))
		}
	}
}
