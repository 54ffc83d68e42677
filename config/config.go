// Package config provides environment-based configuration via Viper.
//
// # Environment Variables
//
//   - PORT: HTTP server port. Default: 8080
//   - LOG_LEVEL: Logging level (debug, info, warn, error). Default: info
//   - DB_TYPE: Database type (sqlite, postgres, mysql). Default: sqlite
//   - DSN: Database connection string. Default: dcds.db
//   - SKIP_AUTO_MIGRATE: Skip automatic schema migration. Default: false
//   - TOKEN_SIGNING_KEY: Symmetric key for session tokens. Required; there
//     is no default and the value is never logged.
//   - TOKEN_TTL: Session token validity window. Default: 1h
//   - BCRYPT_COST: Password hashing cost. Default: 14
//   - SEED_USERS: Create the demo accounts at startup. Default: false
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port            int           `mapstructure:"PORT"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	DBType          string        `mapstructure:"DB_TYPE"`
	DSN             string        `mapstructure:"DSN"`
	SkipAutoMigrate bool          `mapstructure:"SKIP_AUTO_MIGRATE"`
	TokenSigningKey string        `mapstructure:"TOKEN_SIGNING_KEY"`
	TokenTTL        time.Duration `mapstructure:"TOKEN_TTL"`
	BcryptCost      int           `mapstructure:"BCRYPT_COST"`
	SeedUsers       bool          `mapstructure:"SEED_USERS"`
}

// LoadConfig reads configuration from the environment. A missing signing
// key is a configuration fault: startup must abort rather than fall back to
// an embedded default.
func LoadConfig() (*Config, error) {
	viper.SetDefault("PORT", 8080)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DB_TYPE", "sqlite")
	viper.SetDefault("DSN", "dcds.db")
	viper.SetDefault("SKIP_AUTO_MIGRATE", false)
	viper.SetDefault("TOKEN_TTL", time.Hour)
	viper.SetDefault("BCRYPT_COST", 14)
	viper.SetDefault("SEED_USERS", false)

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	// No default on purpose: AutomaticEnv alone does not surface keys
	// without one through Unmarshal.
	viper.BindEnv("TOKEN_SIGNING_KEY")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.TokenSigningKey == "" {
		return nil, errors.New("config: TOKEN_SIGNING_KEY is required")
	}

	return &cfg, nil
}
