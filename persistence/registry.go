// Package persistence provides the GORM-backed credential store and a
// registry of database providers keyed by DB_TYPE.
package persistence

import (
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/NicolasLepore/DiasDeChuvaDiasDeSol/identity"
)

// DialectorOpener returns a gorm.Dialector for a given DSN.
type DialectorOpener = func(string) gorm.Dialector

var (
	registryMu sync.RWMutex
	providers  = make(map[string]DialectorOpener)
)

func init() {
	Register("sqlite", sqlite.Open)
	Register("postgres", postgres.Open)
	Register("mysql", mysql.Open)
}

// Register adds a database provider to the registry. Safe for concurrent use.
func Register(name string, opener DialectorOpener) {
	registryMu.Lock()
	defer registryMu.Unlock()
	providers[name] = opener
}

// Options configures the repository built by Open.
type Options struct {
	// SkipAutoMigrate leaves schema management to the operator.
	SkipAutoMigrate bool
	// GormConfig overrides the GORM defaults. TranslateError is forced on
	// either way.
	GormConfig *gorm.Config
}

// Open connects to the database registered under name and returns a
// Repository ready to serve as the credential store.
func Open(name, dsn string, repoOpts RepositoryOptions, opts Options) (*Repository, error) {
	registryMu.RLock()
	opener, ok := providers[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("persistence: unknown database provider %q", name)
	}

	gormConfig := opts.GormConfig
	if gormConfig == nil {
		gormConfig = &gorm.Config{}
	}
	// The repository relies on gorm.ErrDuplicatedKey to tell a lost
	// uniqueness race from an infrastructure fault, so driver errors must
	// always be translated, caller-supplied config included.
	gormConfig.TranslateError = true

	db, err := gorm.Open(opener(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("persistence: open %s: %w", name, err)
	}

	if !opts.SkipAutoMigrate {
		if err := db.AutoMigrate(&identity.Identity{}); err != nil {
			return nil, fmt.Errorf("persistence: migrate: %w", err)
		}
	}

	return NewRepository(db, repoOpts), nil
}
