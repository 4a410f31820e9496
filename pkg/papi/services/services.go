package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/quatton/portfolio/pkg/db"
	"github.com/quatton/portfolio/pkg/kv"
	"github.com/quatton/portfolio/pkg/papi/config"
	"github.com/quatton/portfolio/pkg/papi/services/iam"
	"github.com/quatton/portfolio/pkg/pauth"
	"github.com/quatton/portfolio/pkg/plog"
	"github.com/quatton/portfolio/pkg/streak"
	"github.com/quatton/portfolio/pkg/streak/pgstore"
)

// Check probes one backing dependency for the health endpoint.
type Check func(ctx context.Context) error

type Services struct {
	IAM    *iam.IAMService
	Engine *streak.Engine
	Checks map[string]Check

	closers []func() error
}

// NewServices wires the store, cache, session verifier and engine from cfg.
func NewServices(ctx context.Context, cfg *config.EnvConfig, logger *plog.Logger) (*Services, error) {
	svcs := &Services{Checks: map[string]Check{}}

	var store streak.Store
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		logger.Warn("using in-memory strike store; data is lost on restart")
		store = streak.NewMemoryStore()
	default:
		database, err := db.New(ctx, cfg.DB())
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		svcs.closers = append(svcs.closers, database.Close)
		if cfg.AutoMigrate {
			if err := db.Migrate(ctx, database, logger); err != nil {
				_ = svcs.Close()
				return nil, err
			}
		}
		svcs.Checks["postgres"] = database.PingContext
		store = pgstore.New(database)
	}

	var cache kv.Store
	if cfg.ValkeyAddr != "" {
		valkey, err := kv.NewValkeyStore(cfg.Valkey())
		if err != nil {
			_ = svcs.Close()
			return nil, fmt.Errorf("failed to connect to valkey: %w", err)
		}
		svcs.closers = append(svcs.closers, valkey.Close)
		svcs.Checks["valkey"] = valkey.Ping
		cache = valkey
	} else {
		cache = kv.NewMemoryStore()
	}

	verifier := pauth.NewVerifier(cfg.AuthSecret)
	svcs.IAM = iam.NewIAMService(verifier, logger)
	svcs.Engine = streak.NewEngine(store,
		streak.WithCache(cache, cfg.LeaderboardCacheTTL),
		streak.WithLogger(logger),
	)
	return svcs, nil
}

// Close releases connections in reverse order of creation.
func (s *Services) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}
