// Package app assembles the client from configuration.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/and161185/fightnight/internal/config"
	"github.com/and161185/fightnight/internal/errs"
	"github.com/and161185/fightnight/internal/fights"
	"github.com/and161185/fightnight/internal/limiter"
	"github.com/and161185/fightnight/internal/repository"
	"github.com/and161185/fightnight/internal/repository/postgres"
	"github.com/and161185/fightnight/internal/repository/sqlite"
	"github.com/and161185/fightnight/internal/service"
	"github.com/and161185/fightnight/internal/state"
	"github.com/and161185/fightnight/internal/theme"
	"github.com/and161185/fightnight/internal/upstream"
)

// App holds the wired components. Close releases them in reverse order.
type App struct {
	Cfg        *config.Config
	Log        *zap.Logger
	KV         repository.KVRepository
	Store      *state.Store
	Theme      *theme.Provider
	Fights     *fights.Service
	Auth       *service.AuthServiceImpl
	Favourites *service.FavouritesService

	closers []func()
}

// New opens storage, rehydrates state and the theme, and builds services.
// Unreadable persisted state is logged and replaced by defaults.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger, opts ...upstream.Option) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{Cfg: cfg, Log: log}

	kv, closeKV, err := openKV(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closeKV)

	if cfg.Storage.Passphrase != "" {
		sealed, err := repository.NewSealedKV(ctx, kv, cfg.Storage.Passphrase)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("sealed storage: %w", err)
		}
		kv = sealed
	} else if err := refuseSealed(ctx, kv); err != nil {
		a.Close()
		return nil, err
	}
	a.KV = kv

	// Sealed values that do not open stop startup: the next write would
	// replace them with state sealed under the wrong key.
	a.Store = state.NewStore(kv, log)
	a.closers = append(a.closers, a.Store.Close)
	if err := a.Store.Rehydrate(ctx); err != nil {
		if errors.Is(err, errs.ErrSealed) {
			a.Close()
			return nil, err
		}
		log.Warn("state not restored, starting logged out", zap.Error(err))
	}

	a.Theme = theme.NewProvider(kv, log)
	if err := a.Theme.Load(ctx); err != nil {
		if errors.Is(err, errs.ErrSealed) {
			a.Close()
			return nil, err
		}
		log.Warn("theme not restored, using dark", zap.Error(err))
	}

	client := upstream.New(cfg.Upstream, log, opts...)
	a.Fights = fights.NewService(client, log, fights.WithLimits(cfg.Upstream.FightsLimit, cfg.Upstream.PastLimit))
	lim := limiter.NewMemory(cfg.Login.Window, cfg.Login.MaxFails, cfg.Login.BlockFor)
	a.Auth = service.NewAuthService(client, a.Store, lim, cfg.Upstream.ExpiresInMins, log)
	a.Favourites = service.NewFavouritesService(a.Store, a.Fights, log)

	log.Debug("app ready",
		zap.String("storage", cfg.Storage.Driver),
		zap.Bool("sealed", cfg.Storage.Passphrase != ""),
		zap.String("upstream", cfg.Upstream.BaseURL),
	)
	return a, nil
}

// Close flushes pending state and closes storage.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
	_ = a.Log.Sync()
}

// refuseSealed fails when storage holds sealed values but no passphrase is set.
func refuseSealed(ctx context.Context, kv repository.KVRepository) error {
	for _, key := range []string{state.RootKey, theme.Key} {
		v, err := kv.Get(ctx, key)
		if err == nil && repository.IsSealed(v) {
			return fmt.Errorf("%w: %s is sealed and storage.passphrase is empty", errs.ErrSealed, key)
		}
	}
	return nil
}

func openKV(ctx context.Context, cfg config.Storage) (repository.KVRepository, func(), error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		return postgres.NewKVRepo(db), db.Close, nil
	case config.DriverSQLite, "":
		db, err := sqlite.Open(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		return sqlite.NewKVRepo(db), func() { _ = db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
