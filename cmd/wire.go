package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	filekv "github.com/bnema/mystic-tarot-cli/internal/adapters/kv/file"
	sqlitekv "github.com/bnema/mystic-tarot-cli/internal/adapters/kv/sqlite"
	statusadapter "github.com/bnema/mystic-tarot-cli/internal/adapters/render/status"
	kvrepo "github.com/bnema/mystic-tarot-cli/internal/adapters/repo/keyvalue"
	tomlrepo "github.com/bnema/mystic-tarot-cli/internal/adapters/repo/toml"
	"github.com/bnema/mystic-tarot-cli/internal/application"
	"github.com/bnema/mystic-tarot-cli/internal/config"
	"github.com/bnema/mystic-tarot-cli/internal/logger"
	"github.com/bnema/mystic-tarot-cli/internal/ports"
	"github.com/spf13/viper"
)

const closeTimeout = 5 * time.Second

type app struct {
	store          *application.StateStore
	logger         *slog.Logger
	statusRenderer func(application.Status, statusadapter.RenderOptions) string
	now            func() time.Time
	pick           func(n int) int
	closers        []func() error
}

func wireApp() (*app, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg, err := config.Load(viper.New(), homeDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	location, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	repo, closers, err := wireRepository(cfg)
	if err != nil {
		return nil, err
	}

	store := application.NewStateStore(repo, ports.SystemClock{},
		application.WithLogger(log),
		application.WithLocation(location),
	)

	return &app{
		store:          store,
		logger:         log,
		statusRenderer: statusadapter.Render,
		now: func() time.Time {
			return time.Now().In(location)
		},
		pick:    randomIndex,
		closers: closers,
	}, nil
}

func wireRepository(cfg config.Config) (ports.SessionRepository, []func() error, error) {
	switch cfg.State.Backend {
	case config.BackendSQLite:
		if err := os.MkdirAll(cfg.State.Dir, 0o700); err != nil {
			return nil, nil, fmt.Errorf("create state directory: %w", err)
		}
		kv, err := sqlitekv.Open(filepath.Join(cfg.State.Dir, "state.db"))
		if err != nil {
			return nil, nil, fmt.Errorf("wire sqlite state store: %w", err)
		}
		return kvrepo.NewRepository(kv), []func() error{kv.Close}, nil
	case config.BackendTOML:
		repo, err := tomlrepo.NewRepository(filepath.Join(cfg.State.Dir, "state.toml"))
		if err != nil {
			return nil, nil, fmt.Errorf("wire toml state repository: %w", err)
		}
		return repo, nil, nil
	default:
		return kvrepo.NewRepository(filekv.NewStore(cfg.State.Dir)), nil, nil
	}
}

// close flushes pending saves before releasing storage handles.
func (a *app) close(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, closeTimeout)
	defer cancel()

	errs := []error{a.store.Close(ctx)}
	for _, closer := range a.closers {
		errs = append(errs, closer())
	}
	a.closers = nil

	return errors.Join(errs...)
}
