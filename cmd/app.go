package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/user/cinelist/internal/config"
	"github.com/user/cinelist/internal/db"
	"github.com/user/cinelist/internal/logging"
	"github.com/user/cinelist/internal/tmdb"
	"github.com/user/cinelist/internal/tui"
	"github.com/user/cinelist/internal/watchlist"
)

// app holds what every command needs. Build it once per invocation.
type app struct {
	cfg       *config.Config
	records   *db.Store
	watchlist *watchlist.Store
	tmdb      *tmdb.Client
	logs      io.Closer
}

func openApp() (*app, error) {
	cfg, err := config.LoadWith(v)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	a := &app{cfg: cfg, logs: logging.Init(cfg, debugLogs)}
	logger := logging.Default()

	var backend watchlist.Backend
	switch cfg.Storage.Backend {
	case "file":
		backend = watchlist.NewFileBackend(afero.NewOsFs(), cfg.DataDir)
	case "sqlite", "":
		store, err := db.NewStore(cfg.DBPath())
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		a.records = store
		backend = store
	default:
		a.Close()
		return nil, fmt.Errorf("unknown storage backend %q (want sqlite or file)", cfg.Storage.Backend)
	}

	logger.Debug("opening watchlist", "backend", cfg.Storage.Backend, "scoped", cfg.Watchlist.ScopeByMediaType)
	a.watchlist = watchlist.NewStore(backend,
		watchlist.WithMediaTypeScope(cfg.Watchlist.ScopeByMediaType),
		watchlist.WithLogger(logger.With("component", "watchlist")),
	)
	a.tmdb = tmdb.NewClient(cfg.TMDB)
	return a, nil
}

// prefs is nil for the file backend, which has no metadata table.
func (a *app) prefs() tui.Prefs {
	if a.records == nil {
		return nil
	}
	return a.records
}

func (a *app) Close() {
	if a.records != nil {
		a.records.Close()
	}
	if a.logs != nil {
		a.logs.Close()
	}
}
