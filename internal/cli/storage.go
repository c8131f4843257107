package cli

import (
	"fmt"
	"log/slog"

	"github.com/PraveshMalvi/buyora/internal/config"
	"github.com/PraveshMalvi/buyora/internal/favorites"
	"github.com/PraveshMalvi/buyora/internal/store"
)

// openFavorites opens the configured favorites backend. The returned
// close function releases the backend and is never nil.
func openFavorites(cfg config.StorageConfig, logger *slog.Logger) (*favorites.Adapter, func() error, error) {
	var (
		kv      favorites.KV
		closeFn = func() error { return nil }
	)

	switch cfg.Backend {
	case config.BackendSQLite:
		st, err := store.Open(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		kv, closeFn = st, st.Close
	case config.BackendBadger:
		bs, err := store.OpenBadger(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		kv, closeFn = bs, bs.Close
	case config.BackendMemory:
		kv = favorites.NewMemoryKV()
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}

	logger.Debug("favorites storage opened", "backend", cfg.Backend, "path", cfg.Path)
	return favorites.NewAdapter(kv, favorites.WithLogger(logger)), closeFn, nil
}
