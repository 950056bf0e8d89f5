package providers

import (
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/clubreviewapp/clubreview-server/internal/cache"
	"github.com/clubreviewapp/clubreview-server/internal/config"
	"github.com/clubreviewapp/clubreview-server/internal/logger"
	"github.com/clubreviewapp/clubreview-server/internal/store/sqlite"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*sqlite.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the database store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dbPath := filepath.Join(cfg.Data.BasePath, "clubreview.db")
	db, err := sqlite.Open(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", dbPath)

	return &StoreHandle{Store: db}, nil
}

// ProvideCache provides the TTL read cache for club and tag listings.
func ProvideCache(i do.Injector) (*cache.Cache, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	log.Info("Read cache configured", "ttl", cfg.Cache.TTL)
	return cache.New(cfg.Cache.TTL), nil
}
