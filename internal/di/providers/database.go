package providers

import (
	"context"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/blossomapp/blossom-server/internal/config"
	"github.com/blossomapp/blossom-server/internal/logger"
	"github.com/blossomapp/blossom-server/internal/sse"
	"github.com/blossomapp/blossom-server/internal/store"
	"github.com/blossomapp/blossom-server/internal/store/sqlite"
)

// SSEManagerHandle wraps the SSE manager with its context for lifecycle management.
type SSEManagerHandle struct {
	*sse.Manager
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *SSEManagerHandle) Shutdown() error {
	h.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Manager.Shutdown(ctx)
}

// ProvideSSEManager provides the server-sent events manager.
func ProvideSSEManager(i do.Injector) (*SSEManagerHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)

	manager := sse.NewManager(log.Logger)

	// Start in background.
	ctx, cancel := context.WithCancel(context.Background())
	go manager.Start(ctx)

	log.Info("SSE manager started")

	return &SSEManagerHandle{
		Manager: manager,
		cancel:  cancel,
	}, nil
}

// LocalStoreHandle wraps the local key-value store with shutdown capability.
// The local store is always open: even with the sqlite backend selected,
// per-viewer reaction sets live here.
type LocalStoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *LocalStoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideLocalStore provides the local badger store.
func ProvideLocalStore(i do.Injector) (*LocalStoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)

	dbPath := filepath.Join(cfg.Data.BasePath, "db")
	db, err := store.New(dbPath, log.Logger, sseHandle.Manager)
	if err != nil {
		return nil, err
	}

	log.Info("Local store initialized", "path", dbPath)

	return &LocalStoreHandle{Store: db}, nil
}

// EntityStoreHandle exposes the configured entity backend. When the
// backend is sqlite it owns the extra connection; with badger it
// borrows the local store, which has its own handle.
type EntityStoreHandle struct {
	Entities store.EntityStore
	owned    bool
}

// Shutdown implements do.Shutdownable.
func (h *EntityStoreHandle) Shutdown() error {
	if !h.owned {
		return nil
	}
	return h.Entities.Close()
}

// ProvideEntityStore selects the entity backend from configuration and
// seeds the built-in datasets on first run.
func ProvideEntityStore(i do.Injector) (*EntityStoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	localHandle := do.MustInvoke[*LocalStoreHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)

	var handle *EntityStoreHandle
	switch cfg.Data.Backend {
	case config.BackendSQLite:
		dbPath := filepath.Join(cfg.Data.BasePath, "blossom.db")
		db, err := sqlite.Open(dbPath, log.Logger)
		if err != nil {
			return nil, err
		}
		db.SetEventEmitter(sseHandle.Manager)
		log.Info("Entity store initialized", "backend", "sqlite", "path", dbPath)
		handle = &EntityStoreHandle{Entities: db, owned: true}
	default:
		log.Info("Entity store initialized", "backend", "badger")
		handle = &EntityStoreHandle{Entities: localHandle.Store}
	}

	if err := handle.Entities.SeedDefaults(context.Background()); err != nil {
		return nil, err
	}

	return handle, nil
}
