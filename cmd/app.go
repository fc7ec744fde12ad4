package cmd

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/prochat/prochat/internal/chat"
	"github.com/prochat/prochat/internal/config"
	"github.com/prochat/prochat/internal/registry"
	"github.com/prochat/prochat/internal/store"
)

// openApp wires the pieces every command needs: settings, the
// conversation store, and the orchestrator.
func openApp() (*config.Config, *store.Store, *chat.Orchestrator, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}

	path, err := cfg.SnapshotPath()
	if err != nil {
		return nil, nil, nil, err
	}

	st, err := store.Open(store.NewFilePersistence(path))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening conversation store: %w", err)
	}

	orch := chat.NewOrchestrator(st, registry.Default(), cfg.Settings, logger)
	return cfg, st, orch, nil
}

// warnPersist downgrades persistence failures to a warning; the in-memory
// operation already succeeded. Anything else propagates.
func warnPersist(err error) error {
	if err == nil {
		return nil
	}
	var perr *chat.PersistenceError
	if errors.As(err, &perr) {
		logger.Warn("persistence failed", zap.Error(perr))
		return nil
	}
	return err
}
