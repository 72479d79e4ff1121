// Package main provides the entry point for the Blossom server application.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/blossomapp/blossom-server/internal/di"
	"github.com/blossomapp/blossom-server/internal/di/providers"
	"github.com/blossomapp/blossom-server/internal/logger"
)

func main() {
	injector := di.NewContainer()

	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap server: %v\n", err)
		os.Exit(1)
	}

	log := do.MustInvoke[*logger.Logger](injector)

	// Wait for shutdown signal.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	// The DI container shuts services down in reverse dependency order.
	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}

	// The stores and search index use wrapper handles, so close them
	// explicitly in case the container missed them.
	if entityHandle, err := do.Invoke[*providers.EntityStoreHandle](injector); err == nil {
		if err := entityHandle.Shutdown(); err != nil {
			log.Error("Failed to close entity store", "error", err)
		}
	}

	if localHandle, err := do.Invoke[*providers.LocalStoreHandle](injector); err == nil {
		if err := localHandle.Shutdown(); err != nil {
			log.Error("Failed to close local store", "error", err)
		}
	}

	if searchHandle, err := do.Invoke[*providers.SearchIndexHandle](injector); err == nil {
		if err := searchHandle.Shutdown(); err != nil {
			log.Error("Failed to close search index", "error", err)
		}
	}

	log.Info("Goodnight, little one")
}
