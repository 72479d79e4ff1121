// Package di provides dependency injection configuration for the Blossom server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/blossomapp/blossom-server/internal/config"
	"github.com/blossomapp/blossom-server/internal/di/providers"
	"github.com/blossomapp/blossom-server/internal/logger"
	"github.com/blossomapp/blossom-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Persistence layer
	do.Provide(injector, providers.ProvideSSEManager)
	do.Provide(injector, providers.ProvideLocalStore)
	do.Provide(injector, providers.ProvideEntityStore)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)

	// Business services
	do.Provide(injector, providers.ProvideRegistryService)
	do.Provide(injector, providers.ProvideCardService)
	do.Provide(injector, providers.ProvideAdviceService)
	do.Provide(injector, providers.ProvideJourneyService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)
	do.Provide(injector, providers.ProvideMDNSService)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.SSEManagerHandle](injector)
	_ = do.MustInvoke[*providers.LocalStoreHandle](injector)
	_ = do.MustInvoke[*providers.EntityStoreHandle](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)

	// Business services
	_ = do.MustInvoke[*service.RegistryService](injector)
	_ = do.MustInvoke[*service.CardService](injector)
	_ = do.MustInvoke[*service.AdviceService](injector)
	_ = do.MustInvoke[*service.JourneyService](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)
	_ = do.MustInvoke[*providers.MDNSServiceHandle](injector)

	// Fill the search index if it came up empty.
	providers.TriggerSearchReindexIfNeeded(injector)

	return nil
}
