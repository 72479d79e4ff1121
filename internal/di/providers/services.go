package providers

import (
	"github.com/samber/do/v2"

	"github.com/blossomapp/blossom-server/internal/logger"
	"github.com/blossomapp/blossom-server/internal/service"
)

// ProvideRegistryService provides the gift registry service.
func ProvideRegistryService(i do.Injector) (*service.RegistryService, error) {
	entityHandle := do.MustInvoke[*EntityStoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewRegistryService(entityHandle.Entities, log.Logger), nil
}

// ProvideCardService provides the well-wishes card service.
func ProvideCardService(i do.Injector) (*service.CardService, error) {
	entityHandle := do.MustInvoke[*EntityStoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCardService(entityHandle.Entities, log.Logger), nil
}

// ProvideAdviceService provides the advice board service.
// Reactions always come from the local store, whichever entity backend
// is configured.
func ProvideAdviceService(i do.Injector) (*service.AdviceService, error) {
	entityHandle := do.MustInvoke[*EntityStoreHandle](i)
	localHandle := do.MustInvoke[*LocalStoreHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAdviceService(entityHandle.Entities, localHandle.Store, indexHandle.SearchIndex, log.Logger), nil
}

// ProvideJourneyService provides the pregnancy-journey timeline service.
func ProvideJourneyService(i do.Injector) (*service.JourneyService, error) {
	entityHandle := do.MustInvoke[*EntityStoreHandle](i)
	localHandle := do.MustInvoke[*LocalStoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewJourneyService(entityHandle.Entities, localHandle.Store, log.Logger), nil
}
