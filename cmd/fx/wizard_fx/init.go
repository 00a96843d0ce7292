package wizard_fx

import (
	"go.uber.org/fx"

	"wanderai/internal/api/controllers"
	"wanderai/internal/services"
	"wanderai/pkg/memcache"
)

var Module = fx.Provide(
	ProvideWizardService,
	ProvideWizardController,
)

func ProvideWizardService(sessions memcache.SessionStoreInterface) services.WizardServiceInterface {
	return services.NewWizardService(sessions)
}

func ProvideWizardController(wizardService services.WizardServiceInterface) *controllers.WizardController {
	return controllers.NewWizardController(wizardService)
}
