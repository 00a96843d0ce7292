package geo_fx

import (
	"os"

	"go.uber.org/fx"

	"wanderai/internal/api/controllers"
	"wanderai/internal/services"
	"wanderai/pkg/memcache"
)

var Module = fx.Provide(
	ProvideGeocoder,
	ProvidePresentationService,
	ProvideItineraryController,
)

func ProvideGeocoder() services.GeocoderInterface {
	return services.NewNominatimGeocoder(os.Getenv("GEOCODER_BASE_URL"))
}

func ProvidePresentationService(geocoder services.GeocoderInterface) services.PresentationServiceInterface {
	return services.NewPresentationService(geocoder)
}

func ProvideItineraryController(
	presentationService services.PresentationServiceInterface,
	sessions memcache.SessionStoreInterface,
) *controllers.ItineraryController {
	return controllers.NewItineraryController(presentationService, sessions)
}
