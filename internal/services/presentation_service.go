package services

import (
	"context"

	"github.com/samber/lo"

	"wanderai/internal/models/plan_models"
	"wanderai/internal/models/response_models"
)

const mapZoom = 12

// Falls back to Paris when neither geocoding nor the itinerary yields a
// coordinate, matching the frontend's default view.
var defaultMapCenter = plan_models.GeoPoint{Lat: 48.8566, Lng: 2.3522}

// PresentationServiceInterface renders an itinerary into view models. Pure
// read-only mapping: malformed data here is an upstream defect, so nothing
// is validated or mutated.
type PresentationServiceInterface interface {
	Timeline(itinerary *plan_models.Itinerary) response_models.TimelineView
	MapView(ctx context.Context, itinerary *plan_models.Itinerary) response_models.MapView
}

type PresentationService struct {
	geocoder GeocoderInterface
}

func NewPresentationService(geocoder GeocoderInterface) PresentationServiceInterface {
	return &PresentationService{geocoder: geocoder}
}

func (p *PresentationService) Timeline(itinerary *plan_models.Itinerary) response_models.TimelineView {
	return response_models.TimelineView{
		ItineraryID: itinerary.ID,
		Destination: itinerary.Destination,
		TotalCost:   itinerary.TotalCost,
		Days: lo.Map(itinerary.Days, func(day plan_models.DayPlan, _ int) response_models.TimelineDay {
			return response_models.TimelineDay{
				Day:        day.Day,
				Theme:      day.Theme,
				DailyTotal: day.DailyTotal,
				Activities: lo.Map(day.Activities, func(act plan_models.Activity, _ int) response_models.TimelineActivity {
					return response_models.TimelineActivity{
						ID:            act.ID,
						Name:          act.Name,
						Description:   act.Description,
						CategoryBadge: string(act.Category),
						Duration:      act.Duration,
						EstimatedCost: act.EstimatedCost,
					}
				}),
			}
		}),
	}
}

// MapView resolves the center in order: geocoded destination, first
// activity with coordinates, default.
func (p *PresentationService) MapView(ctx context.Context, itinerary *plan_models.Itinerary) response_models.MapView {
	activities := lo.FlatMap(itinerary.Days, func(day plan_models.DayPlan, _ int) []plan_models.Activity {
		return day.Activities
	})

	markers := lo.FilterMap(activities, func(act plan_models.Activity, _ int) (response_models.MapMarker, bool) {
		if act.Location == nil {
			return response_models.MapMarker{}, false
		}
		return response_models.MapMarker{
			ActivityID: act.ID,
			Name:       act.Name,
			Category:   string(act.Category),
			Location:   *act.Location,
		}, true
	})

	center := defaultMapCenter
	if point, ok := p.geocoder.Lookup(ctx, itinerary.Destination); ok {
		center = point
	} else if len(markers) > 0 {
		center = markers[0].Location
	}

	return response_models.MapView{
		Center:  center,
		Zoom:    mapZoom,
		Markers: markers,
	}
}
