package response_models

import "wanderai/internal/models/plan_models"

// TimelineView is the read-only day-by-day rendering of an itinerary.
type TimelineView struct {
	ItineraryID string        `json:"itinerary_id"`
	Destination string        `json:"destination"`
	TotalCost   float64       `json:"total_cost"`
	Days        []TimelineDay `json:"days"`
}

type TimelineDay struct {
	Day        int                `json:"day"`
	Theme      string             `json:"theme"`
	DailyTotal float64            `json:"daily_total"`
	Activities []TimelineActivity `json:"activities"`
}

type TimelineActivity struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	CategoryBadge string  `json:"category_badge"`
	Duration      string  `json:"duration"`
	EstimatedCost float64 `json:"estimated_cost"`
}

// MapView plots every activity that carries coordinates.
type MapView struct {
	Center  plan_models.GeoPoint `json:"center"`
	Zoom    int                  `json:"zoom"`
	Markers []MapMarker          `json:"markers"`
}

type MapMarker struct {
	ActivityID string               `json:"activity_id"`
	Name       string               `json:"name"`
	Category   string               `json:"category"`
	Location   plan_models.GeoPoint `json:"location"`
}
