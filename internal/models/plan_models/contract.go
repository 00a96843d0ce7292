package plan_models

import (
	"fmt"
	"strings"
	"time"
)

// Category is the fixed set of activity kinds the generator may produce.
type Category string

const (
	CategoryFood        Category = "food"
	CategoryAdventure   Category = "adventure"
	CategoryCulture     Category = "culture"
	CategoryRelaxation  Category = "relaxation"
	CategorySightseeing Category = "sightseeing"
)

var validCategories = map[Category]bool{
	CategoryFood:        true,
	CategoryAdventure:   true,
	CategoryCulture:     true,
	CategoryRelaxation:  true,
	CategorySightseeing: true,
}

// TripParameters is the immutable input collected by the wizard.
// Once handed to a run it is never modified.
type TripParameters struct {
	Destination string   `json:"destination"`
	Budget      float64  `json:"budget"`
	Days        int      `json:"days"`
	Travelers   int      `json:"travelers"`
	Interests   []string `json:"interests"`
}

type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Activity struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	EstimatedCost float64   `json:"estimated_cost"`
	Duration      string    `json:"duration"`
	Category      Category  `json:"category"`
	Location      *GeoPoint `json:"location,omitempty"`
}

type DayPlan struct {
	Day        int        `json:"day"`
	Theme      string     `json:"theme"`
	Activities []Activity `json:"activities"`
	DailyTotal float64    `json:"daily_total"`
}

// Itinerary is the complete multi-day plan produced by one successful
// generation call. It is replaced wholesale on each submission and never
// mutated in place. Daily/total cost fields are generator-supplied and are
// not reconciled against the sum of activity costs.
type Itinerary struct {
	ID          string    `json:"id"`
	Destination string    `json:"destination,omitempty"`
	TotalCost   float64   `json:"total_cost"`
	Days        []DayPlan `json:"days"`
}

// LogEntry is one line of the narrated progress log.
type LogEntry struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// SchemaViolation reports the first field of a generated itinerary that
// fails the contract.
type SchemaViolation struct {
	Field  string
	Reason string
}

func (e *SchemaViolation) Error() string {
	return fmt.Sprintf("schema violation at %s: %s", e.Field, e.Reason)
}

func violation(field, reason string) error {
	return &SchemaViolation{Field: field, Reason: reason}
}

// ValidateItinerary checks a generated itinerary before anything downstream
// trusts it: required fields, category membership, coordinate ranges, and
// day indices consecutive from 1. It must run on every object crossing the
// generation boundary.
func ValidateItinerary(it *Itinerary) error {
	if it == nil {
		return violation("itinerary", "missing")
	}
	if it.TotalCost < 0 {
		return violation("total_cost", "must be non-negative")
	}
	if len(it.Days) == 0 {
		return violation("days", "at least one day is required")
	}

	seenIDs := make(map[string]bool)
	for i, day := range it.Days {
		path := fmt.Sprintf("days[%d]", i)
		if day.Day != i+1 {
			return violation(path+".day", fmt.Sprintf("expected %d, got %d", i+1, day.Day))
		}
		if day.DailyTotal < 0 {
			return violation(path+".daily_total", "must be non-negative")
		}
		if len(day.Activities) == 0 {
			return violation(path+".activities", "at least one activity is required")
		}
		for j, act := range day.Activities {
			actPath := fmt.Sprintf("%s.activities[%d]", path, j)
			if err := validateActivity(actPath, act, seenIDs); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateActivity(path string, act Activity, seenIDs map[string]bool) error {
	if strings.TrimSpace(act.ID) == "" {
		return violation(path+".id", "must not be empty")
	}
	if seenIDs[act.ID] {
		return violation(path+".id", fmt.Sprintf("duplicate activity id %q", act.ID))
	}
	seenIDs[act.ID] = true

	if strings.TrimSpace(act.Name) == "" {
		return violation(path+".name", "must not be empty")
	}
	if act.EstimatedCost < 0 {
		return violation(path+".estimated_cost", "must be non-negative")
	}
	if !validCategories[act.Category] {
		return violation(path+".category", fmt.Sprintf("unknown category %q", act.Category))
	}
	if act.Location != nil {
		if act.Location.Lat < -90 || act.Location.Lat > 90 {
			return violation(path+".location.lat", fmt.Sprintf("out of range: %v", act.Location.Lat))
		}
		if act.Location.Lng < -180 || act.Location.Lng > 180 {
			return violation(path+".location.lng", fmt.Sprintf("out of range: %v", act.Location.Lng))
		}
	}
	return nil
}

// CategoryNames lists the allowed category values in prompt order.
func CategoryNames() []string {
	return []string{
		string(CategoryFood),
		string(CategoryAdventure),
		string(CategoryCulture),
		string(CategoryRelaxation),
		string(CategorySightseeing),
	}
}
