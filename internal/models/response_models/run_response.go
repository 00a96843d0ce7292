package response_models

import "wanderai/internal/models/plan_models"

// RunView is the polling view of a session's narrated run: status, the
// append-only log, and the itinerary once the run completes.
type RunView struct {
	SessionID string                 `json:"session_id"`
	Status    string                 `json:"status"`
	Log       []plan_models.LogEntry `json:"log"`
	Itinerary *plan_models.Itinerary `json:"itinerary,omitempty"`
}
