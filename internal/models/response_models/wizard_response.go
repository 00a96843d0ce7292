package response_models

import "wanderai/internal/models/plan_models"

type WizardState struct {
	SessionID string                     `json:"session_id"`
	Step      int                        `json:"step"`
	Draft     plan_models.TripParameters `json:"draft"`
	Running   bool                       `json:"running"`
}
