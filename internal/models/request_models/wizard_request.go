package request_models

// WizardStepRequest carries the fields of whichever step is being advanced:
// step 1 reads destination/travelers, step 2 reads days/budget.
type WizardStepRequest struct {
	Destination string  `json:"destination"`
	Travelers   int     `json:"travelers"`
	Days        int     `json:"days"`
	Budget      float64 `json:"budget"`
}

type ToggleInterestRequest struct {
	Interest string `json:"interest" binding:"required"`
}
