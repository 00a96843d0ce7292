package services

import (
	"fmt"
	"strings"

	"wanderai/internal/models/plan_models"
	"wanderai/internal/models/request_models"
	"wanderai/internal/models/response_models"
	"wanderai/pkg/memcache"
	"wanderai/pkg/utils"
)

const (
	minTripDays = 1
	maxTripDays = 14
)

// WizardServiceInterface is the three-step trip form: destination/travelers,
// duration/budget, interests. Forward and backward navigation only; back
// never loses entered values. Submit freezes the draft into TripParameters.
type WizardServiceInterface interface {
	StartSession() response_models.WizardState
	GetState(sessionID string) (response_models.WizardState, error)
	SubmitStep(sessionID string, req request_models.WizardStepRequest) (response_models.WizardState, error)
	StepBack(sessionID string) (response_models.WizardState, error)
	ToggleInterest(sessionID string, interest string) (response_models.WizardState, error)
	Submit(sessionID string) (plan_models.TripParameters, error)
}

type WizardService struct {
	sessions memcache.SessionStoreInterface
}

func NewWizardService(sessions memcache.SessionStoreInterface) WizardServiceInterface {
	return &WizardService{sessions: sessions}
}

func (w *WizardService) StartSession() response_models.WizardState {
	sess := w.sessions.Create()
	return wizardStateOf(sess)
}

func (w *WizardService) GetState(sessionID string) (response_models.WizardState, error) {
	snap, err := w.sessions.Snapshot(sessionID)
	if err != nil {
		return response_models.WizardState{}, err
	}
	return wizardStateOf(&snap), nil
}

func (w *WizardService) SubmitStep(sessionID string, req request_models.WizardStepRequest) (response_models.WizardState, error) {
	err := w.sessions.Update(sessionID, func(s *memcache.Session) error {
		switch s.Step {
		case 1:
			destination := strings.TrimSpace(req.Destination)
			if destination == "" {
				return utils.ErrDestinationRequired
			}
			s.Draft.Destination = destination
			if req.Travelers > 0 {
				s.Draft.Travelers = req.Travelers
			}
		case 2:
			if req.Days < minTripDays || req.Days > maxTripDays {
				return fmt.Errorf("%w: duration must be between %d and %d days",
					utils.ErrInvalidInput, minTripDays, maxTripDays)
			}
			if req.Budget <= 0 {
				return fmt.Errorf("%w: budget must be a positive number", utils.ErrInvalidInput)
			}
			s.Draft.Days = req.Days
			s.Draft.Budget = req.Budget
		default:
			return fmt.Errorf("%w: no further step to advance to", utils.ErrInvalidInput)
		}
		s.Step++
		return nil
	})
	if err != nil {
		return response_models.WizardState{}, err
	}
	return w.GetState(sessionID)
}

func (w *WizardService) StepBack(sessionID string) (response_models.WizardState, error) {
	err := w.sessions.Update(sessionID, func(s *memcache.Session) error {
		if s.Step <= 1 {
			return fmt.Errorf("%w: already at the first step", utils.ErrInvalidInput)
		}
		s.Step--
		return nil
	})
	if err != nil {
		return response_models.WizardState{}, err
	}
	return w.GetState(sessionID)
}

// ToggleInterest flips one tag's set membership; toggling twice restores
// the original set.
func (w *WizardService) ToggleInterest(sessionID string, interest string) (response_models.WizardState, error) {
	interest = strings.TrimSpace(interest)
	if interest == "" {
		return response_models.WizardState{}, fmt.Errorf("%w: interest must not be empty", utils.ErrInvalidInput)
	}

	err := w.sessions.Update(sessionID, func(s *memcache.Session) error {
		for i, existing := range s.Draft.Interests {
			if existing == interest {
				s.Draft.Interests = append(s.Draft.Interests[:i], s.Draft.Interests[i+1:]...)
				return nil
			}
		}
		s.Draft.Interests = append(s.Draft.Interests, interest)
		return nil
	})
	if err != nil {
		return response_models.WizardState{}, err
	}
	return w.GetState(sessionID)
}

// Submit returns a frozen copy of the accumulated parameters. It refuses
// while a run is active so a second generation cannot start mid-run.
func (w *WizardService) Submit(sessionID string) (plan_models.TripParameters, error) {
	var params plan_models.TripParameters
	err := w.sessions.Update(sessionID, func(s *memcache.Session) error {
		if s.Step != memcache.WizardLast {
			return fmt.Errorf("%w: complete all %d steps before submitting", utils.ErrInvalidInput, memcache.WizardLast)
		}
		if s.Run == memcache.RunActive {
			return utils.ErrRunInProgress
		}
		params = s.Draft
		params.Interests = append([]string(nil), s.Draft.Interests...)
		return nil
	})
	if err != nil {
		return plan_models.TripParameters{}, err
	}
	return params, nil
}

func wizardStateOf(s *memcache.Session) response_models.WizardState {
	return response_models.WizardState{
		SessionID: s.ID,
		Step:      s.Step,
		Draft:     s.Draft,
		Running:   s.Run == memcache.RunActive,
	}
}
