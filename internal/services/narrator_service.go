package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"wanderai/internal/models/plan_models"
	"wanderai/pkg/memcache"
	"wanderai/pkg/utils"
)

// Pacing holds the cosmetic delays between narration messages. They pace the
// log for the UI and are not functional timeouts; only the ordering of the
// messages is a contract.
type Pacing struct {
	Initialize time.Duration
	Analyze    time.Duration
	Fetch      time.Duration
	Validate   time.Duration
	Optimize   time.Duration
	Finalize   time.Duration
}

func DefaultPacing() Pacing {
	return Pacing{
		Initialize: 800 * time.Millisecond,
		Analyze:    800 * time.Millisecond,
		Fetch:      time.Second,
		Validate:   500 * time.Millisecond,
		Optimize:   time.Second,
		Finalize:   500 * time.Millisecond,
	}
}

// ZeroPacing disables the delays. Used by tests.
func ZeroPacing() Pacing { return Pacing{} }

// NarratorServiceInterface runs the narrated generation flow for one
// session: a fixed sequence of progress messages around the single real
// planner call, with a budget-check branch on the result. At most one run
// per session may be active; a run cannot be cancelled once started.
type NarratorServiceInterface interface {
	RunPlan(ctx context.Context, sessionID string, params plan_models.TripParameters) error
}

type NarratorService struct {
	planner  PlannerServiceInterface
	sessions memcache.SessionStoreInterface
	pacing   Pacing
}

func NewNarratorService(
	planner PlannerServiceInterface,
	sessions memcache.SessionStoreInterface,
	pacing Pacing,
) NarratorServiceInterface {
	return &NarratorService{
		planner:  planner,
		sessions: sessions,
		pacing:   pacing,
	}
}

// RunPlan executes the whole narration synchronously; callers that need the
// HTTP request to return immediately run it on their own goroutine. The
// sequence is a single linear routine so message ordering is structural,
// not an accident of timer scheduling.
func (n *NarratorService) RunPlan(ctx context.Context, sessionID string, params plan_models.TripParameters) error {
	if err := n.begin(sessionID); err != nil {
		return err
	}

	n.say(sessionID, "Initializing Travel Agent...")
	n.pause(n.pacing.Initialize)

	n.say(sessionID, fmt.Sprintf("Analyzing destination: %s...", params.Destination))
	n.pause(n.pacing.Analyze)

	n.say(sessionID, fmt.Sprintf("Fetching activities matching interests: [%s]...", strings.Join(params.Interests, ", ")))
	n.pause(n.pacing.Fetch)

	n.say(sessionID, "Checking budget constraints...")

	itinerary, err := n.planner.Generate(ctx, params)
	if err != nil {
		log.Printf("Plan generation failed for session %s: %v", sessionID, err)
		n.say(sessionID, fmt.Sprintf("Error: %v", err))
		n.finish(sessionID, memcache.RunFailed)
		return err
	}

	n.say(sessionID, "Validating time allocation...")
	n.pause(n.pacing.Validate)

	if itinerary.TotalCost > params.Budget {
		n.say(sessionID, fmt.Sprintf("WARNING: Plan exceeds budget ($%.0f > $%.0f). adjusting...",
			itinerary.TotalCost, params.Budget))
		n.pause(n.pacing.Optimize)
		// Narrative only: the itinerary is returned as generated, without
		// any cost trimming.
		n.say(sessionID, "Optimizing itinerary for cost efficiency...")
	} else {
		n.say(sessionID, "Budget check passed.")
	}

	n.say(sessionID, "Finalizing itinerary...")
	n.pause(n.pacing.Finalize)

	n.publish(sessionID, itinerary)
	n.say(sessionID, "Done! Trip plan ready.")
	n.finish(sessionID, memcache.RunDone)
	return nil
}

// begin claims the session for a new run: rejects a second concurrent run,
// then clears the previous log and itinerary before any message appears.
func (n *NarratorService) begin(sessionID string) error {
	return n.sessions.Update(sessionID, func(s *memcache.Session) error {
		if s.Run == memcache.RunActive {
			return utils.ErrRunInProgress
		}
		s.Run = memcache.RunActive
		s.Log = nil
		s.Itinerary = nil
		return nil
	})
}

func (n *NarratorService) say(sessionID, message string) {
	err := n.sessions.Update(sessionID, func(s *memcache.Session) error {
		s.Log = append(s.Log, plan_models.LogEntry{
			Message:   message,
			Timestamp: time.Now(),
		})
		return nil
	})
	if err != nil {
		log.Printf("Dropping narration for session %s: %v", sessionID, err)
	}
}

func (n *NarratorService) publish(sessionID string, itinerary *plan_models.Itinerary) {
	err := n.sessions.Update(sessionID, func(s *memcache.Session) error {
		s.Itinerary = itinerary
		return nil
	})
	if err != nil {
		log.Printf("Could not publish itinerary for session %s: %v", sessionID, err)
	}
}

func (n *NarratorService) finish(sessionID string, state memcache.RunState) {
	err := n.sessions.Update(sessionID, func(s *memcache.Session) error {
		s.Run = state
		return nil
	})
	if err != nil {
		log.Printf("Could not finish run for session %s: %v", sessionID, err)
	}
}

func (n *NarratorService) pause(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}
