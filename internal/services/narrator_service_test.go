package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wanderai/internal/models/plan_models"
	"wanderai/pkg/memcache"
	"wanderai/pkg/utils"
)

type stubPlanner struct {
	itinerary *plan_models.Itinerary
	err       error
	calls     int
}

func (s *stubPlanner) Generate(_ context.Context, params plan_models.TripParameters) (*plan_models.Itinerary, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := *s.itinerary
	out.Destination = params.Destination
	return &out, nil
}

func plannedItinerary(totalCost float64) *plan_models.Itinerary {
	return &plan_models.Itinerary{
		ID:        "run-1",
		TotalCost: totalCost,
		Days: []plan_models.DayPlan{
			{
				Day:        1,
				Theme:      "Arrival",
				DailyTotal: totalCost,
				Activities: []plan_models.Activity{
					{
						ID:            "a1",
						Name:          "City walk",
						Description:   "Get oriented",
						EstimatedCost: totalCost,
						Duration:      "2 hours",
						Category:      plan_models.CategorySightseeing,
					},
				},
			},
		},
	}
}

func narratorFixture(t *testing.T, planner PlannerServiceInterface) (NarratorServiceInterface, memcache.SessionStoreInterface, string) {
	t.Helper()
	store := memcache.NewSessionStore(testSessionTTL)
	sess := store.Create()
	return NewNarratorService(planner, store, ZeroPacing()), store, sess.ID
}

func logMessages(t *testing.T, store memcache.SessionStoreInterface, sessionID string) []string {
	t.Helper()
	snap, err := store.Snapshot(sessionID)
	require.NoError(t, err)

	messages := make([]string, len(snap.Log))
	for i, entry := range snap.Log {
		messages[i] = entry.Message
	}
	return messages
}

func TestRunPlanNarratesSuccessWithinBudget(t *testing.T) {
	planner := &stubPlanner{itinerary: plannedItinerary(800)}
	narrator, store, sessionID := narratorFixture(t, planner)

	params := plan_models.TripParameters{
		Destination: "Kyoto",
		Budget:      1000,
		Days:        1,
		Travelers:   1,
		Interests:   []string{"History", "Food"},
	}
	require.NoError(t, narrator.RunPlan(context.Background(), sessionID, params))

	assert.Equal(t, []string{
		"Initializing Travel Agent...",
		"Analyzing destination: Kyoto...",
		"Fetching activities matching interests: [History, Food]...",
		"Checking budget constraints...",
		"Validating time allocation...",
		"Budget check passed.",
		"Finalizing itinerary...",
		"Done! Trip plan ready.",
	}, logMessages(t, store, sessionID))

	snap, err := store.Snapshot(sessionID)
	require.NoError(t, err)
	assert.Equal(t, memcache.RunDone, snap.Run)
	require.NotNil(t, snap.Itinerary)
	assert.Equal(t, "Kyoto", snap.Itinerary.Destination)
	assert.Equal(t, 1, planner.calls)
}

func TestRunPlanNarratesBudgetExceededWithoutModifyingPlan(t *testing.T) {
	planner := &stubPlanner{itinerary: plannedItinerary(1200)}
	narrator, store, sessionID := narratorFixture(t, planner)

	params := plan_models.TripParameters{
		Destination: "Rome",
		Budget:      1000,
		Days:        1,
		Travelers:   2,
		Interests:   []string{"Art"},
	}
	require.NoError(t, narrator.RunPlan(context.Background(), sessionID, params))

	messages := logMessages(t, store, sessionID)
	assert.Equal(t, []string{
		"Initializing Travel Agent...",
		"Analyzing destination: Rome...",
		"Fetching activities matching interests: [Art]...",
		"Checking budget constraints...",
		"Validating time allocation...",
		"WARNING: Plan exceeds budget ($1200 > $1000). adjusting...",
		"Optimizing itinerary for cost efficiency...",
		"Finalizing itinerary...",
		"Done! Trip plan ready.",
	}, messages)

	// The optimizing step is narrative only.
	snap, err := store.Snapshot(sessionID)
	require.NoError(t, err)
	require.NotNil(t, snap.Itinerary)
	assert.Equal(t, float64(1200), snap.Itinerary.TotalCost)
}

func TestRunPlanUnderBudgetOmitsWarning(t *testing.T) {
	planner := &stubPlanner{itinerary: plannedItinerary(800)}
	narrator, store, sessionID := narratorFixture(t, planner)

	params := plan_models.TripParameters{Destination: "Rome", Budget: 1000, Days: 1, Travelers: 1}
	require.NoError(t, narrator.RunPlan(context.Background(), sessionID, params))

	for _, msg := range logMessages(t, store, sessionID) {
		assert.NotContains(t, msg, "exceeds budget")
		assert.NotContains(t, msg, "Optimizing")
	}
}

func TestRunPlanFailureTerminatesRun(t *testing.T) {
	planner := &stubPlanner{err: errors.New("model refused the request")}
	narrator, store, sessionID := narratorFixture(t, planner)

	params := plan_models.TripParameters{Destination: "Oslo", Budget: 500, Days: 2, Travelers: 1}
	err := narrator.RunPlan(context.Background(), sessionID, params)
	require.Error(t, err)

	messages := logMessages(t, store, sessionID)
	require.NotEmpty(t, messages)
	last := messages[len(messages)-1]
	assert.Contains(t, last, "Error:")
	assert.Contains(t, last, "model refused the request")

	// Nothing after the failure point.
	for _, msg := range messages {
		assert.NotContains(t, msg, "Validating time allocation")
		assert.NotContains(t, msg, "Finalizing")
	}

	snap, snapErr := store.Snapshot(sessionID)
	require.NoError(t, snapErr)
	assert.Equal(t, memcache.RunFailed, snap.Run)
	assert.Nil(t, snap.Itinerary)
}

func TestRunPlanRejectsConcurrentRun(t *testing.T) {
	planner := &stubPlanner{itinerary: plannedItinerary(100)}
	narrator, store, sessionID := narratorFixture(t, planner)

	require.NoError(t, store.Update(sessionID, func(s *memcache.Session) error {
		s.Run = memcache.RunActive
		return nil
	}))

	err := narrator.RunPlan(context.Background(), sessionID, plan_models.TripParameters{Destination: "Lima", Budget: 100, Days: 1, Travelers: 1})
	assert.ErrorIs(t, err, utils.ErrRunInProgress)
	assert.Equal(t, 0, planner.calls)
}

func TestRunPlanResetsPreviousState(t *testing.T) {
	planner := &stubPlanner{itinerary: plannedItinerary(100)}
	narrator, store, sessionID := narratorFixture(t, planner)

	require.NoError(t, store.Update(sessionID, func(s *memcache.Session) error {
		s.Log = []plan_models.LogEntry{{Message: "stale entry"}}
		s.Itinerary = plannedItinerary(999)
		s.Run = memcache.RunDone
		return nil
	}))

	params := plan_models.TripParameters{Destination: "Lima", Budget: 500, Days: 1, Travelers: 1}
	require.NoError(t, narrator.RunPlan(context.Background(), sessionID, params))

	messages := logMessages(t, store, sessionID)
	assert.Equal(t, "Initializing Travel Agent...", messages[0])
	for _, msg := range messages {
		assert.NotEqual(t, "stale entry", msg)
	}

	snap, err := store.Snapshot(sessionID)
	require.NoError(t, err)
	assert.Equal(t, float64(100), snap.Itinerary.TotalCost)
}

func TestRunPlanUnknownSession(t *testing.T) {
	planner := &stubPlanner{itinerary: plannedItinerary(100)}
	narrator := NewNarratorService(planner, memcache.NewSessionStore(testSessionTTL), ZeroPacing())

	err := narrator.RunPlan(context.Background(), "missing", plan_models.TripParameters{Destination: "x", Budget: 1, Days: 1, Travelers: 1})
	assert.ErrorIs(t, err, utils.ErrSessionNotFound)
}
