package controllers

import (
	"context"
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"wanderai/internal/models/response_models"
	"wanderai/internal/services"
	"wanderai/pkg/memcache"
	"wanderai/pkg/utils"
)

type PlanController struct {
	wizardService   services.WizardServiceInterface
	narratorService services.NarratorServiceInterface
	sessions        memcache.SessionStoreInterface
}

func NewPlanController(
	wizardService services.WizardServiceInterface,
	narratorService services.NarratorServiceInterface,
	sessions memcache.SessionStoreInterface,
) *PlanController {
	return &PlanController{
		wizardService:   wizardService,
		narratorService: narratorService,
		sessions:        sessions,
	}
}

// StartPlanHandler freezes the wizard draft and starts the narrated run in
// the background. The client follows along via the run endpoints.
func (p *PlanController) StartPlanHandler(c *gin.Context) {
	sessionID := c.Param("id")

	params, err := p.wizardService.Submit(sessionID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	// The run outlives this request; detach it from the request context.
	// Errors surface through the session log, not this response.
	go func() {
		_ = p.narratorService.RunPlan(context.Background(), sessionID, params)
	}()

	utils.RespondSuccess(c, gin.H{"session_id": sessionID}, "Plan generation started")
}

func (p *PlanController) GetRunHandler(c *gin.Context) {
	snap, err := p.sessions.Snapshot(c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if snap.Run == memcache.RunIdle {
		utils.HandleServiceError(c, utils.ErrRunNotStarted)
		return
	}

	utils.RespondSuccess(c, response_models.RunView{
		SessionID: snap.ID,
		Status:    string(snap.Run),
		Log:       snap.Log,
		Itinerary: snap.Itinerary,
	}, "")
}

// StreamRunLogHandler pushes log entries as server-sent events until the
// run reaches a terminal state.
func (p *PlanController) StreamRunLogHandler(c *gin.Context) {
	sessionID := c.Param("id")

	if _, err := p.sessions.Snapshot(sessionID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	sent := 0
	c.Stream(func(w io.Writer) bool {
		snap, err := p.sessions.Snapshot(sessionID)
		if err != nil {
			return false
		}
		for ; sent < len(snap.Log); sent++ {
			c.SSEvent("log", snap.Log[sent])
		}
		if snap.Run == memcache.RunDone || snap.Run == memcache.RunFailed {
			c.SSEvent("status", string(snap.Run))
			return false
		}
		time.Sleep(200 * time.Millisecond)
		return true
	})
}
