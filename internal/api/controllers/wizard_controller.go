package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wanderai/internal/models/request_models"
	"wanderai/internal/services"
	"wanderai/pkg/utils"
)

type WizardController struct {
	wizardService services.WizardServiceInterface
}

func NewWizardController(wizardService services.WizardServiceInterface) *WizardController {
	return &WizardController{
		wizardService: wizardService,
	}
}

func (w *WizardController) StartSessionHandler(c *gin.Context) {
	state := w.wizardService.StartSession()
	utils.RespondSuccess(c, state, "Planning session created")
}

func (w *WizardController) GetStateHandler(c *gin.Context) {
	state, err := w.wizardService.GetState(c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, state, "")
}

func (w *WizardController) NextStepHandler(c *gin.Context) {
	var req request_models.WizardStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	state, err := w.wizardService.SubmitStep(c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, state, "Step accepted")
}

func (w *WizardController) BackHandler(c *gin.Context) {
	state, err := w.wizardService.StepBack(c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, state, "Step reverted")
}

func (w *WizardController) ToggleInterestHandler(c *gin.Context) {
	var req request_models.ToggleInterestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "interest is required")
		return
	}

	state, err := w.wizardService.ToggleInterest(c.Param("id"), req.Interest)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, state, "Interest toggled")
}
