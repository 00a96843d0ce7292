package controllers

import (
	"github.com/gin-gonic/gin"

	"wanderai/internal/services"
	"wanderai/pkg/memcache"
	"wanderai/pkg/utils"
)

type ItineraryController struct {
	presentationService services.PresentationServiceInterface
	sessions            memcache.SessionStoreInterface
}

func NewItineraryController(
	presentationService services.PresentationServiceInterface,
	sessions memcache.SessionStoreInterface,
) *ItineraryController {
	return &ItineraryController{
		presentationService: presentationService,
		sessions:            sessions,
	}
}

func (i *ItineraryController) GetTimelineHandler(c *gin.Context) {
	snap, err := i.sessions.Snapshot(c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if snap.Itinerary == nil {
		utils.HandleServiceError(c, utils.ErrNoItinerary)
		return
	}

	utils.RespondSuccess(c, i.presentationService.Timeline(snap.Itinerary), "")
}

func (i *ItineraryController) GetMapHandler(c *gin.Context) {
	snap, err := i.sessions.Snapshot(c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if snap.Itinerary == nil {
		utils.HandleServiceError(c, utils.ErrNoItinerary)
		return
	}

	utils.RespondSuccess(c, i.presentationService.MapView(c.Request.Context(), snap.Itinerary), "")
}
