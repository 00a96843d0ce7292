package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"wanderai/cmd/fx/geo_fx"
	"wanderai/cmd/fx/planner_fx"
	"wanderai/cmd/fx/session_fx"
	"wanderai/cmd/fx/wizard_fx"
	"wanderai/internal/api/controllers"
	"wanderai/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	app := fx.New(
		session_fx.Module,
		wizard_fx.Module,
		planner_fx.Module,
		geo_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	wizardController *controllers.WizardController,
	planController *controllers.PlanController,
	itineraryController *controllers.ItineraryController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, wizardController, planController, itineraryController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	wizardController *controllers.WizardController,
	planController *controllers.PlanController,
	itineraryController *controllers.ItineraryController) {

	sessions := r.Group("/api/v1/sessions")
	sessions.POST("", wizardController.StartSessionHandler)
	sessions.GET("/:id/wizard", wizardController.GetStateHandler)
	sessions.POST("/:id/wizard/next", wizardController.NextStepHandler)
	sessions.POST("/:id/wizard/back", wizardController.BackHandler)
	sessions.POST("/:id/wizard/interests/toggle", wizardController.ToggleInterestHandler)

	sessions.POST("/:id/plan", planController.StartPlanHandler)
	sessions.GET("/:id/run", planController.GetRunHandler)
	sessions.GET("/:id/run/stream", planController.StreamRunLogHandler)

	sessions.GET("/:id/itinerary", itineraryController.GetTimelineHandler)
	sessions.GET("/:id/map", itineraryController.GetMapHandler)
}
