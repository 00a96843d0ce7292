package planner_fx

import (
	"fmt"
	"log"
	"os"
	"strings"

	"go.uber.org/fx"

	"wanderai/internal/api/controllers"
	"wanderai/internal/services"
	"wanderai/pkg/memcache"
	"wanderai/pkg/utils"
)

var Module = fx.Provide(
	ProvidePlannerClient,
	ProvidePlannerService,
	ProvideNarratorService,
	ProvidePlanController,
)

// PlannerConfig holds configuration for the structured-generation provider.
type PlannerConfig struct {
	Provider string
	APIKey   string
	Model    string
}

// ProvidePlannerClient creates the generation client based on environment
// variables.
func ProvidePlannerClient() (utils.PlannerClientInterface, error) {
	config := getPlannerConfig()

	log.Printf("Initializing %s planner client with model: %s", config.Provider, config.Model)

	client, err := utils.NewPlannerClient(config.Provider, config.APIKey, config.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to create planner client: %w", err)
	}
	return client, nil
}

func ProvidePlannerService(client utils.PlannerClientInterface) services.PlannerServiceInterface {
	return services.NewPlannerService(client)
}

func ProvideNarratorService(
	planner services.PlannerServiceInterface,
	sessions memcache.SessionStoreInterface,
) services.NarratorServiceInterface {
	return services.NewNarratorService(planner, sessions, services.DefaultPacing())
}

func ProvidePlanController(
	wizardService services.WizardServiceInterface,
	narratorService services.NarratorServiceInterface,
	sessions memcache.SessionStoreInterface,
) *controllers.PlanController {
	return controllers.NewPlanController(wizardService, narratorService, sessions)
}

func getPlannerConfig() PlannerConfig {
	provider := getEnvWithDefault("PLANNER_PROVIDER", "gemini")

	var apiKey, model string

	switch strings.ToLower(provider) {
	case "openai":
		apiKey = os.Getenv("OPENAI_API_KEY")
		model = getEnvWithDefault("OPENAI_MODEL", "gpt-4o-mini")
		if apiKey == "" {
			log.Fatal("OPENAI_API_KEY is required when using OpenAI provider")
		}
	case "gemini":
		apiKey = os.Getenv("GEMINI_API_KEY")
		model = getEnvWithDefault("GEMINI_MODEL", "gemini-1.5-flash")
		if apiKey == "" {
			log.Fatal("GEMINI_API_KEY is required when using Gemini provider")
		}
	}

	return PlannerConfig{
		Provider: provider,
		APIKey:   apiKey,
		Model:    model,
	}
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
