package ai_fx

import (
	"log"
	"os"

	"go.uber.org/fx"

	"daejeonmate/internal/infra"
	mem "daejeonmate/pkg/memcache"
	"daejeonmate/pkg/utils"
)

var Module = fx.Provide(
	ProvideEmbeddingClient,
	ProvideCompletionClient,
	ProvidePlanClient,
	providePlanCache)

// ProvideEmbeddingClient creates the embedding client. Provider selection
// is env-driven; only OpenAI is supported today.
func ProvideEmbeddingClient(cfg *infra.Config) (utils.EmbeddingClientInterface, error) {
	provider := os.Getenv("EMBEDDING_PROVIDER")
	log.Printf("Initializing embedding client with model: %s (%d dims)", cfg.EmbeddingModel, cfg.EmbeddingDimensions)
	return utils.NewEmbeddingClient(provider, cfg.OpenAIAPIKey, cfg.EmbeddingModel, cfg.EmbeddingDimensions)
}

func ProvideCompletionClient(cfg *infra.Config) utils.CompletionClientInterface {
	return utils.NewOpenAICompletionClient(cfg.OpenAIAPIKey, cfg.CompletionModel)
}

func ProvidePlanClient(cfg *infra.Config) (utils.PlanClientInterface, error) {
	return utils.NewGeminiPlanClient(cfg.GeminiAPIKey, cfg.GeminiModel)
}

func providePlanCache() mem.PlanCacheStore {
	return mem.NewPlanCache()
}
