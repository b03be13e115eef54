package chat_fx

import (
	"go.uber.org/fx"

	"daejeonmate/internal/repositories"
	"daejeonmate/internal/services"
	mem "daejeonmate/pkg/memcache"
	"daejeonmate/pkg/utils"
)

var Module = fx.Provide(
	provideChatService)

func provideChatService(
	ragService services.RAGServiceInterface,
	placeRepo repositories.PlaceRepository,
	completionClient utils.CompletionClientInterface,
	planClient utils.PlanClientInterface,
	planCache mem.PlanCacheStore,
) services.ChatServiceInterface {
	return services.NewChatService(ragService, placeRepo, completionClient, planClient, planCache)
}
