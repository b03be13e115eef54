package rag_fx

import (
	"go.uber.org/fx"

	"daejeonmate/internal/infra"
	"daejeonmate/internal/repositories"
	"daejeonmate/internal/services"
	"daejeonmate/pkg/utils"
)

var Module = fx.Provide(
	provideRAGService)

func provideRAGService(
	placeRepo repositories.PlaceRepository,
	embeddingClient utils.EmbeddingClientInterface,
	cfg *infra.Config,
) services.RAGServiceInterface {
	return services.NewRAGService(placeRepo, embeddingClient, cfg)
}
