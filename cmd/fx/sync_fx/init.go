package sync_fx

import (
	"go.uber.org/fx"

	"daejeonmate/internal/infra"
	"daejeonmate/internal/repositories"
	"daejeonmate/internal/services"
	"daejeonmate/pkg/utils"
)

var Module = fx.Provide(
	provideSanityClient, provideSyncService)

func provideSanityClient(cfg *infra.Config) infra.SanityClientInterface {
	return infra.NewSanityClient(cfg)
}

func provideSyncService(
	sanityClient infra.SanityClientInterface,
	placeRepo repositories.PlaceRepository,
	embeddingClient utils.EmbeddingClientInterface,
) services.SyncServiceInterface {
	return services.NewSyncService(sanityClient, placeRepo, embeddingClient)
}
