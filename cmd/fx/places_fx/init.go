package places_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"daejeonmate/internal/repositories"
	"daejeonmate/internal/services"
	"daejeonmate/pkg/utils"
)

var Module = fx.Provide(
	providePlaceRepo, providePlaceService)

func providePlaceRepo(db *gorm.DB) repositories.PlaceRepository {
	return repositories.NewPlaceRepository(db)
}

func providePlaceService(
	placeRepo repositories.PlaceRepository,
	embeddingClient utils.EmbeddingClientInterface,
) services.PlaceServiceInterface {
	return services.NewPlaceService(placeRepo, embeddingClient)
}
