package services

import (
	"context"

	"daejeonmate/internal/models/db_models"
	"daejeonmate/internal/models/response_models"
	"daejeonmate/internal/repositories"
	"daejeonmate/pkg/utils"
)

type PlaceServiceInterface interface {
	GetPlaceByID(ctx context.Context, id string) (*response_models.PlaceResponse, error)
	ListPlaces(ctx context.Context, page, pageSize int) ([]response_models.PlaceResponse, error)
	StorePlace(ctx context.Context, place *db_models.Place) (string, error)
}

type PlaceService struct {
	placeRepo       repositories.PlaceRepository
	embeddingClient utils.EmbeddingClientInterface
}

func NewPlaceService(placeRepo repositories.PlaceRepository, embeddingClient utils.EmbeddingClientInterface) PlaceServiceInterface {
	return &PlaceService{
		placeRepo:       placeRepo,
		embeddingClient: embeddingClient,
	}
}

func (s *PlaceService) GetPlaceByID(ctx context.Context, id string) (*response_models.PlaceResponse, error) {
	place, err := s.placeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if place == nil {
		return nil, utils.ErrPlaceNotFound
	}

	resp := response_models.NewPlaceResponse(place)
	return &resp, nil
}

func (s *PlaceService) ListPlaces(ctx context.Context, page, pageSize int) ([]response_models.PlaceResponse, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	places, err := s.placeRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	responses := make([]response_models.PlaceResponse, 0, len(places))
	for i := range places {
		responses = append(responses, response_models.NewPlaceResponse(&places[i]))
	}
	return responses, nil
}

// StorePlace is the direct-seed path: searchable text and embedding are
// computed here so a seeded record is never searchable-stale.
func (s *PlaceService) StorePlace(ctx context.Context, place *db_models.Place) (string, error) {
	place.SearchableText = BuildSearchableText(place)

	embedding, err := s.embeddingClient.GetEmbedding(ctx, place.SearchableText)
	if err != nil {
		return "", utils.ErrEmbeddingFailed
	}
	place.Embedding = embedding

	id, err := s.placeRepo.Create(ctx, place)
	if err != nil {
		return "", utils.ErrDatabaseError
	}
	return id.String(), nil
}
