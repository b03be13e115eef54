package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"daejeonmate/internal/models/db_models"
)

// PlaceWithSimilarity is one row of the vector stage: the place plus its
// cosine similarity to the query vector.
type PlaceWithSimilarity struct {
	db_models.Place
	Similarity float64
}

type PlaceRepository interface {
	Create(ctx context.Context, place *db_models.Place) (uuid.UUID, error)
	Update(ctx context.Context, place *db_models.Place) error
	GetByID(ctx context.Context, id string) (*db_models.Place, error)
	GetBySanityID(ctx context.Context, sanityID string) (*db_models.Place, error)
	List(ctx context.Context, page, pageSize int) ([]db_models.Place, error)
	ListByNamesEn(ctx context.Context, names []string) ([]db_models.Place, error)

	UpsertBySanityID(ctx context.Context, place *db_models.Place) error
	DeleteBySanityID(ctx context.Context, sanityID string) error

	VectorSearch(ctx context.Context, vector pgvector.Vector, numCandidates int) ([]PlaceWithSimilarity, error)
	EmbeddingDims(ctx context.Context) (int, error)
}

type placeRepository struct {
	db *gorm.DB
}

func NewPlaceRepository(db *gorm.DB) PlaceRepository {
	return &placeRepository{db: db}
}

func (r *placeRepository) Create(ctx context.Context, place *db_models.Place) (uuid.UUID, error) {
	if err := r.db.WithContext(ctx).Create(place).Error; err != nil {
		return uuid.Nil, err
	}
	return place.ID, nil
}

func (r *placeRepository) Update(ctx context.Context, place *db_models.Place) error {
	result := r.db.WithContext(ctx).Save(place)
	if result.Error != nil {
		return fmt.Errorf("failed to update place: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ────────────────────────────────────────────────────────────────
// Read helpers follow the same pattern: default value + nil error
// when no rows are found.
// ────────────────────────────────────────────────────────────────

func (r *placeRepository) GetByID(ctx context.Context, id string) (*db_models.Place, error) {
	var place db_models.Place
	err := r.db.WithContext(ctx).First(&place, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &place, nil
}

func (r *placeRepository) GetBySanityID(ctx context.Context, sanityID string) (*db_models.Place, error) {
	var place db_models.Place
	err := r.db.WithContext(ctx).First(&place, "sanity_id = ?", sanityID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &place, nil
}

func (r *placeRepository) List(ctx context.Context, page, pageSize int) ([]db_models.Place, error) {
	var places []db_models.Place
	offset := (page - 1) * pageSize

	err := r.db.WithContext(ctx).
		Order("name_en").
		Offset(offset).
		Limit(pageSize).
		Find(&places).Error
	if err != nil {
		return nil, err
	}
	return places, nil
}

func (r *placeRepository) ListByNamesEn(ctx context.Context, names []string) ([]db_models.Place, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var places []db_models.Place
	err := r.db.WithContext(ctx).Where("name_en IN ?", names).Find(&places).Error
	if err != nil {
		return nil, err
	}
	return places, nil
}

// UpsertBySanityID inserts or replaces the record for one source
// document. Keying on sanity_id makes re-processing the same change
// notification idempotent.
func (r *placeRepository) UpsertBySanityID(ctx context.Context, place *db_models.Place) error {
	if place.SanityID == nil || *place.SanityID == "" {
		return fmt.Errorf("upsert requires a sanity id")
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "sanity_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "name_en", "category", "description", "description_en",
			"address", "district", "latitude", "longitude", "image_url",
			"features", "price_range", "opening_hours", "contact",
			"is_local_business", "specialties", "specialty_image_urls",
			"nearby_attractions", "searchable_text", "embedding",
			"sanity_updated_at", "updated_at",
		}),
	}).Create(place).Error
}

// DeleteBySanityID removes the record for a deleted source document.
// Deleting an id that is already gone is a no-op, not an error. Rows are
// removed for real so the sanity_id unique index stays reusable.
func (r *placeRepository) DeleteBySanityID(ctx context.Context, sanityID string) error {
	err := r.db.WithContext(ctx).Unscoped().
		Delete(&db_models.Place{}, "sanity_id = ?", sanityID).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

// VectorSearch runs the vector stage only: the numCandidates rows nearest
// to the query vector, ordered by descending similarity. Threshold and
// equality filters are applied by the caller after this stage, so
// numCandidates should over-fetch accordingly.
func (r *placeRepository) VectorSearch(ctx context.Context, vector pgvector.Vector, numCandidates int) ([]PlaceWithSimilarity, error) {
	var results []PlaceWithSimilarity

	vecStr := vector.String()

	query := `
        SELECT *, (1 - (embedding <=> ?)) AS similarity
        FROM places
        WHERE deleted_at IS NULL AND embedding IS NOT NULL
        ORDER BY embedding <=> ?  -- Cosine distance (closer to 0 is better)
        LIMIT ?
    `

	err := r.db.WithContext(ctx).Raw(query, vecStr, vecStr, numCandidates).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// EmbeddingDims reports the dimensionality of stored embeddings, or 0
// when the store is empty. Used by the startup model-compatibility check.
func (r *placeRepository) EmbeddingDims(ctx context.Context) (int, error) {
	var dims int
	err := r.db.WithContext(ctx).
		Raw("SELECT vector_dims(embedding) FROM places WHERE embedding IS NOT NULL LIMIT 1").
		Scan(&dims).Error
	if err != nil {
		return 0, err
	}
	return dims, nil
}
