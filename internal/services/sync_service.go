package services

import (
	"context"
	"fmt"
	"log"

	"daejeonmate/internal/infra"
	"daejeonmate/internal/models/response_models"
	"daejeonmate/internal/models/source_models"
	"daejeonmate/internal/repositories"
	"daejeonmate/pkg/utils"
)

type syncAction string

const (
	actionCreated syncAction = "created"
	actionUpdated syncAction = "updated"
	actionSkipped syncAction = "skipped"
)

type SyncServiceInterface interface {
	// SyncAll reconciles every current source document into the store.
	// Documents are processed one at a time in source listing order; a
	// failing document is counted and the pass continues. Source-side
	// deletions are NOT detected here, only via delete notifications.
	SyncAll(ctx context.Context) (*response_models.SyncReport, error)

	// SyncDocument handles a create/update notification: re-fetches the
	// full document by id and walks it through the same state machine.
	SyncDocument(ctx context.Context, id string) error

	// DeleteDocument removes the store record for a deleted source
	// document. Deleting an absent id is a no-op.
	DeleteDocument(ctx context.Context, id string) error

	// VerifyEmbeddingDimensions aborts startup when stored embeddings
	// were computed by a model of a different dimensionality. Mixing
	// dimensions in one store is unrecoverable without a full re-embed.
	VerifyEmbeddingDimensions(ctx context.Context) error
}

type SyncService struct {
	sanityClient    infra.SanityClientInterface
	placeRepo       repositories.PlaceRepository
	embeddingClient utils.EmbeddingClientInterface
}

func NewSyncService(
	sanityClient infra.SanityClientInterface,
	placeRepo repositories.PlaceRepository,
	embeddingClient utils.EmbeddingClientInterface,
) SyncServiceInterface {
	return &SyncService{
		sanityClient:    sanityClient,
		placeRepo:       placeRepo,
		embeddingClient: embeddingClient,
	}
}

func (s *SyncService) SyncAll(ctx context.Context) (*response_models.SyncReport, error) {
	docs, err := s.sanityClient.FetchAllPlaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching source documents: %w", err)
	}

	log.Printf("Sync: fetched %d place documents from source", len(docs))

	report := &response_models.SyncReport{}
	for i := range docs {
		doc := &docs[i]

		action, err := s.syncOne(ctx, doc)
		if err != nil {
			report.Errors++
			report.Details = append(report.Details, fmt.Sprintf("%s: %v", doc.NameEn, err))
			log.Printf("Sync: error processing %q: %v", doc.NameEn, err)
			continue
		}

		switch action {
		case actionCreated:
			log.Printf("Sync: created %q", doc.NameEn)
			report.Created++
		case actionUpdated:
			log.Printf("Sync: updated %q", doc.NameEn)
			report.Updated++
		case actionSkipped:
			report.Skipped++
		}
	}

	log.Printf("Sync completed: created=%d updated=%d skipped=%d errors=%d",
		report.Created, report.Updated, report.Skipped, report.Errors)

	return report, nil
}

// syncOne walks one document through the per-document state machine:
// absent -> created, changed -> updated, unchanged -> skipped. Searchable
// text and embedding are always recomputed together before the upsert.
func (s *SyncService) syncOne(ctx context.Context, doc *source_models.SanityPlace) (syncAction, error) {
	place, err := doc.ToPlace()
	if err != nil {
		return "", err
	}

	existing, err := s.placeRepo.GetBySanityID(ctx, doc.ID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	// Unchanged exactly when the stored source timestamp is >= the
	// incoming one; equal counts as unchanged so duplicate notifications
	// don't trigger a redundant re-embed.
	if existing != nil && !existing.SanityUpdatedAt.Before(doc.UpdatedAt) {
		return actionSkipped, nil
	}

	place.SearchableText = BuildSearchableText(place)
	place.Embedding, err = s.embeddingClient.GetEmbedding(ctx, place.SearchableText)
	if err != nil {
		return "", fmt.Errorf("%w: %v", utils.ErrEmbeddingFailed, err)
	}

	if err := s.placeRepo.UpsertBySanityID(ctx, place); err != nil {
		return "", fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	if existing == nil {
		return actionCreated, nil
	}
	return actionUpdated, nil
}

func (s *SyncService) SyncDocument(ctx context.Context, id string) error {
	doc, err := s.sanityClient.FetchPlaceByID(ctx, id)
	if err != nil {
		return fmt.Errorf("fetching source document %s: %w", id, err)
	}
	if doc == nil {
		return fmt.Errorf("%w: %s", utils.ErrDocumentNotFound, id)
	}

	action, err := s.syncOne(ctx, doc)
	if err != nil {
		return err
	}
	log.Printf("Sync: webhook %s %q", action, doc.NameEn)
	return nil
}

func (s *SyncService) DeleteDocument(ctx context.Context, id string) error {
	if err := s.placeRepo.DeleteBySanityID(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	log.Printf("Sync: deleted place sanity_id=%s", id)
	return nil
}

func (s *SyncService) VerifyEmbeddingDimensions(ctx context.Context) error {
	stored, err := s.placeRepo.EmbeddingDims(ctx)
	if err != nil {
		return fmt.Errorf("checking stored embedding dimensions: %w", err)
	}
	if stored != 0 && stored != s.embeddingClient.Dimensions() {
		return fmt.Errorf("stored embeddings have %d dimensions but model %s produces %d; re-embed the store before switching models",
			stored, s.embeddingClient.Model(), s.embeddingClient.Dimensions())
	}
	return nil
}
