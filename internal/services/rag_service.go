package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"daejeonmate/internal/infra"
	"daejeonmate/internal/models/db_models"
	"daejeonmate/internal/repositories"
	"daejeonmate/pkg/utils"
)

// candidateFactor is the vector-stage over-fetch multiplier. The vector
// stage cannot see the threshold or the category/local-only post-filters,
// so it has to return enough candidates that filtering still leaves
// maxResults rows.
const candidateFactor = 10

// SearchOptions tunes one retrieval call. Zero values fall back to the
// configured defaults.
type SearchOptions struct {
	MaxResults          int
	SimilarityThreshold *float64
	Category            string
	LocalOnly           *bool
}

// SearchResult pairs a stored place with its similarity for one call.
type SearchResult struct {
	Place      *db_models.Place
	Similarity float64
}

// RAGContext is the full retrieval output: the ranked matches for
// tool-call resolution and the assembled text block for the completion
// service.
type RAGContext struct {
	Query   string
	Results []SearchResult
	Context string
}

type RAGServiceInterface interface {
	Retrieve(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error)
	AssembleContext(results []SearchResult) string
	PerformRAG(ctx context.Context, query string, opts SearchOptions) (*RAGContext, error)
}

type RAGService struct {
	placeRepo        repositories.PlaceRepository
	embeddingClient  utils.EmbeddingClientInterface
	defaultMax       int
	defaultThreshold float64
	preferLocal      bool
}

func NewRAGService(
	placeRepo repositories.PlaceRepository,
	embeddingClient utils.EmbeddingClientInterface,
	cfg *infra.Config,
) RAGServiceInterface {
	return &RAGService{
		placeRepo:        placeRepo,
		embeddingClient:  embeddingClient,
		defaultMax:       cfg.MaxSearchResults,
		defaultThreshold: cfg.SimilarityThreshold,
		preferLocal:      cfg.PreferLocalBusiness,
	}
}

// BuildSearchableText serializes the descriptive fields into the text the
// embedding is computed from. Deterministic and order-sensitive: changing
// field order or inclusion invalidates every stored embedding, which
// means re-embedding the whole store.
func BuildSearchableText(place *db_models.Place) string {
	parts := []string{
		place.Name,
		place.NameEn,
		string(place.Category),
		place.Description,
		place.DescriptionEn,
		place.District,
		place.Address,
	}

	parts = append(parts, place.Specialties...)
	parts = append(parts, place.Features...)
	parts = append(parts, place.NearbyAttractions...)

	nonEmpty := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}
	return strings.Join(nonEmpty, " ")
}

func (s *RAGService) Retrieve(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, utils.ErrInvalidInput
	}

	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.defaultMax
	}
	threshold := s.defaultThreshold
	if opts.SimilarityThreshold != nil {
		threshold = *opts.SimilarityThreshold
	}
	localOnly := s.preferLocal
	if opts.LocalOnly != nil {
		localOnly = *opts.LocalOnly
	}

	// The expensive, failure-prone step. No embedding, no answer.
	vector, err := s.embeddingClient.GetEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrEmbeddingFailed, err)
	}

	candidates, err := s.placeRepo.VectorSearch(ctx, vector, maxResults*candidateFactor)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	results := make([]SearchResult, 0, maxResults)
	for i := range candidates {
		candidate := &candidates[i]

		// Hard cutoff: a below-threshold match is excluded even when
		// fewer than maxResults rows remain.
		if candidate.Similarity < threshold {
			continue
		}
		if opts.Category != "" && string(candidate.Category) != opts.Category {
			continue
		}
		if localOnly && !candidate.IsLocalBusiness {
			continue
		}

		results = append(results, SearchResult{
			Place:      &candidate.Place,
			Similarity: candidate.Similarity,
		})
		if len(results) == maxResults {
			break
		}
	}

	return results, nil
}

// AssembleContext renders the ranked matches as the completion service's
// context block. Empty input yields the fixed no-data sentinel, never an
// empty string. No token budgeting happens here: maxResults is the
// operator's lever for keeping the block inside the model's input limit.
func (s *RAGService) AssembleContext(results []SearchResult) string {
	if len(results) == 0 {
		return utils.NoDataSentinel
	}

	blocks := make([]string, len(results))
	for i, result := range results {
		blocks[i] = fmt.Sprintf("%d. %s", i+1, utils.FormatPlaceForContext(result.Place))
	}

	return utils.BuildContextPrompt(strings.Join(blocks, "\n\n"))
}

func (s *RAGService) PerformRAG(ctx context.Context, query string, opts SearchOptions) (*RAGContext, error) {
	results, err := s.Retrieve(ctx, query, opts)
	if err != nil {
		return nil, err
	}

	log.Printf("RAG: %d places matched for query %q", len(results), query)

	return &RAGContext{
		Query:   query,
		Results: results,
		Context: s.AssembleContext(results),
	}, nil
}
