package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"daejeonmate/internal/models/response_models"
	"daejeonmate/internal/services"
	"daejeonmate/pkg/utils"
)

type SearchController struct {
	ragService services.RAGServiceInterface
}

func NewSearchController(ragService services.RAGServiceInterface) *SearchController {
	return &SearchController{
		ragService: ragService,
	}
}

// SearchHandler exposes retrieval directly: GET /api/search?q=...
// Zero matches is a success with an empty result list.
func (s *SearchController) SearchHandler(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		utils.RespondError(c, http.StatusBadRequest, "Query parameter q is required")
		return
	}

	opts := services.SearchOptions{
		Category: c.Query("category"),
	}

	if raw := c.Query("maxResults"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 50 {
			utils.RespondError(c, http.StatusBadRequest, "maxResults must be between 1 and 50")
			return
		}
		opts.MaxResults = n
	}

	if raw := c.Query("threshold"); raw != "" {
		t, err := strconv.ParseFloat(raw, 64)
		if err != nil || t < 0 || t > 1 {
			utils.RespondError(c, http.StatusBadRequest, "threshold must be between 0 and 1")
			return
		}
		opts.SimilarityThreshold = &t
	}

	if raw := c.Query("localOnly"); raw != "" {
		localOnly := raw == "true"
		opts.LocalOnly = &localOnly
	}

	results, err := s.ragService.Retrieve(c.Request.Context(), query, opts)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	responses := make([]response_models.SearchResult, 0, len(results))
	for _, result := range results {
		responses = append(responses, response_models.SearchResult{
			Place:      response_models.NewPlaceResponse(result.Place),
			Similarity: result.Similarity,
		})
	}

	utils.RespondSuccess(c, responses, "Search completed")
}
