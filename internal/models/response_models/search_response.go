package response_models

// SearchResult pairs a place with its similarity score for one retrieval
// call. It is never persisted.
type SearchResult struct {
	Place      PlaceResponse `json:"place"`
	Similarity float64       `json:"similarity"`
}

// RAGContext is the retrieval output handed to the completion service:
// the query, the ranked matches and the assembled context block.
type RAGContext struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
	Context string         `json:"context"`
}
