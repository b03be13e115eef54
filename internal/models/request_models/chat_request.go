package request_models

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Messages  []ChatMessage `json:"messages"`
	Category  string        `json:"category,omitempty"`
	LocalOnly *bool         `json:"local_only,omitempty"`
}

type PlannerRequest struct {
	Prompt   string `json:"prompt"`
	DayCount int    `json:"day_count"`
}
