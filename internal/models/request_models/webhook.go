package request_models

// WebhookPayload is the identity-only body of a content-source push
// notification. The full document is always re-fetched by ID.
type WebhookPayload struct {
	ID   string `json:"_id"`
	Type string `json:"_type"`
}
