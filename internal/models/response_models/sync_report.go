package response_models

// SyncReport is the per-batch outcome of one reconciliation pass. A
// failing document increments Errors and the pass keeps going.
type SyncReport struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Skipped int      `json:"skipped"`
	Errors  int      `json:"errors"`
	Details []string `json:"details,omitempty"`
}
