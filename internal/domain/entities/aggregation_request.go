package entities

import "time"

// AggregationStatus represents the lifecycle of a quote aggregation request.
//
// Domain notes:
//   - Status transitions are owned by the orchestrator only.
//   - PENDING -> PROCESSING when providers are dispatched.
//   - PROCESSING -> COMPLETED once every dispatched provider has a terminal attempt.
//   - PENDING -> FAILED when no provider is enabled for the category.

type AggregationStatus string

const (
	AggregationStatusPending    AggregationStatus = "PENDING"
	AggregationStatusProcessing AggregationStatus = "PROCESSING"
	AggregationStatusCompleted  AggregationStatus = "COMPLETED"
	AggregationStatusFailed     AggregationStatus = "FAILED"
)

// AggregationRequest is one user-initiated request for comparative quotes in
// a single insurance category.
//
// Storage model (DynamoDB):
//   - PK: id
//
// DispatchedProviders is the roster snapshot taken at dispatch time. Progress
// and completion are always measured against it, never against the live roster.
type AggregationRequest struct {
	ID                  string            `json:"id"`
	Category            string            `json:"category"`
	Payload             map[string]any    `json:"payload"`
	Status              AggregationStatus `json:"status"`
	DispatchedProviders []string          `json:"dispatched_providers,omitempty"`
	FailureReason       string            `json:"failure_reason,omitempty"`
	AccessToken         string            `json:"-"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

// HasDispatched reports whether providerCode belongs to the dispatch snapshot.
func (r AggregationRequest) HasDispatched(providerCode string) bool {
	for _, code := range r.DispatchedProviders {
		if code == providerCode {
			return true
		}
	}
	return false
}

// Recipient returns the applicant e-mail carried in the payload, if any.
func (r AggregationRequest) Recipient() string {
	for _, key := range []string{"email", "applicant_email"} {
		if v, ok := r.Payload[key].(string); ok && v != "" {
			return v
		}
	}
	if applicant, ok := r.Payload["applicant"].(map[string]any); ok {
		if v, ok := applicant["email"].(string); ok {
			return v
		}
	}
	return ""
}
