package entities

import "time"

// AttemptOutcome is the terminal outcome of one provider's full retry sequence.

type AttemptOutcome string

const (
	AttemptOutcomeSuccess AttemptOutcome = "SUCCESS"
	AttemptOutcomeFailed  AttemptOutcome = "FAILED"
)

// ProviderAttempt is the terminal outcome record for (request, provider).
//
// Storage model (DynamoDB):
//   - PK: aggregation_request_id
//   - SK: provider_code
//
// The record is append-only: it is written exactly once, when the provider
// runner settles. DurationMs spans every attempt, including retry delays.
type ProviderAttempt struct {
	AggregationRequestID string         `json:"aggregation_request_id"`
	ProviderCode         string         `json:"provider_code"`
	Outcome              AttemptOutcome `json:"outcome"`
	Attempts             int            `json:"attempts"`
	DurationMs           int64          `json:"duration_ms"`
	ErrorMessage         string         `json:"error_message,omitempty"`
	CreatedAt            time.Time      `json:"created_at"`
}

func (a ProviderAttempt) Succeeded() bool {
	return a.Outcome == AttemptOutcomeSuccess
}
