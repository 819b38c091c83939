package interfaces

import (
	"context"

	"insurance_quotes/internal/domain/entities"
)

// IProviderAttemptRepository is the append-only attempt log keyed by
// (aggregation_request_id, provider_code). Create returns ErrAlreadyExists
// when a terminal attempt is already recorded for the key.

type IProviderAttemptRepository interface {
	Create(ctx context.Context, a entities.ProviderAttempt) error
	Get(ctx context.Context, requestID, providerCode string) (entities.ProviderAttempt, error)
	ListByRequestID(ctx context.Context, requestID string) ([]entities.ProviderAttempt, error)
}
