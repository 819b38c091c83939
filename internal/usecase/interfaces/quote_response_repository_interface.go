package interfaces

import (
	"context"

	"insurance_quotes/internal/domain/entities"
)

// IQuoteResponseRepository stores at most one quote per
// (aggregation_request_id, provider_code). Create returns ErrAlreadyExists on
// a duplicate key.

type IQuoteResponseRepository interface {
	Create(ctx context.Context, q entities.QuoteResponse) error
	ListByRequestID(ctx context.Context, requestID string) ([]entities.QuoteResponse, error)
}
