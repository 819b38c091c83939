package interfaces

import (
	"context"

	"insurance_quotes/internal/domain/entities"
)

// IAggregationRequestRepository abstracts persistence for AggregationRequest.
//
// GetByID returns a zero value (empty ID) and no error when the request does
// not exist. Status changes are conditional on the current status so that
// concurrent callers cannot regress or double-apply a transition:
//   - MarkProcessing: PENDING -> PROCESSING, storing the dispatch snapshot
//   - MarkFailed: PENDING -> FAILED
//   - MarkCompleted: PROCESSING -> COMPLETED, reporting whether this caller won

type IAggregationRequestRepository interface {
	Create(ctx context.Context, r entities.AggregationRequest) (entities.AggregationRequest, error)
	GetByID(ctx context.Context, id string) (entities.AggregationRequest, error)
	MarkProcessing(ctx context.Context, id string, dispatched []string) (entities.AggregationRequest, error)
	MarkFailed(ctx context.Context, id string, reason string) error
	MarkCompleted(ctx context.Context, id string) (bool, error)
}
