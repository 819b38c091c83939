package interfaces

import (
	"context"

	"insurance_quotes/internal/domain/entities"
)

// INotifier delivers the completion notice. Delivery is best-effort: callers
// log a returned error and never retry.
type INotifier interface {
	NotifyCompleted(ctx context.Context, n entities.CompletionNotice) error
}

// IAggregationMetrics receives orchestration events.
type IAggregationMetrics interface {
	AggregationFinished(status entities.AggregationStatus)
	EnrichmentFailed(providerCode string)
}
