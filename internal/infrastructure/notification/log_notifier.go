package notification

import (
	"context"

	"insurance_quotes/internal/domain/entities"
	"insurance_quotes/internal/platform/logger"
	"insurance_quotes/internal/usecase/interfaces"
)

// LogNotifier only logs the notice. It is used when no webhook is configured.
type LogNotifier struct {
	log *logger.Logger
}

var _ interfaces.INotifier = (*LogNotifier)(nil)

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	if log == nil {
		log = logger.NewNop()
	}
	return &LogNotifier{log: log.With("component", "notification.log")}
}

func (n *LogNotifier) NotifyCompleted(_ context.Context, notice entities.CompletionNotice) error {
	n.log.Info("aggregation completed",
		"aggregation_request_id", notice.AggregationRequestID,
		"email", notice.Recipient,
		"best_price", notice.BestPrice,
		"currency", notice.Currency,
		"respondents", notice.RespondentCount,
	)
	return nil
}
