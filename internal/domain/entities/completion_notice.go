package entities

// CompletionNotice is sent once per request when it reaches COMPLETED.
// BestPrice is zero when no provider returned a quote.
type CompletionNotice struct {
	AggregationRequestID string  `json:"aggregation_request_id"`
	Recipient            string  `json:"recipient"`
	BestPrice            float64 `json:"best_price"`
	Currency             string  `json:"currency,omitempty"`
	RespondentCount      int     `json:"respondent_count"`
}
