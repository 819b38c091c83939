package entities

// ScoredQuote is a QuoteResponse decorated with its sub-scores and rank.
//
// It is derived on every read and never persisted: the provider profiles it
// depends on may drift between reads.
type ScoredQuote struct {
	QuoteResponse
	ProviderName  string `json:"provider_name"`
	PriceScore    int    `json:"price_score"`
	CoverageScore int    `json:"coverage_score"`
	RatingScore   int    `json:"rating_score"`
	SpeedScore    int    `json:"speed_score"`
	WeightedScore int    `json:"weighted_score"`
	TotalScore    int    `json:"total_score"`
	Rank          int    `json:"rank"`
}

// Progress is the read model returned to polling clients.
type Progress struct {
	AggregationRequestID string            `json:"aggregation_request_id"`
	Dispatched           int               `json:"dispatched"`
	Settled              int               `json:"settled"`
	Succeeded            int               `json:"succeeded"`
	Status               AggregationStatus `json:"status"`
}

func (p Progress) Done() bool {
	return p.Status == AggregationStatusCompleted || p.Status == AggregationStatusFailed
}
