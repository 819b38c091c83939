package response

import (
	"encoding/json"
	"time"

	"insurance_quotes/internal/domain/entities"
	"insurance_quotes/internal/usecase"
)

type SubmitAggregationResponse struct {
	AggregationRequestID string   `json:"aggregation_request_id"`
	AccessToken          string   `json:"access_token"`
	Status               string   `json:"status"`
	DispatchedProviders  []string `json:"dispatched_providers"`
}

func FromAggregationRequest(r entities.AggregationRequest) SubmitAggregationResponse {
	dispatched := r.DispatchedProviders
	if dispatched == nil {
		dispatched = []string{}
	}
	return SubmitAggregationResponse{
		AggregationRequestID: r.ID,
		AccessToken:          r.AccessToken,
		Status:               string(r.Status),
		DispatchedProviders:  dispatched,
	}
}

type DispatchResponse struct {
	Success         bool            `json:"success"`
	Price           float64         `json:"price,omitempty"`
	Currency        string          `json:"currency,omitempty"`
	CoverageDetails map[string]any  `json:"coverage_details,omitempty"`
	RawPayload      json.RawMessage `json:"raw_payload,omitempty"`
	DurationMs      int64           `json:"duration_ms"`
	Error           string          `json:"error,omitempty"`
}

func FromDispatchResult(r usecase.DispatchResult) DispatchResponse {
	res := DispatchResponse{
		Success:         r.Success,
		Price:           r.Price,
		Currency:        r.Currency,
		CoverageDetails: r.CoverageDetails,
		DurationMs:      r.DurationMs,
		Error:           r.Error,
	}
	if len(r.RawPayload) > 0 && json.Valid(r.RawPayload) {
		res.RawPayload = json.RawMessage(r.RawPayload)
	}
	return res
}

type ProgressResponse struct {
	AggregationRequestID string `json:"aggregation_request_id"`
	Dispatched           int    `json:"dispatched"`
	Settled              int    `json:"settled"`
	Succeeded            int    `json:"succeeded"`
	Status               string `json:"status"`
	Done                 bool   `json:"done"`
}

func FromProgress(p entities.Progress) ProgressResponse {
	return ProgressResponse{
		AggregationRequestID: p.AggregationRequestID,
		Dispatched:           p.Dispatched,
		Settled:              p.Settled,
		Succeeded:            p.Succeeded,
		Status:               string(p.Status),
		Done:                 p.Done(),
	}
}

type ScoresResponse struct {
	Price    int `json:"price"`
	Coverage int `json:"coverage"`
	Rating   int `json:"rating"`
	Speed    int `json:"speed"`
	Weighted int `json:"weighted"`
	Total    int `json:"total"`
}

type ScoredQuoteResponse struct {
	Rank            int                      `json:"rank"`
	ProviderCode    string                   `json:"provider_code"`
	ProviderName    string                   `json:"provider_name"`
	Price           float64                  `json:"price"`
	Currency        string                   `json:"currency"`
	CoverageDetails map[string]any           `json:"coverage_details,omitempty"`
	Breakdown       *entities.PriceBreakdown `json:"breakdown,omitempty"`
	Scores          ScoresResponse           `json:"scores"`
	ReceivedAt      time.Time                `json:"received_at"`
}

// FromScoredQuotes keeps the ranking order and never returns nil, so an
// all-failed request serializes as [].
func FromScoredQuotes(quotes []entities.ScoredQuote) []ScoredQuoteResponse {
	out := make([]ScoredQuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, ScoredQuoteResponse{
			Rank:            q.Rank,
			ProviderCode:    q.ProviderCode,
			ProviderName:    q.ProviderName,
			Price:           q.Price,
			Currency:        q.Currency,
			CoverageDetails: q.CoverageDetails,
			Breakdown:       q.Breakdown,
			Scores: ScoresResponse{
				Price:    q.PriceScore,
				Coverage: q.CoverageScore,
				Rating:   q.RatingScore,
				Speed:    q.SpeedScore,
				Weighted: q.WeightedScore,
				Total:    q.TotalScore,
			},
			ReceivedAt: q.ReceivedAt,
		})
	}
	return out
}

type ProviderResponse struct {
	Code       string   `json:"code"`
	Name       string   `json:"name"`
	Categories []string `json:"categories"`
	Rating     *float64 `json:"rating,omitempty"`
	Enabled    bool     `json:"enabled"`
}

func FromProviderProfiles(profiles []entities.ProviderProfile) []ProviderResponse {
	out := make([]ProviderResponse, 0, len(profiles))
	for _, p := range profiles {
		categories := p.Categories
		if categories == nil {
			categories = []string{}
		}
		out = append(out, ProviderResponse{
			Code:       p.Code,
			Name:       p.Name,
			Categories: categories,
			Rating:     p.Rating,
			Enabled:    p.Enabled,
		})
	}
	return out
}
