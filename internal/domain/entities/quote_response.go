package entities

import (
	"encoding/json"
	"time"
)

// QuoteResponse is a successful price quote from one provider for one request.
//
// Storage model (DynamoDB):
//   - PK: aggregation_request_id
//   - SK: provider_code
//
// RawPayload keeps the provider body as received for audit. Breakdown is only
// present when the provider supports enrichment and it succeeded.
type QuoteResponse struct {
	AggregationRequestID string          `json:"aggregation_request_id"`
	ProviderCode         string          `json:"provider_code"`
	Price                float64         `json:"price"`
	Currency             string          `json:"currency"`
	CoverageDetails      map[string]any  `json:"coverage_details,omitempty"`
	RawPayload           json.RawMessage `json:"raw_payload,omitempty"`
	Breakdown            *PriceBreakdown `json:"breakdown,omitempty"`
	ReceivedAt           time.Time       `json:"received_at"`
}

// PriceBreakdown is the detailed pricing/risk/commission derivation produced
// by enrichment.
type PriceBreakdown struct {
	NetPremium     float64 `json:"net_premium"`
	Taxes          float64 `json:"taxes"`
	Commission     float64 `json:"commission"`
	CommissionRate float64 `json:"commission_rate"`
	RiskScore      float64 `json:"risk_score"`
	RiskBand       string  `json:"risk_band"`
}
