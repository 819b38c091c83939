package request

import "strings"

// SubmitAggregationRequest is the quote form submission.
//
// Payload carries the normalized applicant/vehicle data and is forwarded to
// every provider as-is.
type SubmitAggregationRequest struct {
	Category string         `json:"category" binding:"required"`
	Payload  map[string]any `json:"payload"`
}

func (r SubmitAggregationRequest) ResolveCategory() string {
	return strings.ToLower(strings.TrimSpace(r.Category))
}

// ResolveAccessToken prefers the X-Access-Token header over the
// access_token query parameter.
func ResolveAccessToken(header, query string) string {
	if v := strings.TrimSpace(header); v != "" {
		return v
	}
	return strings.TrimSpace(query)
}
