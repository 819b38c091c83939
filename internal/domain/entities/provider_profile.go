package entities

// ProviderProfile is the read-only, externally maintained description of an
// insurer: display data, historical quality signals and the enabled flag.
//
// The historical fields are optional. A nil value means "unknown" and is
// scored with a neutral default instead of zero.
type ProviderProfile struct {
	Code          string   `json:"code" yaml:"code"`
	Name          string   `json:"name" yaml:"name"`
	Variant       string   `json:"variant" yaml:"variant"`
	Categories    []string `json:"categories" yaml:"categories"`
	Rating        *float64 `json:"rating,omitempty" yaml:"rating"`
	CoverageScore *float64 `json:"coverage_score,omitempty" yaml:"coverageScore"`
	AvgResponseMs *int64   `json:"avg_response_ms,omitempty" yaml:"avgResponseMs"`
	Enabled       bool     `json:"enabled" yaml:"enabled"`
}

// Supports reports whether the provider quotes the given category. An empty
// category list means every category.
func (p ProviderProfile) Supports(category string) bool {
	if len(p.Categories) == 0 {
		return true
	}
	for _, c := range p.Categories {
		if c == category {
			return true
		}
	}
	return false
}
