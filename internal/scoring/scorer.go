// Package scoring turns the successful quotes of one aggregation request into
// an explainable ranking. Everything here is pure: no I/O, no clock, no
// shared state.
package scoring

import (
	"math"
	"strconv"
	"strings"

	"insurance_quotes/internal/domain/entities"
)

// NeutralScore is used whenever a signal is unknown.
const NeutralScore = 50

// Weights are expressed in tenths so the composite can be computed with
// integer arithmetic: 4/10 price, 3/10 coverage, 2/10 rating, 1/10 speed.
const (
	weightPrice    = 4
	weightCoverage = 3
	weightRating   = 2
	weightSpeed    = 1
)

const (
	coverageStructuredBonus = 20
	tier100k                = 100_000
	tier500k                = 500_000
	tier1M                  = 1_000_000
)

var coverageLimitKeys = []string{"limit", "coverageLimit", "maxPayout"}

// PriceScore normalizes price against the batch bounds: the cheapest quote
// scores 100 and the most expensive 0. A flat batch scores 100 everywhere.
func PriceScore(price, lo, hi float64) int {
	if hi <= lo {
		return 100
	}
	return clamp(int(math.Round(100 * (hi - price) / (hi - lo))))
}

// CoverageScore prefers the provider's historical coverage score and falls
// back to a heuristic over the quote's coverage details.
func CoverageScore(profile *entities.ProviderProfile, details map[string]any) int {
	if profile != nil && profile.CoverageScore != nil && !math.IsNaN(*profile.CoverageScore) {
		return clamp(int(math.Round(*profile.CoverageScore)))
	}
	if len(details) == 0 {
		return NeutralScore
	}

	score := NeutralScore + coverageStructuredBonus
	limit := declaredLimit(details)
	switch {
	case limit >= tier1M:
		score += 30
	case limit >= tier500k:
		score += 20
	case limit >= tier100k:
		score += 10
	}
	return clamp(score)
}

func RatingScore(rating *float64) int {
	if rating == nil || math.IsNaN(*rating) {
		return NeutralScore
	}
	return clamp(int(math.Round(*rating / 5 * 100)))
}

func SpeedScore(avgResponseMs *int64) int {
	if avgResponseMs == nil {
		return NeutralScore
	}
	ms := *avgResponseMs
	switch {
	case ms < 1000:
		return 100
	case ms < 2000:
		return 80
	case ms < 3000:
		return 60
	case ms < 5000:
		return 40
	default:
		return 20
	}
}

// WeightedScore is the ranking key: round(0.4p + 0.3c + 0.2r + 0.1s).
func WeightedScore(price, coverage, rating, speed int) int {
	sum := weightPrice*price + weightCoverage*coverage + weightRating*rating + weightSpeed*speed
	return clamp(roundDiv(sum, 10))
}

// TotalScore is the plain mean of the four sub-scores, for display only.
func TotalScore(price, coverage, rating, speed int) int {
	return clamp(roundDiv(price+coverage+rating+speed, 4))
}

// Score computes the sub-scores of every quote in the batch. Profiles are
// keyed by provider code; a missing profile means every historical signal is
// unknown. The result is in input order and unranked.
func Score(quotes []entities.QuoteResponse, profiles map[string]entities.ProviderProfile) []entities.ScoredQuote {
	if len(quotes) == 0 {
		return []entities.ScoredQuote{}
	}

	lo, hi := quotes[0].Price, quotes[0].Price
	for _, q := range quotes[1:] {
		lo = math.Min(lo, q.Price)
		hi = math.Max(hi, q.Price)
	}

	out := make([]entities.ScoredQuote, 0, len(quotes))
	for _, q := range quotes {
		var profile *entities.ProviderProfile
		name := q.ProviderCode
		if p, ok := profiles[q.ProviderCode]; ok {
			profile = &p
			if p.Name != "" {
				name = p.Name
			}
		}

		sq := entities.ScoredQuote{QuoteResponse: q, ProviderName: name}
		sq.PriceScore = PriceScore(q.Price, lo, hi)
		sq.CoverageScore = CoverageScore(profile, q.CoverageDetails)
		if profile != nil {
			sq.RatingScore = RatingScore(profile.Rating)
			sq.SpeedScore = SpeedScore(profile.AvgResponseMs)
		} else {
			sq.RatingScore = NeutralScore
			sq.SpeedScore = NeutralScore
		}
		sq.WeightedScore = WeightedScore(sq.PriceScore, sq.CoverageScore, sq.RatingScore, sq.SpeedScore)
		sq.TotalScore = TotalScore(sq.PriceScore, sq.CoverageScore, sq.RatingScore, sq.SpeedScore)
		out = append(out, sq)
	}
	return out
}

// ScoreAndRank is Score followed by Rank.
func ScoreAndRank(quotes []entities.QuoteResponse, profiles map[string]entities.ProviderProfile) []entities.ScoredQuote {
	return Rank(Score(quotes, profiles))
}

// declaredLimit returns the largest payout limit found under the known keys,
// at the top level or one map below it.
func declaredLimit(details map[string]any) float64 {
	best := lookupLimit(details)
	for _, v := range details {
		if nested, ok := v.(map[string]any); ok {
			best = math.Max(best, lookupLimit(nested))
		}
	}
	return best
}

func lookupLimit(m map[string]any) float64 {
	best := 0.0
	for _, key := range coverageLimitKeys {
		if v, ok := toFloat(m[key]); ok {
			best = math.Max(best, v)
		}
	}
	return best
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n)
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(n), "_", ""), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// roundDiv rounds num/den half up; both operands are non-negative here.
func roundDiv(num, den int) int {
	if num < 0 {
		return -roundDiv(-num, den)
	}
	return (2*num + den) / (2 * den)
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
