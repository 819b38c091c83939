package scoring

import (
	"sort"

	"insurance_quotes/internal/domain/entities"
)

// Rank orders scored quotes by WeightedScore descending and assigns ranks
// 1..N. Equal weighted scores are broken by lower price, then earlier
// ReceivedAt, then provider code, so the order never depends on input order.
// The input slice is not modified.
func Rank(scored []entities.ScoredQuote) []entities.ScoredQuote {
	out := make([]entities.ScoredQuote, len(scored))
	copy(out, scored)

	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j])
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

func less(a, b entities.ScoredQuote) bool {
	if a.WeightedScore != b.WeightedScore {
		return a.WeightedScore > b.WeightedScore
	}
	if a.Price != b.Price {
		return a.Price < b.Price
	}
	if !a.ReceivedAt.Equal(b.ReceivedAt) {
		return a.ReceivedAt.Before(b.ReceivedAt)
	}
	return a.ProviderCode < b.ProviderCode
}
