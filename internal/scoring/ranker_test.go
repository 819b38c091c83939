package scoring

import (
	"sort"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"insurance_quotes/internal/domain/entities"
)

func TestRank_TieBreak(t *testing.T) {
	t0 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	in := []entities.ScoredQuote{
		{QuoteResponse: entities.QuoteResponse{ProviderCode: "zeta", Price: 1000, ReceivedAt: t0}, WeightedScore: 70},
		{QuoteResponse: entities.QuoteResponse{ProviderCode: "alpha", Price: 1000, ReceivedAt: t0}, WeightedScore: 70},
		{QuoteResponse: entities.QuoteResponse{ProviderCode: "late", Price: 1000, ReceivedAt: t0.Add(time.Second)}, WeightedScore: 70},
		{QuoteResponse: entities.QuoteResponse{ProviderCode: "cheap", Price: 900, ReceivedAt: t0.Add(time.Minute)}, WeightedScore: 70},
		{QuoteResponse: entities.QuoteResponse{ProviderCode: "best", Price: 5000, ReceivedAt: t0}, WeightedScore: 90},
	}

	out := Rank(in)

	want := []string{"best", "cheap", "alpha", "zeta", "late"}
	for i, code := range want {
		if out[i].ProviderCode != code || out[i].Rank != i+1 {
			t.Fatalf("position %d: expected %s rank %d, got %s rank %d", i, code, i+1, out[i].ProviderCode, out[i].Rank)
		}
	}
	if in[0].Rank != 0 {
		t.Fatalf("input must not be mutated")
	}
}

func TestRank_DeterministicAcrossInputOrder(t *testing.T) {
	quotes := []entities.QuoteResponse{
		{ProviderCode: "a", Price: 1200},
		{ProviderCode: "b", Price: 1200},
		{ProviderCode: "c", Price: 900},
	}
	reversed := []entities.QuoteResponse{quotes[2], quotes[1], quotes[0]}

	x := ScoreAndRank(quotes, nil)
	y := ScoreAndRank(reversed, nil)
	for i := range x {
		if x[i].ProviderCode != y[i].ProviderCode {
			t.Fatalf("order depends on input: %s vs %s at %d", x[i].ProviderCode, y[i].ProviderCode, i)
		}
	}
}

// TestScoring_PropertyBased checks the ranking invariants over random
// batches of positive prices.
func TestScoring_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	toQuotes := func(prices []float64) []entities.QuoteResponse {
		quotes := make([]entities.QuoteResponse, len(prices))
		for i, p := range prices {
			quotes[i] = entities.QuoteResponse{ProviderCode: string(rune('a' + i%26)) + string(rune('a'+i/26)), Price: p}
		}
		return quotes
	}
	priceGen := gen.SliceOf(gen.Float64Range(1, 1_000_000))

	properties.Property("cheapest scores 100 and dearest scores 0 unless flat", prop.ForAll(
		func(prices []float64) bool {
			if len(prices) == 0 {
				return true
			}
			scored := Score(toQuotes(prices), nil)
			lo, hi := prices[0], prices[0]
			for _, p := range prices {
				if p < lo {
					lo = p
				}
				if p > hi {
					hi = p
				}
			}
			for _, sq := range scored {
				if lo == hi {
					if sq.PriceScore != 100 {
						return false
					}
					continue
				}
				if sq.Price == lo && sq.PriceScore != 100 {
					return false
				}
				if sq.Price == hi && sq.PriceScore != 0 {
					return false
				}
			}
			return true
		},
		priceGen,
	))

	properties.Property("all scores stay within [0,100]", prop.ForAll(
		func(prices []float64) bool {
			for _, sq := range Score(toQuotes(prices), nil) {
				for _, v := range []int{sq.PriceScore, sq.CoverageScore, sq.RatingScore, sq.SpeedScore, sq.WeightedScore, sq.TotalScore} {
					if v < 0 || v > 100 {
						return false
					}
				}
			}
			return true
		},
		priceGen,
	))

	properties.Property("weighted score is monotonic in price score", prop.ForAll(
		func(p, c, r, s int) bool {
			if p == 100 {
				return true
			}
			return WeightedScore(p+1, c, r, s) >= WeightedScore(p, c, r, s)
		},
		gen.IntRange(0, 100), gen.IntRange(0, 100), gen.IntRange(0, 100), gen.IntRange(0, 100),
	))

	properties.Property("rank is a sorted permutation with ranks 1..N", prop.ForAll(
		func(prices []float64) bool {
			quotes := toQuotes(prices)
			ranked := ScoreAndRank(quotes, nil)
			if len(ranked) != len(quotes) {
				return false
			}
			seen := map[string]bool{}
			for i, sq := range ranked {
				if sq.Rank != i+1 || seen[sq.ProviderCode] {
					return false
				}
				seen[sq.ProviderCode] = true
				if i > 0 && ranked[i-1].WeightedScore < sq.WeightedScore {
					return false
				}
			}
			codes := make([]string, 0, len(quotes))
			for _, q := range quotes {
				codes = append(codes, q.ProviderCode)
			}
			sort.Strings(codes)
			for _, c := range codes {
				if !seen[c] {
					return false
				}
			}
			return true
		},
		priceGen,
	))

	properties.TestingRun(t)
}
