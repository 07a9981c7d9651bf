package match

import (
	"cmp"
	"slices"
)

// MinSimilarity is the score below which a candidate is never suggested.
const MinSimilarity = 0.6

// Suggest returns up to limit candidates similar to name, best first. Ties
// keep the candidates' order.
func Suggest(name string, candidates []string, limit int) []string {
	type scored struct {
		name  string
		score float64
	}

	var hits []scored

	for _, c := range candidates {
		if c == name {
			continue
		}

		if s := Similarity(name, c); s >= MinSimilarity {
			hits = append(hits, scored{name: c, score: s})
		}
	}

	slices.SortStableFunc(hits, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})

	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}

	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.name)
	}

	return out
}
