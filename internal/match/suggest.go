package match

import (
	"cmp"
	"slices"
)

// MinScore is the similarity below which Suggest stays silent.
const MinScore = 0.5

// Candidate is a known name scored against an unknown one.
type Candidate struct {
	Name  string
	Score float64
}

// Rank scores every candidate against name and orders them best first.
// Names are compared both verbatim and normalized; the better score counts.
func Rank(name string, candidates []string) []Candidate {
	norm := Normalize(name)
	out := make([]Candidate, 0, len(candidates))

	for _, c := range candidates {
		score := max(Similarity(name, c), Similarity(norm, Normalize(c)))
		out = append(out, Candidate{Name: c, Score: score})
	}

	slices.SortStableFunc(out, func(a, b Candidate) int {
		if a.Score != b.Score {
			return cmp.Compare(b.Score, a.Score)
		}

		return cmp.Compare(a.Name, b.Name)
	})

	return out
}

// Suggest returns the candidate closest to name, if any is at least MinScore
// similar.
func Suggest(name string, candidates []string) (string, bool) {
	ranked := Rank(name, candidates)
	if len(ranked) == 0 || ranked[0].Score < MinScore {
		return "", false
	}

	return ranked[0].Name, true
}

// Top returns at most n candidates scoring at least MinScore.
func Top(name string, candidates []string, n int) []string {
	var out []string

	for _, c := range Rank(name, candidates) {
		if len(out) == n || c.Score < MinScore {
			break
		}

		out = append(out, c.Name)
	}

	return out
}
