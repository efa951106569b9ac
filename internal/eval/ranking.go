package eval

import (
	"slices"

	"github.com/DjordjeVuckovic/trial-score/internal/score"
)

// RankedList is a segment's candidate models ordered by descending score.
// Equal scores keep the matrix column order; absent cells are not candidates.
type RankedList struct {
	Segment string   `json:"segment"`
	Models  []string `json:"models"`
}

// Top returns at most n leading entries.
func (r RankedList) Top(n int) []string {
	return r.Models[:min(n, len(r.Models))]
}

// Contains reports whether model is among the first k entries.
func (r RankedList) Contains(model string, k int) bool {
	return slices.Contains(r.Top(k), model)
}

type candidate struct {
	id    string
	score float64
}

// rankDesc orders candidates by score, keeping input order for ties.
func rankDesc(cands []candidate) []string {
	slices.SortStableFunc(cands, func(a, b candidate) int {
		switch {
		case a.score > b.score:
			return -1
		case a.score < b.score:
			return 1
		}
		return 0
	})
	ids := make([]string, len(cands))
	for i, c := range cands {
		ids[i] = c.id
	}
	return ids
}

// Rank builds the ranked list for one matrix row. An unknown segment yields an
// empty list.
func Rank(m *score.Matrix, segment string) RankedList {
	rl := RankedList{Segment: segment}
	i, ok := m.SegmentIndex(segment)
	if !ok {
		return rl
	}

	models := m.Models()
	cands := make([]candidate, 0, len(models))
	for j, mdl := range models {
		if v, ok := m.At(i, j); ok {
			cands = append(cands, candidate{id: mdl, score: v})
		}
	}
	rl.Models = rankDesc(cands)
	return rl
}

// rankColumn orders the segments of one matrix column by descending score.
func rankColumn(m *score.Matrix, col int) []string {
	segments := m.Segments()
	cands := make([]candidate, 0, len(segments))
	for i, seg := range segments {
		if v, ok := m.At(i, col); ok {
			cands = append(cands, candidate{id: seg, score: v})
		}
	}
	return rankDesc(cands)
}
