package eval

import "github.com/DjordjeVuckovic/trial-score/internal/score"

// Population is the audited set of segments an evaluation runs over, together
// with counts of everything left out.
type Population struct {
	KeySegments   int `json:"key_segments"`
	ScoreSegments int `json:"score_segments"`
	Models        int `json:"models"`

	// Valid lists segments in both the key and the score rows whose key model
	// is a score column, in score row order.
	Valid []string `json:"valid"`

	// MissingScores counts key segments with no score row.
	MissingScores int `json:"missing_scores"`
	// UnknownModel counts key segments whose model is not a score column.
	UnknownModel int `json:"unknown_model"`
	// Unkeyed counts score rows with no key entry.
	Unkeyed int `json:"unkeyed"`
}

func (p *Population) Size() int { return len(p.Valid) }

// Filter intersects the key with the matrix rows and columns.
func Filter(key *Key, m *score.Matrix) *Population {
	rows, cols := m.Dims()
	p := &Population{
		KeySegments:   key.Len(),
		ScoreSegments: rows,
		Models:        cols,
	}

	for _, seg := range key.segments {
		mdl := key.models[seg]
		_, hasRow := m.SegmentIndex(seg)
		_, hasCol := m.ModelIndex(mdl)
		switch {
		case !hasCol:
			p.UnknownModel++
		case !hasRow:
			p.MissingScores++
		}
	}

	for _, seg := range m.Segments() {
		mdl, ok := key.Model(seg)
		if !ok {
			p.Unkeyed++
			continue
		}
		if _, ok := m.ModelIndex(mdl); ok {
			p.Valid = append(p.Valid, seg)
		}
	}
	return p
}
