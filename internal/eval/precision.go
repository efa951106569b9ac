package eval

import (
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/trial-score/internal/apperr"
	"github.com/DjordjeVuckovic/trial-score/internal/score"
)

// Result is the segment-centric top-N precision of a key against a score matrix.
type Result struct {
	Population *Population
	KValues    []int
	Correct    map[int]int
	Precision  map[int]float64
	// Ranked holds the top RankedDepth models of every valid segment.
	Ranked []RankedList
}

type Evaluator struct {
	config Config
}

func New(cfg Config) (*Evaluator, error) {
	c, err := cfg.normalize()
	if err != nil {
		return nil, apperr.NewValidationWrap("invalid evaluation config", err)
	}
	return &Evaluator{config: c}, nil
}

func (e *Evaluator) Config() Config { return e.config }

// Evaluate ranks the models of every valid segment and counts the segments
// whose key model is within the first K entries. Segments outside the
// population never touch a numerator or denominator.
func (e *Evaluator) Evaluate(key *Key, m *score.Matrix) (*Result, error) {
	pop := Filter(key, m)
	slog.Debug("Population filtered",
		"models", pop.Models,
		"key_segments", pop.KeySegments,
		"score_segments", pop.ScoreSegments,
		"valid", pop.Size(),
		"missing_scores", pop.MissingScores,
		"unknown_model", pop.UnknownModel,
		"unkeyed", pop.Unkeyed,
	)
	if pop.Size() == 0 {
		return nil, fmt.Errorf("segment-centric evaluation: %w", apperr.ErrEmptyPopulation)
	}

	res := &Result{
		Population: pop,
		KValues:    e.config.KValues,
		Correct:    make(map[int]int, len(e.config.KValues)),
		Precision:  make(map[int]float64, len(e.config.KValues)),
		Ranked:     make([]RankedList, 0, pop.Size()),
	}

	for _, seg := range pop.Valid {
		target, _ := key.Model(seg)
		rl := Rank(m, seg)
		for _, k := range e.config.KValues {
			if rl.Contains(target, k) {
				res.Correct[k]++
			}
		}
		res.Ranked = append(res.Ranked, RankedList{Segment: seg, Models: rl.Top(e.config.RankedDepth)})
	}

	n := float64(pop.Size())
	for _, k := range e.config.KValues {
		res.Precision[k] = float64(res.Correct[k]) / n
	}
	return res, nil
}
