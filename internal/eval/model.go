package eval

import (
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/trial-score/internal/apperr"
	"github.com/DjordjeVuckovic/trial-score/internal/score"
)

// ModelResult is the model-centric precision: each model column ranks the
// segments, and a hit is a top-K segment whose key model is that column.
// It is a different metric from Result and is reported separately.
type ModelResult struct {
	// Population counts key entries whose model is a score column.
	Population int
	Models     int
	KValues    []int
	Correct    map[int]int
	Precision  map[int]float64
}

// EvaluateModels computes the model-centric metric. Key entries whose model
// has no score column are excluded; entries whose segment has no score row
// stay in the population but can never be hit.
func (e *Evaluator) EvaluateModels(key *Key, m *score.Matrix) (*ModelResult, error) {
	_, cols := m.Dims()
	res := &ModelResult{
		Models:    cols,
		KValues:   e.config.KValues,
		Correct:   make(map[int]int, len(e.config.KValues)),
		Precision: make(map[int]float64, len(e.config.KValues)),
	}

	for _, seg := range key.segments {
		if _, ok := m.ModelIndex(key.models[seg]); ok {
			res.Population++
		}
	}
	slog.Debug("Model-centric population", "models", cols, "key_entries", key.Len(), "valid", res.Population)
	if res.Population == 0 {
		return nil, fmt.Errorf("model-centric evaluation: %w", apperr.ErrEmptyPopulation)
	}

	maxK := e.config.KValues[len(e.config.KValues)-1]
	for j, mdl := range m.Models() {
		ranked := rankColumn(m, j)
		for pos, seg := range ranked[:min(maxK, len(ranked))] {
			if target, ok := key.Model(seg); !ok || target != mdl {
				continue
			}
			for _, k := range e.config.KValues {
				if pos < k {
					res.Correct[k]++
				}
			}
		}
	}

	n := float64(res.Population)
	for _, k := range e.config.KValues {
		res.Precision[k] = float64(res.Correct[k]) / n
	}
	return res, nil
}
