package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/trial-score/internal/apperr"
	"github.com/DjordjeVuckovic/trial-score/internal/eval"
	"github.com/DjordjeVuckovic/trial-score/internal/evalspec"
	"github.com/DjordjeVuckovic/trial-score/internal/report"
	"github.com/DjordjeVuckovic/trial-score/internal/score"
)

const (
	MetricSegment = "segment"
	MetricModel   = "model"
)

// Observer receives per-evaluation measurements. *metrics.Recorder satisfies it.
type Observer interface {
	ObserveEvaluation(metric string, population int, precision map[int]float64, took time.Duration)
	ObserveFailure(operation, kind string)
}

type nopObserver struct{}

func (nopObserver) ObserveEvaluation(string, int, map[int]float64, time.Duration) {}
func (nopObserver) ObserveFailure(string, string)                                {}

type Option func(*Runner)

func WithObserver(o Observer) Option {
	return func(r *Runner) {
		if o != nil {
			r.observer = o
		}
	}
}

type Runner struct {
	evaluator *eval.Evaluator
	mode      evalspec.Mode
	observer  Observer
}

func New(cfg eval.Config, mode evalspec.Mode, opts ...Option) (*Runner, error) {
	e, err := eval.New(cfg)
	if err != nil {
		return nil, err
	}
	if mode == "" {
		mode = evalspec.ModeSegment
	}
	r := &Runner{evaluator: e, mode: mode, observer: nopObserver{}}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func (r *Runner) Config() eval.Config { return r.evaluator.Config() }

// Run evaluates key against m with every metric the mode selects and
// assembles the report. Any metric failure fails the run.
func (r *Runner) Run(ctx context.Context, meta report.Meta, key *eval.Key, m *score.Matrix) (*report.Report, error) {
	var (
		seg *eval.Result
		mdl *eval.ModelResult
	)

	if r.mode.Segment() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()
		res, err := r.evaluator.Evaluate(key, m)
		if err != nil {
			r.observer.ObserveFailure("evaluate", apperr.Kind(err))
			return nil, err
		}
		r.observer.ObserveEvaluation(MetricSegment, res.Population.Size(), res.Precision, time.Since(start))
		seg = res
	}

	if r.mode.Model() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()
		res, err := r.evaluator.EvaluateModels(key, m)
		if err != nil {
			r.observer.ObserveFailure("evaluate", apperr.Kind(err))
			return nil, err
		}
		r.observer.ObserveEvaluation(MetricModel, res.Population, res.Precision, time.Since(start))
		mdl = res
	}

	if seg == nil && mdl == nil {
		return nil, fmt.Errorf("mode %q selects no metric", r.mode)
	}

	slog.Info("Evaluation completed", "mode", r.mode, "models", len(m.Models()), "key_segments", key.Len())
	return report.Generate(meta, r.evaluator.Config(), seg, mdl), nil
}
