package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/trial-score/internal/apperr"
	"github.com/DjordjeVuckovic/trial-score/internal/eval"
	"github.com/DjordjeVuckovic/trial-score/internal/evalspec"
	"github.com/DjordjeVuckovic/trial-score/internal/report"
	"github.com/DjordjeVuckovic/trial-score/internal/runner"
	"github.com/DjordjeVuckovic/trial-score/internal/score"
	"github.com/DjordjeVuckovic/trial-score/internal/trialio"
	"github.com/urfave/cli/v3"
)

var version = "v0.0.1-default"

func main() {
	initLogging(false)

	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		slog.Error("Evaluation failed", "error", err, "kind", apperr.Kind(err))
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "topn_eval",
		Usage:     "Top-N precision of trial scores against a key",
		Version:   version,
		ArgsUsage: "KEY SCORE",
		Flags:     newFlags(),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool(debugFlag) {
				initLogging(true)
			}
			return ctx, nil
		},
		Action: runEval,
	}
}

func runEval(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 2 {
		return apperr.NewValidation(fmt.Sprintf("expected KEY and SCORE arguments, got %d", cmd.NArg()))
	}
	keyPath, scorePath := cmd.Args().Get(0), cmd.Args().Get(1)

	es, err := resolveSpec(cmd)
	if err != nil {
		return err
	}

	key, err := loadKey(keyPath)
	if err != nil {
		return err
	}
	m, err := loadScores(scorePath)
	if err != nil {
		return err
	}
	slog.Info("Inputs loaded",
		"mdl_num", len(m.Models()),
		"key_seg_num", key.Len(),
		"score_seg_num", len(m.Segments()),
	)

	r, err := runner.New(eval.Config{
		KValues:     es.Metrics.KValues,
		RankedDepth: es.Metrics.RankedDepth,
	}, es.Mode)
	if err != nil {
		return err
	}

	rpt, err := r.Run(ctx, report.Meta{
		Version:   version,
		KeyPath:   keyPath,
		ScorePath: scorePath,
	}, key, m)
	if err != nil {
		return err
	}

	return outputReport(cmd.Writer, rpt, es)
}

func loadKey(path string) (*eval.Key, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open key: %w", err)
	}
	defer f.Close()

	key, err := trialio.ReadKey(f)
	if err != nil {
		return nil, fmt.Errorf("read key %s: %w", path, err)
	}
	return key, nil
}

func loadScores(path string) (*score.Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scores: %w", err)
	}
	defer f.Close()

	m, err := trialio.LoadMatrix(f)
	if err != nil {
		return nil, fmt.Errorf("read scores %s: %w", path, err)
	}
	return m, nil
}

func outputReport(w io.Writer, rpt *report.Report, es *evalspec.EvalSpec) error {
	if w == nil {
		w = os.Stdout
	}

	var err error
	if es.Output.Format == "table" {
		err = report.WriteTable(rpt, w)
	} else {
		err = report.WriteText(rpt, w)
	}
	if err != nil {
		return fmt.Errorf("print report: %w", err)
	}

	if rpt.Segment != nil {
		var buf bytes.Buffer
		if err := trialio.WriteRanked(&buf, rpt.Segment.Ranked, rpt.Config.RankedDepth); err != nil {
			return err
		}
		if err := os.WriteFile(es.Output.Ranked, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("write ranked list: %w", err)
		}
		slog.Info("Ranked list written", "path", es.Output.Ranked, "segments", len(rpt.Segment.Ranked))
	}

	if es.Output.JSON != "" {
		if err := report.WriteJSON(rpt, es.Output.JSON); err != nil {
			return err
		}
		slog.Info("Report written", "path", es.Output.JSON)
	}
	return nil
}

func initLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(h))
}
