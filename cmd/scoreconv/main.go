package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/trial-score/internal/apperr"
	"github.com/DjordjeVuckovic/trial-score/internal/trialio"
	"github.com/urfave/cli/v3"
)

var version = "v0.0.1-default"

const (
	imatFlag     = "imat"
	omatFlag     = "omat"
	decimalsFlag = "decimals"
	debugFlag    = "debug"
)

func main() {
	initLogging(false)

	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		slog.Error("Conversion failed", "error", err, "kind", apperr.Kind(err))
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "scoreconv",
		Usage:     "Convert trial scores between triple and matrix form",
		Version:   version,
		ArgsUsage: "INPUT OUTPUT",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  imatFlag,
				Usage: "Input is a pipe-delimited score matrix (default: triples)",
			},
			&cli.BoolFlag{
				Name:  omatFlag,
				Usage: "Write a pipe-delimited score matrix (default: triples)",
			},
			&cli.IntFlag{
				Name:  decimalsFlag,
				Usage: "Decimal places for matrix cells",
				Value: trialio.DefaultDecimals,
			},
			&cli.BoolFlag{
				Name:  debugFlag,
				Usage: "Prints verbose logs",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool(debugFlag) {
				initLogging(true)
			}
			return ctx, nil
		},
		Action: runConvert,
	}
}

func runConvert(_ context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 2 {
		return apperr.NewValidation(fmt.Sprintf("expected INPUT and OUTPUT arguments, got %d", cmd.NArg()))
	}
	input, output := cmd.Args().Get(0), cmd.Args().Get(1)

	from, to := trialio.FormatTriple, trialio.FormatTriple
	if cmd.Bool(imatFlag) {
		from = trialio.FormatMatrix
	}
	if cmd.Bool(omatFlag) {
		to = trialio.FormatMatrix
	}

	decimals := cmd.Int(decimalsFlag)
	if decimals < 0 {
		return apperr.NewValidation(fmt.Sprintf("decimals must not be negative, got %d", decimals))
	}

	in, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	// Buffer the output so a failed conversion never leaves a partial file.
	var out bytes.Buffer
	s, err := trialio.Convert(in, &out, from, to, decimals)
	if err != nil {
		return fmt.Errorf("convert %s: %w", input, err)
	}
	if err := os.WriteFile(output, out.Bytes(), 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	slog.Info("Scores converted",
		"from", from,
		"to", to,
		"entries", s.Len(),
		"models", len(s.Models()),
		"segments", len(s.Segments()),
		"output", output,
	)
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
