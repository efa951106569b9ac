package main

import (
	"fmt"

	"github.com/DjordjeVuckovic/trial-score/internal/apperr"
	"github.com/DjordjeVuckovic/trial-score/internal/evalspec"
	"github.com/urfave/cli/v3"
)

const (
	specFlag   = "spec"
	kFlag      = "k"
	depthFlag  = "depth"
	modeFlag   = "mode"
	rankedFlag = "ranked"
	jsonFlag   = "json"
	formatFlag = "format"
	debugFlag  = "debug"
)

// newFlags builds fresh flag instances; cli keeps parsed values on the flag,
// so a flag must not be shared between commands.
func newFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  specFlag,
			Usage: "Path to an evaluation spec YAML",
		},
		&cli.IntSliceFlag{
			Name:  kFlag,
			Usage: "K values for precision@K, comma-separated (default: 1,2,3,5)",
		},
		&cli.IntFlag{
			Name:  depthFlag,
			Usage: "Models kept per segment in the ranked list (default: 5)",
		},
		&cli.StringFlag{
			Name:  modeFlag,
			Usage: "Metric to compute [segment, model, both]",
		},
		&cli.StringFlag{
			Name:  rankedFlag,
			Usage: fmt.Sprintf("Ranked list output path (default: %s)", evalspec.DefaultRankedPath),
		},
		&cli.StringFlag{
			Name:  jsonFlag,
			Usage: "Also write the full report as JSON to this path",
		},
		&cli.StringFlag{
			Name:  formatFlag,
			Usage: "Report format on stdout [text, table]",
		},
		&cli.BoolFlag{
			Name:  debugFlag,
			Usage: "Prints verbose logs",
		},
	}
}

// resolveSpec layers defaults, the optional spec file and explicitly set
// flags, lowest precedence first.
func resolveSpec(cmd *cli.Command) (*evalspec.EvalSpec, error) {
	es := evalspec.Default()
	if path := cmd.String(specFlag); path != "" {
		loaded, err := evalspec.LoadFromFile(path)
		if err != nil {
			return nil, apperr.NewValidationWrap("load eval spec", err)
		}
		es = loaded
	}

	if cmd.IsSet(kFlag) {
		es.Metrics.KValues = cmd.IntSlice(kFlag)
	}
	if cmd.IsSet(depthFlag) {
		es.Metrics.RankedDepth = cmd.Int(depthFlag)
	}
	if cmd.IsSet(modeFlag) {
		mode, err := evalspec.ParseMode(cmd.String(modeFlag))
		if err != nil {
			return nil, apperr.NewValidationWrap("invalid --mode", err)
		}
		es.Mode = mode
	}
	if cmd.IsSet(rankedFlag) {
		es.Output.Ranked = cmd.String(rankedFlag)
	}
	if cmd.IsSet(jsonFlag) {
		es.Output.JSON = cmd.String(jsonFlag)
	}
	if cmd.IsSet(formatFlag) {
		es.Output.Format = cmd.String(formatFlag)
	}

	if err := evalspec.Validate(es); err != nil {
		return nil, apperr.NewValidationWrap("invalid evaluation settings", err)
	}
	return es, nil
}
