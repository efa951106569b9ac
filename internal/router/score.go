package router

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/trial-score/internal/apperr"
	"github.com/DjordjeVuckovic/trial-score/internal/eval"
	"github.com/DjordjeVuckovic/trial-score/internal/evalspec"
	"github.com/DjordjeVuckovic/trial-score/internal/report"
	"github.com/DjordjeVuckovic/trial-score/internal/runner"
	"github.com/DjordjeVuckovic/trial-score/internal/trialio"
	"github.com/DjordjeVuckovic/trial-score/pkg/metrics"
	"github.com/labstack/echo/v4"
)

type ScoreRouter struct {
	e        *echo.Echo
	recorder *metrics.Recorder
	version  string
}

type ScoreRouterOption func(*ScoreRouter)

func WithVersion(v string) ScoreRouterOption {
	return func(r *ScoreRouter) {
		r.version = v
	}
}

func NewScoreRouter(e *echo.Echo, recorder *metrics.Recorder, opts ...ScoreRouterOption) *ScoreRouter {
	r := &ScoreRouter{
		e:        e,
		recorder: recorder,
		version:  "dev",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *ScoreRouter) Bind() {
	g := r.e.Group("/v1")
	g.POST("/convert", r.convertHandler)
	g.POST("/evaluate", r.evaluateHandler)
}

// EvaluateRequest carries both artifacts inline. Scores default to the
// matrix format; KValues and Depth fall back to the evaluator defaults.
type EvaluateRequest struct {
	Key          string `json:"key"`
	Scores       string `json:"scores"`
	ScoresFormat string `json:"scores_format,omitempty"`
	Mode         string `json:"mode,omitempty"`
	KValues      []int  `json:"k_values,omitempty"`
	Depth        int    `json:"depth,omitempty"`
}

func (r *ScoreRouter) convertHandler(c echo.Context) error {
	from, err := trialio.ParseFormat(c.QueryParam("from"))
	if err != nil {
		return r.fail("convert", err)
	}
	to, err := trialio.ParseFormat(c.QueryParam("to"))
	if err != nil {
		return r.fail("convert", err)
	}

	decimals := trialio.DefaultDecimals
	if d := c.QueryParam("decimals"); d != "" {
		decimals, err = strconv.Atoi(d)
		if err != nil || decimals < 0 {
			return r.fail("convert", apperr.NewValidation(fmt.Sprintf("decimals must be a non-negative integer, got %q", d)))
		}
	}

	var out bytes.Buffer
	if _, err := trialio.Convert(c.Request().Body, &out, from, to, decimals); err != nil {
		return r.fail("convert", err)
	}
	r.recorder.ObserveConversion(string(from), string(to))

	return c.Blob(http.StatusOK, echo.MIMETextPlainCharsetUTF8, out.Bytes())
}

func (r *ScoreRouter) evaluateHandler(c echo.Context) error {
	var req EvaluateRequest
	if err := c.Bind(&req); err != nil {
		return r.fail("evaluate", apperr.NewValidationWrap("invalid request body", err))
	}
	if strings.TrimSpace(req.Key) == "" || strings.TrimSpace(req.Scores) == "" {
		return r.fail("evaluate", apperr.NewValidation("key and scores are required"))
	}

	mode, err := evalspec.ParseMode(req.Mode)
	if err != nil {
		return r.fail("evaluate", apperr.NewValidationWrap("invalid mode", err))
	}
	format := trialio.FormatMatrix
	if req.ScoresFormat != "" {
		if format, err = trialio.ParseFormat(req.ScoresFormat); err != nil {
			return r.fail("evaluate", err)
		}
	}

	key, err := trialio.ReadKey(strings.NewReader(req.Key))
	if err != nil {
		return r.fail("evaluate", fmt.Errorf("read key: %w", err))
	}
	m, err := trialio.LoadAsMatrix(strings.NewReader(req.Scores), format)
	if err != nil {
		return r.fail("evaluate", fmt.Errorf("read scores: %w", err))
	}

	run, err := runner.New(eval.Config{KValues: req.KValues, RankedDepth: req.Depth}, mode, runner.WithObserver(r.recorder))
	if err != nil {
		return r.fail("evaluate", err)
	}

	// runner reports its own evaluation failures to the recorder.
	rpt, err := run.Run(c.Request().Context(), report.Meta{Version: r.version}, key, m)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rpt)
}

func (r *ScoreRouter) fail(operation string, err error) error {
	r.recorder.ObserveFailure(operation, apperr.Kind(err))
	return err
}
