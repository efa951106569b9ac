package report

import (
	"runtime"
	"time"

	"github.com/DjordjeVuckovic/trial-score/internal/eval"
	"github.com/google/uuid"
)

type Report struct {
	Meta         Meta                `json:"meta"`
	Config       Config              `json:"config"`
	Segment      *SegmentReport      `json:"segment_centric,omitempty"`
	ModelCentric *ModelCentricReport `json:"model_centric,omitempty"`
}

type Meta struct {
	RunID       uuid.UUID       `json:"run_id"`
	Version     string          `json:"version"`
	Timestamp   time.Time       `json:"timestamp"`
	KeyPath     string          `json:"key_path,omitempty"`
	ScorePath   string          `json:"score_path,omitempty"`
	Environment EnvironmentInfo `json:"environment"`
}

type EnvironmentInfo struct {
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

func NewEnvironmentInfo() EnvironmentInfo {
	return EnvironmentInfo{
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

type Config struct {
	KValues     []int `json:"k_values"`
	RankedDepth int   `json:"ranked_depth"`
}

// PrecisionAt is one K row of a precision report.
type PrecisionAt struct {
	K         int     `json:"k"`
	Correct   int     `json:"correct"`
	Precision float64 `json:"precision"`
}

type SegmentReport struct {
	Population *eval.Population  `json:"population"`
	Precision  []PrecisionAt     `json:"precision"`
	Ranked     []eval.RankedList `json:"ranked,omitempty"`
}

type ModelCentricReport struct {
	Population int           `json:"population"`
	Models     int           `json:"models"`
	Precision  []PrecisionAt `json:"precision"`
}
