package evalspec

import "fmt"

type Mode string

const (
	ModeSegment Mode = "segment"
	ModeModel   Mode = "model"
	ModeBoth    Mode = "both"
)

func (m Mode) Segment() bool { return m == ModeSegment || m == ModeBoth }
func (m Mode) Model() bool   { return m == ModeModel || m == ModeBoth }

type EvalSpec struct {
	Mode    Mode          `yaml:"mode"`
	Metrics MetricsConfig `yaml:"metrics"`
	Output  OutputConfig  `yaml:"output"`
}

type MetricsConfig struct {
	KValues     []int `yaml:"k_values"`
	RankedDepth int   `yaml:"ranked_depth"`
}

type OutputConfig struct {
	Ranked string `yaml:"ranked"`
	JSON   string `yaml:"json,omitempty"`
	Format string `yaml:"format"`
}

// ParseMode maps a mode name to a Mode; the empty string is segment.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return ModeSegment, nil
	}
	m := Mode(s)
	if !validModes[m] {
		return "", fmt.Errorf("invalid mode %q (want segment, model or both)", s)
	}
	return m, nil
}
