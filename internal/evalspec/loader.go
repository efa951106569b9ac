package evalspec

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const DefaultRankedPath = "output_result"

func LoadFromFile(path string) (*EvalSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read eval spec file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*EvalSpec, error) {
	var s EvalSpec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse eval spec YAML: %w", err)
	}
	if err := Validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Default returns the settings used when no spec file is given.
func Default() *EvalSpec {
	s := &EvalSpec{}
	_ = Validate(s)
	return s
}

var validModes = map[Mode]bool{
	ModeSegment: true,
	ModeModel:   true,
	ModeBoth:    true,
}

var validFormats = map[string]bool{
	"text":  true,
	"table": true,
}

// Validate checks s and fills unset fields with defaults.
func Validate(s *EvalSpec) error {
	if s.Mode == "" {
		s.Mode = ModeSegment
	}
	if !validModes[s.Mode] {
		return fmt.Errorf("invalid mode %q (want segment, model or both)", s.Mode)
	}
	for _, k := range s.Metrics.KValues {
		if k <= 0 {
			return fmt.Errorf("k value must be positive, got %d", k)
		}
	}
	if s.Metrics.RankedDepth < 0 {
		return fmt.Errorf("ranked_depth must not be negative, got %d", s.Metrics.RankedDepth)
	}
	if s.Output.Format == "" {
		s.Output.Format = "text"
	}
	if !validFormats[s.Output.Format] {
		return fmt.Errorf("invalid output format %q (want text or table)", s.Output.Format)
	}
	if len(s.Metrics.KValues) == 0 {
		s.Metrics.KValues = []int{1, 2, 3, 5}
	}
	if s.Metrics.RankedDepth == 0 {
		s.Metrics.RankedDepth = 5
	}
	if s.Output.Ranked == "" {
		s.Output.Ranked = DefaultRankedPath
	}
	return nil
}
