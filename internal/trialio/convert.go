package trialio

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/DjordjeVuckovic/trial-score/internal/apperr"
	"github.com/DjordjeVuckovic/trial-score/internal/score"
)

type Format string

const (
	FormatTriple Format = "triple"
	FormatMatrix Format = "matrix"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatTriple, FormatMatrix:
		return Format(s), nil
	case "":
		return FormatTriple, nil
	}
	return "", apperr.NewValidation(fmt.Sprintf("unknown score format %q (want triple or matrix)", s))
}

// Load reads a score artifact of the given format into a sparse store.
func Load(r io.Reader, from Format) (*score.Store, error) {
	switch from {
	case FormatMatrix:
		header, rows, err := ReadMatrix(r)
		if err != nil {
			return nil, err
		}
		return score.FromMatrix(header, rows)
	case FormatTriple:
		return LoadTriples(r)
	}
	return nil, apperr.NewValidation(fmt.Sprintf("unknown score format %q", from))
}

// Write emits a store in the given format. Matrix output covers every known
// model and segment in first-seen order.
func Write(w io.Writer, s *score.Store, to Format, decimals int) error {
	switch to {
	case FormatMatrix:
		return WriteMatrix(w, s.ToMatrix(nil, nil), decimals)
	case FormatTriple:
		return WriteTriples(w, s.ToTriples())
	}
	return apperr.NewValidation(fmt.Sprintf("unknown score format %q", to))
}

// Convert loads a score artifact and writes it back in another format.
func Convert(r io.Reader, w io.Writer, from, to Format, decimals int) (*score.Store, error) {
	s, err := Load(r, from)
	if err != nil {
		return nil, fmt.Errorf("load %s scores: %w", from, err)
	}
	slog.Debug("Scores loaded", "format", from, "entries", s.Len(), "models", len(s.Models()), "segments", len(s.Segments()))

	if err := Write(w, s, to, decimals); err != nil {
		return nil, fmt.Errorf("write %s scores: %w", to, err)
	}
	return s, nil
}

// LoadAsMatrix reads scores of either format as a dense matrix. Triples are
// projected over every model and segment they mention.
func LoadAsMatrix(r io.Reader, from Format) (*score.Matrix, error) {
	if from == FormatMatrix {
		return LoadMatrix(r)
	}
	s, err := Load(r, from)
	if err != nil {
		return nil, err
	}
	return s.ToMatrix(nil, nil), nil
}
