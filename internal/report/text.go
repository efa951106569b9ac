package report

import (
	"fmt"
	"io"
)

// WriteText prints the plain precision report: population counts first, then
// one line per K for each metric that ran.
func WriteText(r *Report, w io.Writer) error {
	if s := r.Segment; s != nil {
		p := s.Population
		lines := []string{
			fmt.Sprintf("mdl num: %d", p.Models),
			fmt.Sprintf("key_seg_num: %d, score_seg_num: %d", p.KeySegments, p.ScoreSegments),
			fmt.Sprintf("excluded: missing_scores: %d, unknown_model: %d, unkeyed: %d", p.MissingScores, p.UnknownModel, p.Unkeyed),
		}
		for _, row := range s.Precision {
			lines = append(lines, fmt.Sprintf("valid_seg_num: %d, top%d: correct_num: %d, precision: %.3f", p.Size(), row.K, row.Correct, row.Precision))
		}
		if err := writeLines(w, lines); err != nil {
			return err
		}
	}

	if m := r.ModelCentric; m != nil {
		lines := []string{fmt.Sprintf("model-centric: mdl num: %d", m.Models)}
		for _, row := range m.Precision {
			lines = append(lines, fmt.Sprintf("model-centric: valid_key_num: %d, top%d: correct_num: %d, precision: %.3f", m.Population, row.K, row.Correct, row.Precision))
		}
		if err := writeLines(w, lines); err != nil {
			return err
		}
	}
	return nil
}

func writeLines(w io.Writer, lines []string) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	return nil
}
