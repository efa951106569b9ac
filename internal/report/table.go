package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

func WriteTable(r *Report, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\n=== Top-N Precision (run %s) ===\n", r.Meta.RunID)

	if s := r.Segment; s != nil {
		p := s.Population
		fmt.Fprintf(tw, "\n--- Segment-centric ---\n\n")
		fmt.Fprintf(tw, "Population\n\n")
		writeRow(tw, "Models", "Key segments", "Score segments", "Valid", "Missing scores", "Unknown model", "Unkeyed")
		writeSeparator(tw, 7)
		writeRow(tw,
			fmt.Sprint(p.Models),
			fmt.Sprint(p.KeySegments),
			fmt.Sprint(p.ScoreSegments),
			fmt.Sprint(p.Size()),
			fmt.Sprint(p.MissingScores),
			fmt.Sprint(p.UnknownModel),
			fmt.Sprint(p.Unkeyed),
		)
		fmt.Fprintln(tw)
		writePrecisionTable(tw, p.Size(), s.Precision)
	}

	if m := r.ModelCentric; m != nil {
		fmt.Fprintf(tw, "\n--- Model-centric ---\n\n")
		writePrecisionTable(tw, m.Population, m.Precision)
	}

	return tw.Flush()
}

func writePrecisionTable(tw *tabwriter.Writer, population int, rows []PrecisionAt) {
	writeRow(tw, "K", "Population", "Correct", "Precision")
	writeSeparator(tw, 4)
	for _, row := range rows {
		writeRow(tw,
			fmt.Sprintf("P@%d", row.K),
			fmt.Sprint(population),
			fmt.Sprint(row.Correct),
			fmt.Sprintf("%.3f", row.Precision),
		)
	}
	fmt.Fprintln(tw)
}

func writeRow(tw *tabwriter.Writer, cols ...string) {
	fmt.Fprintln(tw, strings.Join(cols, "\t"))
}

func writeSeparator(tw *tabwriter.Writer, n int) {
	sep := make([]string, n)
	for i := range sep {
		sep[i] = "---"
	}
	writeRow(tw, sep...)
}
