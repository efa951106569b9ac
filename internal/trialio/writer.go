package trialio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/trial-score/internal/apperr"
	"github.com/DjordjeVuckovic/trial-score/internal/eval"
	"github.com/DjordjeVuckovic/trial-score/internal/score"
)

const (
	DefaultDecimals = 3
	sentinelText    = "-1000"
)

// WriteTriples writes "model segment score" lines with the shortest decimal
// form that parses back to the same value.
func WriteTriples(w io.Writer, triples []score.Triple) error {
	bw := bufio.NewWriter(w)
	for _, t := range triples {
		if _, err := fmt.Fprintf(bw, "%s %s %s\n", t.Model, t.Segment, strconv.FormatFloat(t.Score, 'f', -1, 64)); err != nil {
			return fmt.Errorf("write triple: %w", err)
		}
	}
	return bw.Flush()
}

// WriteMatrix writes the pipe-delimited table. Scores use the given number of
// decimals and absent cells are written as -1000. A present score that would
// read back as -1000 is a MalformedRecordError, since readers treat that value
// as an absent cell.
func WriteMatrix(w io.Writer, m *score.Matrix, decimals int) error {
	if decimals < 0 {
		decimals = DefaultDecimals
	}
	bw := bufio.NewWriter(w)

	models := m.Models()
	header := append([]string{MatrixLabel}, models...)
	if _, err := fmt.Fprintln(bw, strings.Join(header, MatrixSep)); err != nil {
		return fmt.Errorf("write matrix header: %w", err)
	}

	cells := make([]string, len(models)+1)
	for i, seg := range m.Segments() {
		cells[0] = seg
		for j := range models {
			if v, ok := m.At(i, j); ok {
				text := strconv.FormatFloat(v, 'f', decimals, 64)
				if isSentinel(text) {
					return apperr.NewMalformed(models[j]+" "+seg,
						fmt.Sprintf("score %v collides with the absent-cell value %s at %d decimals", v, sentinelText, decimals))
				}
				cells[j+1] = text
			} else {
				cells[j+1] = sentinelText
			}
		}
		if _, err := fmt.Fprintln(bw, strings.Join(cells, MatrixSep)); err != nil {
			return fmt.Errorf("write matrix row %q: %w", seg, err)
		}
	}
	return bw.Flush()
}

func isSentinel(text string) bool {
	v, err := strconv.ParseFloat(text, 64)
	return err == nil && v == score.Sentinel
}

// WriteRanked writes the ranked-list artifact: a Label/topN header and one
// tab-separated row per segment.
func WriteRanked(w io.Writer, ranked []eval.RankedList, depth int) error {
	bw := bufio.NewWriter(w)

	header := []string{MatrixLabel}
	for i := 1; i <= depth; i++ {
		header = append(header, fmt.Sprintf("top%d", i))
	}
	if _, err := fmt.Fprintln(bw, strings.Join(header, "\t")); err != nil {
		return fmt.Errorf("write ranked header: %w", err)
	}

	for _, rl := range ranked {
		row := append([]string{rl.Segment}, rl.Top(depth)...)
		if _, err := fmt.Fprintln(bw, strings.Join(row, "\t")); err != nil {
			return fmt.Errorf("write ranked row %q: %w", rl.Segment, err)
		}
	}
	return bw.Flush()
}
