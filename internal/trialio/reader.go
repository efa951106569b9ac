// Package trialio reads and writes the text forms of keys, triple score
// lists, matrix score tables and ranked-list reports.
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
	MatrixSep   = "|"
	MatrixLabel = "Label"

	maxLineSize = 16 * 1024 * 1024
)

type line struct {
	num  int
	text string
}

// readLines returns the non-blank lines with their 1-based numbers.
func readLines(r io.Reader) ([]line, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var out []line
	n := 0
	for sc.Scan() {
		n++
		text := strings.TrimRight(sc.Text(), " \t\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		out = append(out, line{num: n, text: text})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read lines: %w", err)
	}
	return out, nil
}

// ReadKey parses "model segment" lines into a key.
func ReadKey(r io.Reader) (*eval.Key, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	pairs := make([]eval.KeyPair, 0, len(lines))
	for _, l := range lines {
		fields := strings.Fields(l.text)
		if len(fields) != 2 {
			return nil, &apperr.MalformedRecordError{Line: l.num, Record: l.text, Message: fmt.Sprintf("expected 2 fields, got %d", len(fields))}
		}
		pairs = append(pairs, eval.KeyPair{Model: fields[0], Segment: fields[1]})
	}

	key, err := eval.NewKey(pairs)
	if err != nil {
		return nil, fmt.Errorf("load key: %w", err)
	}
	return key, nil
}

// ReadTriples parses "model segment score" lines.
func ReadTriples(r io.Reader) ([]score.Triple, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	triples := make([]score.Triple, 0, len(lines))
	for _, l := range lines {
		fields := strings.Fields(l.text)
		if len(fields) != 3 {
			return nil, &apperr.MalformedRecordError{Line: l.num, Record: l.text, Message: fmt.Sprintf("expected 3 fields, got %d", len(fields))}
		}
		v, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, &apperr.MalformedRecordError{Line: l.num, Record: l.text, Message: "invalid score", Err: err}
		}
		triples = append(triples, score.Triple{Model: fields[0], Segment: fields[1], Score: v})
	}
	return triples, nil
}

// LoadTriples reads a triple file straight into a store.
func LoadTriples(r io.Reader) (*score.Store, error) {
	triples, err := ReadTriples(r)
	if err != nil {
		return nil, err
	}
	return score.FromTriples(triples)
}

// ReadMatrix splits a pipe-delimited table into its model header and rows.
// The first header field is the label column and is dropped.
func ReadMatrix(r io.Reader) ([]string, []score.Row, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, nil, err
	}
	if len(lines) == 0 {
		return nil, nil, apperr.NewMalformed("", "missing matrix header")
	}

	header := strings.Split(lines[0].text, MatrixSep)
	rows := make([]score.Row, 0, len(lines)-1)
	for _, l := range lines[1:] {
		fields := strings.Split(l.text, MatrixSep)
		rows = append(rows, score.Row{Segment: fields[0], Cells: fields[1:], Line: l.num})
	}
	return header[1:], rows, nil
}

// LoadMatrix reads and validates a matrix table into its dense view.
func LoadMatrix(r io.Reader) (*score.Matrix, error) {
	header, rows, err := ReadMatrix(r)
	if err != nil {
		return nil, err
	}
	return score.ParseMatrix(header, rows)
}
