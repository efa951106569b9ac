package score

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/trial-score/internal/apperr"
	"gonum.org/v1/gonum/mat"
)

// Sentinel marks an absent cell in the textual matrix form. It ranks below any
// real score, but absence is tracked separately so a cell is never mistaken for
// a score once parsed.
const Sentinel = -1000.0

// Row is one unparsed matrix line: a segment id and its score cells in column order.
// Line is the 1-based source line, or zero when unknown.
type Row struct {
	Segment string
	Cells   []string
	Line    int
}

// Matrix is the dense view: segments as rows, models as columns.
type Matrix struct {
	models   []string
	segments []string
	modelIdx map[string]int
	segIdx   map[string]int
	cells    *mat.Dense
	present  []bool
}

func newMatrix(models, segments []string) *Matrix {
	m := &Matrix{
		models:   models,
		segments: segments,
		modelIdx: make(map[string]int, len(models)),
		segIdx:   make(map[string]int, len(segments)),
		present:  make([]bool, len(models)*len(segments)),
	}
	for j, mdl := range models {
		m.modelIdx[mdl] = j
	}
	for i, seg := range segments {
		m.segIdx[seg] = i
	}

	// mat.NewDense panics on a zero dimension.
	if len(models) > 0 && len(segments) > 0 {
		data := make([]float64, len(models)*len(segments))
		for i := range data {
			data[i] = Sentinel
		}
		m.cells = mat.NewDense(len(segments), len(models), data)
	}
	return m
}

func (m *Matrix) set(row, col int, v float64) {
	m.cells.Set(row, col, v)
	m.present[row*len(m.models)+col] = true
}

// ParseMatrix validates a dense table and builds its matrix view. header lists
// the model ids in column order (without the leading label column).
func ParseMatrix(header []string, rows []Row) (*Matrix, error) {
	models := make([]string, 0, len(header))
	seenModels := make(map[string]struct{}, len(header))
	for _, h := range header {
		mdl := strings.TrimSpace(h)
		if mdl == "" {
			return nil, apperr.AtLine(apperr.NewMalformed(strings.Join(header, "|"), "empty model id in header"), 1)
		}
		if _, dup := seenModels[mdl]; dup {
			return nil, apperr.NewDuplicateEntry(mdl, "")
		}
		seenModels[mdl] = struct{}{}
		models = append(models, mdl)
	}

	segments := make([]string, 0, len(rows))
	seenSegs := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		seg := strings.TrimSpace(r.Segment)
		if seg == "" {
			return nil, apperr.AtLine(apperr.NewMalformed(strings.Join(r.Cells, "|"), "empty segment id"), r.Line)
		}
		if _, dup := seenSegs[seg]; dup {
			return nil, apperr.NewDuplicateEntry("", seg)
		}
		seenSegs[seg] = struct{}{}
		segments = append(segments, seg)
	}

	m := newMatrix(models, segments)
	for i, r := range rows {
		if len(r.Cells) != len(models) {
			err := apperr.NewMalformed(segments[i], fmt.Sprintf("expected %d score cells, got %d", len(models), len(r.Cells)))
			return nil, apperr.AtLine(err, r.Line)
		}
		for j, cell := range r.Cells {
			v, err := parseCell(cell)
			if err != nil {
				return nil, apperr.AtLine(apperr.NewMalformedWrap(segments[i], fmt.Sprintf("model %q", models[j]), err), r.Line)
			}
			if v == Sentinel {
				continue
			}
			m.set(i, j, v)
		}
	}
	return m, nil
}

func parseCell(cell string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid score %q", cell)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("score %q is not finite", cell)
	}
	return v, nil
}

func (m *Matrix) Models() []string {
	return append([]string(nil), m.models...)
}

func (m *Matrix) Segments() []string {
	return append([]string(nil), m.segments...)
}

// Dims returns the number of segments (rows) and models (columns).
func (m *Matrix) Dims() (rows, cols int) {
	return len(m.segments), len(m.models)
}

func (m *Matrix) ModelIndex(model string) (int, bool) {
	j, ok := m.modelIdx[model]
	return j, ok
}

func (m *Matrix) SegmentIndex(segment string) (int, bool) {
	i, ok := m.segIdx[segment]
	return i, ok
}

// At returns the cell value and whether a score is present. Absent cells
// report Sentinel.
func (m *Matrix) At(row, col int) (float64, bool) {
	if !m.present[row*len(m.models)+col] {
		return Sentinel, false
	}
	return m.cells.At(row, col), true
}

// Present counts the non-sentinel cells.
func (m *Matrix) Present() int {
	var n int
	for _, p := range m.present {
		if p {
			n++
		}
	}
	return n
}

// Store converts the view back to a sparse store; absent cells are skipped.
func (m *Matrix) Store() *Store {
	s := NewStore()
	// keep column order for every model that has at least one score
	for j, mdl := range m.models {
		for i := range m.segments {
			if m.present[i*len(m.models)+j] {
				s.modelSet[mdl] = struct{}{}
				s.models = append(s.models, mdl)
				break
			}
		}
	}
	for i, seg := range m.segments {
		for j, mdl := range m.models {
			if v, ok := m.At(i, j); ok {
				// ids are unique and values finite, so Insert cannot fail here.
				_ = s.Insert(mdl, seg, v)
			}
		}
	}
	return s
}
