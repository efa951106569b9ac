// Package score holds trial scores in a sparse segment -> model -> score store
// and projects them to a dense matrix view and back.
package score

import (
	"fmt"
	"math"

	"github.com/DjordjeVuckovic/trial-score/internal/apperr"
)

// Triple is one scored (model, segment) trial.
type Triple struct {
	Model   string
	Segment string
	Score   float64
}

// Store is the sparse score set. Segments and models remember the order in
// which they were first seen; that order drives ToMatrix and ToTriples.
// A Store is built once and then only read.
type Store struct {
	scores   map[string]map[string]float64
	segments []string
	models   []string
	modelSet map[string]struct{}
	size     int
}

func NewStore() *Store {
	return &Store{
		scores:   make(map[string]map[string]float64),
		modelSet: make(map[string]struct{}),
	}
}

// Insert adds a score. Any second score for the same pair is rejected, equal
// values included.
func (s *Store) Insert(model, segment string, score float64) error {
	if model == "" || segment == "" {
		return apperr.NewMalformed(model+" "+segment, "empty model or segment id")
	}
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return apperr.NewMalformed(model+" "+segment, fmt.Sprintf("score %v is not finite", score))
	}

	row, ok := s.scores[segment]
	if !ok {
		row = make(map[string]float64)
		s.scores[segment] = row
		s.segments = append(s.segments, segment)
	}
	if _, dup := row[model]; dup {
		return apperr.NewDuplicateEntry(model, segment)
	}
	row[model] = score
	s.size++

	if _, seen := s.modelSet[model]; !seen {
		s.modelSet[model] = struct{}{}
		s.models = append(s.models, model)
	}
	return nil
}

// FromTriples builds a store, failing on the first colliding or invalid triple.
func FromTriples(triples []Triple) (*Store, error) {
	s := NewStore()
	for i, t := range triples {
		if err := s.Insert(t.Model, t.Segment, t.Score); err != nil {
			return nil, fmt.Errorf("triple %d: %w", i+1, err)
		}
	}
	return s, nil
}

// FromMatrix builds a store from a dense table. Sentinel cells are not inserted.
func FromMatrix(header []string, rows []Row) (*Store, error) {
	m, err := ParseMatrix(header, rows)
	if err != nil {
		return nil, err
	}
	return m.Store(), nil
}

// Score returns the stored score for a pair.
func (s *Store) Score(model, segment string) (float64, bool) {
	v, ok := s.scores[segment][model]
	return v, ok
}

// Len is the number of stored entries.
func (s *Store) Len() int { return s.size }

func (s *Store) Models() []string {
	return append([]string(nil), s.models...)
}

func (s *Store) Segments() []string {
	return append([]string(nil), s.segments...)
}

// ToTriples emits every stored entry, segments in first-seen order and models
// in first-seen order within each segment.
func (s *Store) ToTriples() []Triple {
	out := make([]Triple, 0, s.size)
	for _, seg := range s.segments {
		row := s.scores[seg]
		for _, mdl := range s.models {
			if v, ok := row[mdl]; ok {
				out = append(out, Triple{Model: mdl, Segment: seg, Score: v})
			}
		}
	}
	return out
}

// ToMatrix projects the store over the given model and segment orders. A nil or
// empty order means every known id in first-seen order. Ids the store does not
// know are sentinel-filled, and repeated ids keep their first position.
func (s *Store) ToMatrix(models, segments []string) *Matrix {
	if len(models) == 0 {
		models = s.models
	}
	if len(segments) == 0 {
		segments = s.segments
	}

	m := newMatrix(dedupe(models), dedupe(segments))
	for i, seg := range m.segments {
		row, ok := s.scores[seg]
		if !ok {
			continue
		}
		for j, mdl := range m.models {
			if v, ok := row[mdl]; ok {
				m.set(i, j, v)
			}
		}
	}
	return m
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
