package score

import (
	"errors"
	"math"
	"testing"

	"github.com/DjordjeVuckovic/trial-score/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromTriples(t *testing.T) {
	t.Run("builds sparse store", func(t *testing.T) {
		s, err := FromTriples([]Triple{
			{Model: "mdlA", Segment: "seg1", Score: 0.9},
			{Model: "mdlB", Segment: "seg1", Score: 0.2},
			{Model: "mdlA", Segment: "seg2", Score: 0.1},
		})
		require.NoError(t, err)

		assert.Equal(t, 3, s.Len())
		assert.Equal(t, []string{"seg1", "seg2"}, s.Segments())
		assert.Equal(t, []string{"mdlA", "mdlB"}, s.Models())

		v, ok := s.Score("mdlB", "seg1")
		assert.True(t, ok)
		assert.InDelta(t, 0.2, v, 1e-12)

		_, ok = s.Score("mdlB", "seg2")
		assert.False(t, ok)
	})

	t.Run("conflicting triple aborts the build", func(t *testing.T) {
		s, err := FromTriples([]Triple{
			{Model: "mdlA", Segment: "seg1", Score: 0.5},
			{Model: "mdlA", Segment: "seg1", Score: 0.7},
		})
		require.Error(t, err)
		assert.Nil(t, s)

		var de *apperr.DuplicateEntryError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, "mdlA", de.Model)
		assert.Equal(t, "seg1", de.Segment)
	})

	t.Run("exact duplicate is rejected too", func(t *testing.T) {
		_, err := FromTriples([]Triple{
			{Model: "mdlA", Segment: "seg1", Score: 0.5},
			{Model: "mdlA", Segment: "seg1", Score: 0.5},
		})
		var de *apperr.DuplicateEntryError
		assert.True(t, errors.As(err, &de))
	})

	t.Run("non-finite score", func(t *testing.T) {
		_, err := FromTriples([]Triple{{Model: "mdlA", Segment: "seg1", Score: math.NaN()}})
		var me *apperr.MalformedRecordError
		assert.True(t, errors.As(err, &me))
	})

	t.Run("empty ids", func(t *testing.T) {
		_, err := FromTriples([]Triple{{Model: "", Segment: "seg1", Score: 1}})
		var me *apperr.MalformedRecordError
		assert.True(t, errors.As(err, &me))
	})
}

func TestToTriples_StableOrder(t *testing.T) {
	s, err := FromTriples([]Triple{
		{Model: "mdlB", Segment: "seg2", Score: 0.4},
		{Model: "mdlA", Segment: "seg1", Score: 0.3},
		{Model: "mdlA", Segment: "seg2", Score: 0.2},
	})
	require.NoError(t, err)

	want := []Triple{
		{Model: "mdlB", Segment: "seg2", Score: 0.4},
		{Model: "mdlA", Segment: "seg2", Score: 0.2},
		{Model: "mdlA", Segment: "seg1", Score: 0.3},
	}
	assert.Equal(t, want, s.ToTriples())
	assert.Equal(t, s.ToTriples(), s.ToTriples())
}

func TestToMatrix(t *testing.T) {
	s, err := FromTriples([]Triple{
		{Model: "mdlA", Segment: "seg1", Score: 0.9},
		{Model: "mdlB", Segment: "seg2", Score: 0.8},
	})
	require.NoError(t, err)

	t.Run("defaults to every known id", func(t *testing.T) {
		m := s.ToMatrix(nil, nil)
		rows, cols := m.Dims()
		assert.Equal(t, 2, rows)
		assert.Equal(t, 2, cols)
		assert.Equal(t, []string{"mdlA", "mdlB"}, m.Models())
		assert.Equal(t, []string{"seg1", "seg2"}, m.Segments())

		v, ok := m.At(0, 0)
		assert.True(t, ok)
		assert.InDelta(t, 0.9, v, 1e-12)

		v, ok = m.At(0, 1)
		assert.False(t, ok)
		assert.Equal(t, Sentinel, v)
		assert.Equal(t, 2, m.Present())
	})

	t.Run("caller order with unknown ids is sentinel filled", func(t *testing.T) {
		m := s.ToMatrix([]string{"mdlB", "mdlX", "mdlB"}, []string{"seg2", "segZ"})
		assert.Equal(t, []string{"mdlB", "mdlX"}, m.Models())
		assert.Equal(t, []string{"seg2", "segZ"}, m.Segments())

		v, ok := m.At(0, 0)
		assert.True(t, ok)
		assert.InDelta(t, 0.8, v, 1e-12)
		for _, cell := range [][2]int{{0, 1}, {1, 0}, {1, 1}} {
			_, ok := m.At(cell[0], cell[1])
			assert.False(t, ok)
		}
	})

	t.Run("empty store", func(t *testing.T) {
		m := NewStore().ToMatrix(nil, nil)
		rows, cols := m.Dims()
		assert.Zero(t, rows)
		assert.Zero(t, cols)
		assert.Zero(t, m.Store().Len())
	})
}

func TestRoundTrip(t *testing.T) {
	triples := []Triple{
		{Model: "m1", Segment: "s1", Score: 1.5},
		{Model: "m2", Segment: "s1", Score: -3.25},
		{Model: "m3", Segment: "s2", Score: 12},
		{Model: "m1", Segment: "s3", Score: 0},
	}
	s, err := FromTriples(triples)
	require.NoError(t, err)

	back := s.ToMatrix(nil, nil).Store()
	assert.ElementsMatch(t, triples, back.ToTriples())
	assert.Equal(t, s.Len(), back.Len())
}
