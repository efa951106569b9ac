package trialio

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/DjordjeVuckovic/trial-score/internal/apperr"
	"github.com/DjordjeVuckovic/trial-score/internal/eval"
	"github.com/DjordjeVuckovic/trial-score/internal/score"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadKey(t *testing.T) {
	t.Run("whitespace delimited", func(t *testing.T) {
		key, err := ReadKey(strings.NewReader("mdlA seg1\nmdlB\tseg2\n\n"))
		require.NoError(t, err)
		assert.Equal(t, 2, key.Len())

		mdl, ok := key.Model("seg2")
		assert.True(t, ok)
		assert.Equal(t, "mdlB", mdl)
	})

	t.Run("wrong field count", func(t *testing.T) {
		_, err := ReadKey(strings.NewReader("mdlA seg1\nmdlB seg2 extra\n"))
		var me *apperr.MalformedRecordError
		require.True(t, errors.As(err, &me))
		assert.Equal(t, 2, me.Line)
	})

	t.Run("duplicate segment", func(t *testing.T) {
		_, err := ReadKey(strings.NewReader("mdlA seg1\nmdlB seg1\n"))
		var de *apperr.DuplicateEntryError
		assert.True(t, errors.As(err, &de))
	})
}

func TestReadTriples(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		triples, err := ReadTriples(strings.NewReader("mdlA seg1 0.5\nmdlB seg1 -1.25\n"))
		require.NoError(t, err)
		assert.Equal(t, []score.Triple{
			{Model: "mdlA", Segment: "seg1", Score: 0.5},
			{Model: "mdlB", Segment: "seg1", Score: -1.25},
		}, triples)
	})

	t.Run("bad score", func(t *testing.T) {
		_, err := ReadTriples(strings.NewReader("\nmdlA seg1 high\n"))
		var me *apperr.MalformedRecordError
		require.True(t, errors.As(err, &me))
		assert.Equal(t, 2, me.Line)
	})

	t.Run("missing field", func(t *testing.T) {
		_, err := ReadTriples(strings.NewReader("mdlA seg1\n"))
		var me *apperr.MalformedRecordError
		assert.True(t, errors.As(err, &me))
	})

	t.Run("conflicting lines", func(t *testing.T) {
		s, err := LoadTriples(strings.NewReader("mdlA seg1 0.5\nmdlA seg1 0.7\n"))
		assert.Nil(t, s)
		var de *apperr.DuplicateEntryError
		assert.True(t, errors.As(err, &de))
	})
}

func TestReadMatrix(t *testing.T) {
	input := "Label|mdlA|mdlB\nseg1|0.9|0.2\nseg2|0.1|-1000\n"

	m, err := LoadMatrix(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"mdlA", "mdlB"}, m.Models())
	assert.Equal(t, []string{"seg1", "seg2"}, m.Segments())
	assert.Equal(t, 3, m.Present())

	t.Run("wrong column count has line number", func(t *testing.T) {
		_, err := LoadMatrix(strings.NewReader("Label|mdlA|mdlB\nseg1|0.9|0.2\nseg2|0.1\n"))
		var me *apperr.MalformedRecordError
		require.True(t, errors.As(err, &me))
		assert.Equal(t, 3, me.Line)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := LoadMatrix(strings.NewReader("\n"))
		var me *apperr.MalformedRecordError
		assert.True(t, errors.As(err, &me))
	})
}

func TestWriteMatrix(t *testing.T) {
	s, err := score.FromTriples([]score.Triple{
		{Model: "mdlA", Segment: "seg1", Score: 0.91234},
		{Model: "mdlB", Segment: "seg2", Score: 2},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteMatrix(&buf, s.ToMatrix(nil, nil), DefaultDecimals))
	assert.Equal(t, "Label|mdlA|mdlB\nseg1|0.912|-1000\nseg2|-1000|2.000\n", buf.String())
}

func TestWriteTriples(t *testing.T) {
	var buf bytes.Buffer
	err := WriteTriples(&buf, []score.Triple{
		{Model: "mdlA", Segment: "seg1", Score: 0.5},
		{Model: "mdlB", Segment: "seg1", Score: -12},
	})
	require.NoError(t, err)
	assert.Equal(t, "mdlA seg1 0.5\nmdlB seg1 -12\n", buf.String())
}

func TestWriteRanked(t *testing.T) {
	var buf bytes.Buffer
	err := WriteRanked(&buf, []eval.RankedList{
		{Segment: "seg1", Models: []string{"mdlA", "mdlB"}},
		{Segment: "seg2", Models: []string{"m1", "m2", "m3"}},
	}, 2)
	require.NoError(t, err)
	assert.Equal(t, "Label\ttop1\ttop2\nseg1\tmdlA\tmdlB\nseg2\tm1\tm2\n", buf.String())
}

func TestConvert_RoundTrip(t *testing.T) {
	input := "m1 s1 0.12345\nm2 s1 -3.5\nm1 s2 7\nm3 s3 -0.0004\n"

	var mat bytes.Buffer
	original, err := Convert(strings.NewReader(input), &mat, FormatTriple, FormatMatrix, DefaultDecimals)
	require.NoError(t, err)

	var triples bytes.Buffer
	back, err := Convert(bytes.NewReader(mat.Bytes()), &triples, FormatMatrix, FormatTriple, DefaultDecimals)
	require.NoError(t, err)

	require.Equal(t, original.Len(), back.Len())
	for _, tr := range original.ToTriples() {
		v, ok := back.Score(tr.Model, tr.Segment)
		require.True(t, ok, "missing %s/%s", tr.Model, tr.Segment)
		assert.InDelta(t, round3(tr.Score), v, 1e-9)
	}

	reread, err := ReadTriples(bytes.NewReader(triples.Bytes()))
	require.NoError(t, err)
	assert.Len(t, reread, original.Len())
}

func TestConvert_Errors(t *testing.T) {
	var out bytes.Buffer
	_, err := Convert(strings.NewReader("a s1 1\na s1 1\n"), &out, FormatTriple, FormatMatrix, 3)
	var de *apperr.DuplicateEntryError
	assert.True(t, errors.As(err, &de))
	assert.Zero(t, out.Len())

	_, err = ParseFormat("csv")
	var ve *apperr.ValidationError
	assert.True(t, errors.As(err, &ve))

	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatTriple, f)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func TestLoadAsMatrix(t *testing.T) {
	m, err := LoadAsMatrix(strings.NewReader("mdlA seg1 0.5\nmdlB seg2 0.25\n"), FormatTriple)
	require.NoError(t, err)
	assert.Equal(t, []string{"mdlA", "mdlB"}, m.Models())
	assert.Equal(t, []string{"seg1", "seg2"}, m.Segments())
	assert.Equal(t, 2, m.Present())

	m, err = LoadAsMatrix(strings.NewReader("Label|mdlA\nseg1|0.5\n"), FormatMatrix)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Present())
}

func TestWriteMatrix_ScoreAtAbsentValue(t *testing.T) {
	tests := []struct {
		name  string
		score float64
	}{
		{name: "exact", score: -1000},
		{name: "rounds onto it", score: -999.9996},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := score.FromTriples([]score.Triple{
				{Model: "mdlA", Segment: "seg1", Score: tt.score},
				{Model: "mdlB", Segment: "seg1", Score: 0.5},
			})
			require.NoError(t, err)

			var buf bytes.Buffer
			err = WriteMatrix(&buf, s.ToMatrix(nil, nil), DefaultDecimals)
			var me *apperr.MalformedRecordError
			require.True(t, errors.As(err, &me))
			assert.Contains(t, me.Record, "mdlA seg1")
		})
	}

	t.Run("more decimals keep it apart", func(t *testing.T) {
		s, err := score.FromTriples([]score.Triple{{Model: "mdlA", Segment: "seg1", Score: -999.9996}})
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, WriteMatrix(&buf, s.ToMatrix(nil, nil), 4))
		assert.Equal(t, "Label|mdlA\nseg1|-999.9996\n", buf.String())
	})
}

func TestConvert_ScoreAtAbsentValue(t *testing.T) {
	t.Run("triple to matrix fails instead of dropping the score", func(t *testing.T) {
		var out bytes.Buffer
		_, err := Convert(strings.NewReader("mdlA seg1 -1000\nmdlB seg1 0.5\n"), &out, FormatTriple, FormatMatrix, DefaultDecimals)
		var me *apperr.MalformedRecordError
		assert.True(t, errors.As(err, &me))
	})

	t.Run("triple to triple keeps the score", func(t *testing.T) {
		var out bytes.Buffer
		s, err := Convert(strings.NewReader("mdlA seg1 -1000\nmdlB seg1 0.5\n"), &out, FormatTriple, FormatTriple, DefaultDecimals)
		require.NoError(t, err)
		assert.Equal(t, 2, s.Len())
		assert.Equal(t, "mdlA seg1 -1000\nmdlB seg1 0.5\n", out.String())
	})

	t.Run("matrix to triple treats the value as absent", func(t *testing.T) {
		var out bytes.Buffer
		s, err := Convert(strings.NewReader("Label|mdlA|mdlB\nseg1|-1000.000|0.5\n"), &out, FormatMatrix, FormatTriple, DefaultDecimals)
		require.NoError(t, err)
		assert.Equal(t, 1, s.Len())
		assert.Equal(t, "mdlB seg1 0.5\n", out.String())
	})
}
