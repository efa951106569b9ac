package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DjordjeVuckovic/trial-score/internal/eval"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() (*eval.Result, *eval.ModelResult) {
	seg := &eval.Result{
		Population: &eval.Population{
			KeySegments:   3,
			ScoreSegments: 2,
			Models:        2,
			Valid:         []string{"seg1", "seg2"},
			MissingScores: 1,
		},
		KValues:   []int{1, 2},
		Correct:   map[int]int{1: 1, 2: 2},
		Precision: map[int]float64{1: 0.5, 2: 1},
		Ranked: []eval.RankedList{
			{Segment: "seg1", Models: []string{"mdlA", "mdlB"}},
			{Segment: "seg2", Models: []string{"mdlA", "mdlB"}},
		},
	}
	mdl := &eval.ModelResult{
		Population: 3,
		Models:     2,
		KValues:    []int{1, 2},
		Correct:    map[int]int{1: 1, 2: 2},
		Precision:  map[int]float64{1: 1.0 / 3.0, 2: 2.0 / 3.0},
	}
	return seg, mdl
}

func TestGenerate(t *testing.T) {
	seg, mdl := sampleResults()
	cfg := eval.Config{KValues: []int{1, 2}, RankedDepth: 5}

	r := Generate(Meta{Version: "test"}, cfg, seg, mdl)
	assert.NotEqual(t, uuid.Nil, r.Meta.RunID)
	assert.False(t, r.Meta.Timestamp.IsZero())
	assert.Equal(t, []int{1, 2}, r.Config.KValues)

	require.NotNil(t, r.Segment)
	assert.Equal(t, []PrecisionAt{{K: 1, Correct: 1, Precision: 0.5}, {K: 2, Correct: 2, Precision: 1}}, r.Segment.Precision)
	require.NotNil(t, r.ModelCentric)
	assert.Equal(t, 3, r.ModelCentric.Population)

	only := Generate(Meta{}, cfg, seg, nil)
	assert.Nil(t, only.ModelCentric)
}

func TestWriteText(t *testing.T) {
	seg, mdl := sampleResults()
	r := Generate(Meta{}, eval.DefaultConfig(), seg, mdl)

	var buf bytes.Buffer
	require.NoError(t, WriteText(r, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "mdl num: 2", lines[0])
	assert.Equal(t, "key_seg_num: 3, score_seg_num: 2", lines[1])
	assert.Contains(t, lines, "valid_seg_num: 2, top1: correct_num: 1, precision: 0.500")
	assert.Contains(t, lines, "valid_seg_num: 2, top2: correct_num: 2, precision: 1.000")
	assert.Contains(t, lines, "model-centric: valid_key_num: 3, top1: correct_num: 1, precision: 0.333")
}

func TestWriteTable(t *testing.T) {
	seg, mdl := sampleResults()
	r := Generate(Meta{}, eval.DefaultConfig(), seg, mdl)

	var buf bytes.Buffer
	require.NoError(t, WriteTable(r, &buf))
	out := buf.String()
	assert.Contains(t, out, "Segment-centric")
	assert.Contains(t, out, "Model-centric")
	assert.Contains(t, out, "P@2")
	assert.Contains(t, out, "0.667")
}

func TestWriteJSON(t *testing.T) {
	seg, _ := sampleResults()
	r := Generate(Meta{KeyPath: "key.txt"}, eval.DefaultConfig(), seg, nil)

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, WriteJSON(r, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, r.Meta.RunID, decoded.Meta.RunID)
	assert.Equal(t, "key.txt", decoded.Meta.KeyPath)
	require.NotNil(t, decoded.Segment)
	assert.Equal(t, []string{"seg1", "seg2"}, decoded.Segment.Population.Valid)
	assert.Nil(t, decoded.ModelCentric)
}
