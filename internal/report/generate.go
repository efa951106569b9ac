package report

import (
	"time"

	"github.com/DjordjeVuckovic/trial-score/internal/eval"
	"github.com/google/uuid"
)

// Generate assembles a report from whichever evaluations ran. Either result
// may be nil.
func Generate(meta Meta, cfg eval.Config, seg *eval.Result, mdl *eval.ModelResult) *Report {
	if meta.RunID == uuid.Nil {
		meta.RunID = uuid.New()
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now().UTC()
	}
	meta.Environment = NewEnvironmentInfo()

	r := &Report{
		Meta: meta,
		Config: Config{
			KValues:     cfg.KValues,
			RankedDepth: cfg.RankedDepth,
		},
	}

	if seg != nil {
		r.Segment = &SegmentReport{
			Population: seg.Population,
			Precision:  precisionRows(seg.KValues, seg.Correct, seg.Precision),
			Ranked:     seg.Ranked,
		}
	}
	if mdl != nil {
		r.ModelCentric = &ModelCentricReport{
			Population: mdl.Population,
			Models:     mdl.Models,
			Precision:  precisionRows(mdl.KValues, mdl.Correct, mdl.Precision),
		}
	}
	return r
}

func precisionRows(kValues []int, correct map[int]int, precision map[int]float64) []PrecisionAt {
	rows := make([]PrecisionAt, 0, len(kValues))
	for _, k := range kValues {
		rows = append(rows, PrecisionAt{K: k, Correct: correct[k], Precision: precision[k]})
	}
	return rows
}
