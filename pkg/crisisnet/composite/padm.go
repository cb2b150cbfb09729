package composite

import "github.com/crisislab/crisisnet/pkg/crisisnet/dataset"

// PADM process stages and the lexical categories that proxy them
// (protective action decision model: exposure, attention,
// comprehension).
var padmStages = []struct {
	Name string
	Cats []string
}{
	{"exposure", []string{"percept", "see", "hear", "feel"}},
	{"attention", []string{"cogproc", "comparison", "differentiation"}},
	{"comprehension", []string{"insight", "certainty", "causation"}},
}

// StageStats summarizes one PADM stage: per-category distributions plus
// an overall distribution of the per-post stage sums.
type StageStats struct {
	Stage      string                 `json:"stage"`
	Categories map[string]columnStats `json:"categories"`
	Overall    columnStats            `json:"overall"`
}

// PADM computes the exposure/attention/comprehension breakdown over an
// enriched dataset. Categories absent from the score columns are
// skipped; a dataset with no lexical columns yields empty stages.
func PADM(ds *dataset.Dataset) []StageStats {
	present := make(map[string]bool, len(ds.ScoreOrder))
	for _, c := range ds.ScoreOrder {
		present[c] = true
	}

	out := make([]StageStats, 0, len(padmStages))
	for _, stage := range padmStages {
		ss := StageStats{Stage: stage.Name, Categories: make(map[string]columnStats)}
		sums := make([]float64, ds.Len())
		any := false
		for _, cat := range stage.Cats {
			if !present[cat] {
				continue
			}
			any = true
			values := make([]float64, ds.Len())
			for i, p := range ds.Posts {
				values[i] = p.Scores[cat]
				sums[i] += p.Scores[cat]
			}
			ss.Categories[cat] = describeValues(values)
		}
		if any {
			ss.Overall = describeValues(sums)
		}
		out = append(out, ss)
	}
	return out
}
