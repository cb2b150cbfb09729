// Package composite derives higher-order scores from the per-category
// lexical columns: the Resonance+ composite, the PADM process
// breakdown, and per-crisis linguistic profiles.
package composite

import (
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/crisislab/crisisnet/pkg/crisisnet/dataset"
)

// Category groups feeding the composite sub-scores.
var (
	crisisRelevanceCats    = []string{"risk", "anx", "negemo", "time", "space", "motion"}
	cognitiveResonanceCats = []string{"cogproc", "insight", "certainty", "causation"}
)

// Keyword fallbacks used when a dataset was never enriched with
// lexical columns.
var (
	crisisKeywords    = []string{"emergency", "urgent", "evacuation", "danger", "warning", "crisis", "disaster", "help"}
	cognitiveKeywords = []string{"think", "because", "understand", "realize", "know", "reason"}
)

// Derived column names attached by Score.
const (
	ColNovelty            = "novelty_score"
	ColPersistence        = "persistence_score"
	ColCrisisRelevance    = "crisis_relevance_score"
	ColCognitiveResonance = "cognitive_resonance_score"
	ColResonancePlus      = "resonance_plus"
)

// Score attaches the four Resonance+ sub-scores and their equally
// weighted composite as derived columns, then z-normalized variants
// with a "_z" suffix. Sub-scores:
//
//   - novelty: inverse frequency of identical content in the corpus
//   - persistence: log1p of engagement (score + comments), falling back
//     to log1p of content length when engagement columns are absent
//   - crisis relevance: sum of the risk/anx/negemo/time/space/motion
//     lexical columns, with a keyword count fallback
//   - cognitive resonance: sum of cogproc/insight/certainty/causation,
//     same fallback scheme
func Score(ds *dataset.Dataset) {
	n := ds.Len()
	novelty := make([]float64, n)
	persistence := make([]float64, n)
	relevance := make([]float64, n)
	resonance := make([]float64, n)
	composite := make([]float64, n)

	contentFreq := make(map[string]int, n)
	for _, p := range ds.Posts {
		contentFreq[p.Content]++
	}

	hasEngagement := ds.Has(dataset.ColScore) || ds.Has(dataset.ColNumComments)
	hasScores := len(ds.ScoreOrder) > 0

	for i, p := range ds.Posts {
		novelty[i] = 1 / float64(contentFreq[p.Content])

		if hasEngagement {
			persistence[i] = math.Log1p(float64(p.Score + p.NumComments))
		} else {
			persistence[i] = math.Log1p(float64(len(p.Content)))
		}

		if hasScores {
			relevance[i] = sumCategories(p, crisisRelevanceCats)
			resonance[i] = sumCategories(p, cognitiveResonanceCats)
		} else {
			relevance[i] = float64(keywordCount(p.Content, crisisKeywords))
			resonance[i] = float64(keywordCount(p.Content, cognitiveKeywords))
		}

		composite[i] = 0.25 * (novelty[i] + persistence[i] + relevance[i] + resonance[i])
	}

	ds.SetDerived(ColNovelty, novelty)
	ds.SetDerived(ColPersistence, persistence)
	ds.SetDerived(ColCrisisRelevance, relevance)
	ds.SetDerived(ColCognitiveResonance, resonance)
	ds.SetDerived(ColResonancePlus, composite)

	for _, name := range []string{ColNovelty, ColPersistence, ColCrisisRelevance, ColCognitiveResonance, ColResonancePlus} {
		values, _ := ds.Derived(name)
		ds.SetDerived(name+"_z", zscores(values))
	}
}

func sumCategories(p dataset.Post, cats []string) float64 {
	var sum float64
	for _, c := range cats {
		sum += p.Scores[c]
	}
	return sum
}

func keywordCount(text string, keywords []string) int {
	lower := strings.ToLower(text)
	n := 0
	for _, kw := range keywords {
		n += strings.Count(lower, kw)
	}
	return n
}

// zscores standardizes a column. A zero standard deviation (constant
// column, or fewer than two rows) yields all zeros.
func zscores(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) < 2 {
		return out
	}
	mean, std := stat.MeanStdDev(values, nil)
	if std == 0 || math.IsNaN(std) {
		return out
	}
	for i, v := range values {
		out[i] = (v - mean) / std
	}
	return out
}

// columnStats summarizes one value slice: mean, median, std, the 90th
// percentile threshold, and how many values exceed it.
type columnStats struct {
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	Std      float64 `json:"std"`
	P90      float64 `json:"p90"`
	CountP90 int     `json:"count_above_p90"`
}

func describeValues(values []float64) columnStats {
	var cs columnStats
	if len(values) == 0 {
		return cs
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	cs.Mean = stat.Mean(values, nil)
	cs.Median = stat.Quantile(0.5, stat.LinInterp, sorted, nil)
	if len(values) > 1 {
		cs.Std = stat.StdDev(values, nil)
	}
	cs.P90 = stat.Quantile(0.9, stat.LinInterp, sorted, nil)
	for _, v := range values {
		if v > cs.P90 {
			cs.CountP90++
		}
	}
	return cs
}

func quantileOf(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return stat.Quantile(q, stat.LinInterp, sorted, nil)
}
