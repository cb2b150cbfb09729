// Package compare runs cross-crisis statistical comparisons over
// enriched datasets.
package compare

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/crisislab/crisisnet/pkg/crisisnet/dataset"
)

// Alpha is the significance threshold for the pairwise tests.
const Alpha = 0.05

// Result is one pairwise two-proportion z-test for a single category.
// Posts are binarized at the overall corpus median for the category;
// the test compares the above-median proportions of the two crises.
type Result struct {
	Category    string  `json:"category"`
	CrisisA     string  `json:"crisis_a"`
	CrisisB     string  `json:"crisis_b"`
	PropA       float64 `json:"prop_a"`
	PropB       float64 `json:"prop_b"`
	ZScore      float64 `json:"z_score"`
	PValue      float64 `json:"p_value"`
	Significant bool    `json:"significant"`
}

// Crises runs every pairwise crisis comparison for every score column.
// Pairs where the pooled standard error is zero (all posts on one side
// of the median) are reported with p = 1 and never flagged significant.
// Fewer than two crises yields no results.
func Crises(ds *dataset.Dataset) []Result {
	crises := ds.Crises()
	if len(crises) < 2 {
		return nil
	}
	sort.Strings(crises)

	byID := make(map[string]*dataset.Dataset, len(crises))
	for _, id := range crises {
		byID[id] = ds.FilterCrisis(id)
	}

	normal := distuv.Normal{Mu: 0, Sigma: 1}
	var out []Result
	for _, cat := range ds.ScoreOrder {
		threshold := overallMedian(ds, cat)
		for i := 0; i < len(crises); i++ {
			for j := i + 1; j < len(crises); j++ {
				a, b := byID[crises[i]], byID[crises[j]]
				r := Result{
					Category: cat,
					CrisisA:  crises[i],
					CrisisB:  crises[j],
					PValue:   1,
				}

				na, nb := float64(a.Len()), float64(b.Len())
				if na == 0 || nb == 0 {
					out = append(out, r)
					continue
				}
				xa := float64(countAbove(a, cat, threshold))
				xb := float64(countAbove(b, cat, threshold))
				r.PropA = xa / na
				r.PropB = xb / nb

				pooled := (xa + xb) / (na + nb)
				se := math.Sqrt(pooled * (1 - pooled) * (1/na + 1/nb))
				if se > 0 {
					r.ZScore = (r.PropA - r.PropB) / se
					r.PValue = 2 * normal.CDF(-math.Abs(r.ZScore))
					r.Significant = r.PValue < Alpha
				}
				out = append(out, r)
			}
		}
	}
	return out
}

// Significant filters results to the significant subset.
func Significant(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Significant {
			out = append(out, r)
		}
	}
	return out
}

func overallMedian(ds *dataset.Dataset, cat string) float64 {
	values := make([]float64, 0, ds.Len())
	for _, p := range ds.Posts {
		values = append(values, p.Scores[cat])
	}
	if len(values) == 0 {
		return 0
	}
	sort.Float64s(values)
	return stat.Quantile(0.5, stat.LinInterp, values, nil)
}

func countAbove(ds *dataset.Dataset, cat string, threshold float64) int {
	n := 0
	for _, p := range ds.Posts {
		if p.Scores[cat] > threshold {
			n++
		}
	}
	return n
}
