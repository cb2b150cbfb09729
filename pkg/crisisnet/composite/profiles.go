package composite

import "github.com/crisislab/crisisnet/pkg/crisisnet/dataset"

// Profile dimensions group lexical categories by the psychological
// process they track.
var profileDims = []struct {
	Name string
	Cats []string
}{
	{"cognitive", []string{"cogproc", "insight", "causation", "certainty", "tentative", "differentiation"}},
	{"emotional", []string{"affect", "posemo", "negemo", "anx", "anger", "sad"}},
	{"behavioral", []string{"motion", "work", "leisure", "home", "money"}},
	{"perceptual", []string{"percept", "see", "hear", "feel"}},
}

// CategoryProfile is the distribution of one lexical category within
// one crisis.
type CategoryProfile struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
	P75    float64 `json:"p75"`
	P90    float64 `json:"p90"`
}

// CrisisProfile is one crisis's linguistic fingerprint, grouped by
// profile dimension.
type CrisisProfile struct {
	CrisisID   string                                `json:"crisis_id"`
	Posts      int                                   `json:"posts"`
	Dimensions map[string]map[string]CategoryProfile `json:"dimensions"`
}

// Profiles computes per-crisis category distributions over an enriched
// dataset. Datasets without a crisis column yield a single profile
// keyed "all".
func Profiles(ds *dataset.Dataset) []CrisisProfile {
	crises := ds.Crises()
	if len(crises) == 0 {
		return []CrisisProfile{profileOf(ds, "all")}
	}
	out := make([]CrisisProfile, 0, len(crises))
	for _, id := range crises {
		out = append(out, profileOf(ds.FilterCrisis(id), id))
	}
	return out
}

func profileOf(ds *dataset.Dataset, id string) CrisisProfile {
	present := make(map[string]bool, len(ds.ScoreOrder))
	for _, c := range ds.ScoreOrder {
		present[c] = true
	}

	cp := CrisisProfile{
		CrisisID:   id,
		Posts:      ds.Len(),
		Dimensions: make(map[string]map[string]CategoryProfile),
	}
	for _, dim := range profileDims {
		byCat := make(map[string]CategoryProfile)
		for _, cat := range dim.Cats {
			if !present[cat] {
				continue
			}
			values := make([]float64, ds.Len())
			for i, p := range ds.Posts {
				values[i] = p.Scores[cat]
			}
			cs := describeValues(values)
			byCat[cat] = CategoryProfile{
				Mean:   cs.Mean,
				Median: cs.Median,
				Std:    cs.Std,
				P75:    quantileOf(values, 0.75),
				P90:    cs.P90,
			}
		}
		if len(byCat) > 0 {
			cp.Dimensions[dim.Name] = byCat
		}
	}
	return cp
}
