package liwc

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/crisislab/crisisnet/pkg/crisisnet/dataset"
	"github.com/crisislab/crisisnet/pkg/crisisnet/lexicon"
)

// Enricher applies the document scorer across a dataset, attaching one
// score column per lexicon category and recording corpus base rates.
//
// Rows are independent: the only shared state is the immutable lexicon,
// so per-row scoring is safe to parallelize, though the current
// implementation is a single pass.
type Enricher struct {
	lex    *lexicon.Lexicon
	scorer *Scorer

	// baseRates holds the per-category corpus median, captured by the
	// last Enrich call and used by Normalize.
	baseRates map[string]float64
}

// NewEnricher creates an enricher over the given lexicon.
func NewEnricher(lex *lexicon.Lexicon) *Enricher {
	return &Enricher{
		lex:    lex,
		scorer: NewScorer(lex),
	}
}

// Enrich scores every row's content and attaches per-category columns
// in lexicon declaration order. Row count is unchanged; column count
// grows by exactly the number of categories. Missing content scores
// all-zero rather than failing the row.
func (e *Enricher) Enrich(ds *dataset.Dataset) {
	cats := e.lex.Categories()

	for i := range ds.Posts {
		ds.Posts[i].Scores = e.scorer.Score(ds.Posts[i].Content)
	}
	ds.ScoreOrder = cats

	// Median base rates, robust to the heavy right tail of lexical
	// percentages.
	e.baseRates = make(map[string]float64, len(cats))
	for _, cat := range cats {
		values := make([]float64, 0, len(ds.Posts))
		for _, p := range ds.Posts {
			values = append(values, p.Scores[cat])
		}
		e.baseRates[cat] = median(values)
	}
}

// BaseRate returns the corpus base rate recorded for a category by the
// last Enrich call.
func (e *Enricher) BaseRate(category string) float64 {
	return e.baseRates[category]
}

// Normalize derives a "<category>_nls" column per category:
// (raw - base) / base * 100. A zero base rate yields 0, never NaN or
// Inf. Must be called after Enrich.
func (e *Enricher) Normalize(ds *dataset.Dataset) {
	for _, cat := range e.lex.Categories() {
		base := e.baseRates[cat]
		values := make([]float64, len(ds.Posts))
		if base > 0 {
			for i, p := range ds.Posts {
				values[i] = (p.Scores[cat] - base) / base * 100
			}
		}
		ds.SetDerived(cat+"_nls", values)
	}
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.LinInterp, sorted, nil)
}
