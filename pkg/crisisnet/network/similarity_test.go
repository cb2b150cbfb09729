package network

import (
	"testing"

	"github.com/crisislab/crisisnet/pkg/crisisnet/dataset"
)

func TestBuildContentSimilarityIdenticalTexts(t *testing.T) {
	ds := postsDataset(
		dataset.Post{ID: "a", Content: "flood warning river rising downtown"},
		dataset.Post{ID: "b", Content: "flood warning river rising downtown"},
		dataset.Post{ID: "c", Content: "completely unrelated knitting pattern tips"},
	)

	g := BuildContentSimilarity(ds, 0)
	if g.NodeCount() != 3 {
		t.Fatalf("nodes = %d, want 3", g.NodeCount())
	}
	w, ok := g.Weight("a", "b")
	if !ok {
		t.Fatal("identical texts should be connected")
	}
	if w < 0.99 || w > 1.01 {
		t.Errorf("similarity of identical texts = %v, want ~1", w)
	}
	if _, ok := g.Weight("a", "c"); ok {
		t.Error("unrelated texts should not be connected")
	}
}

func TestBuildContentSimilarityDegenerateCorpus(t *testing.T) {
	// Every term appears in a single document, so min_df=2 filters the
	// whole vocabulary.
	ds := postsDataset(
		dataset.Post{ID: "a", Content: "alpha bravo"},
		dataset.Post{ID: "b", Content: "charlie delta"},
	)
	g := BuildContentSimilarity(ds, 0)
	if g.NodeCount() != 0 || g.EdgeCount() != 0 {
		t.Errorf("degenerate corpus should yield an empty graph, got %d/%d",
			g.NodeCount(), g.EdgeCount())
	}
}

func TestBuildContentSimilarityThreshold(t *testing.T) {
	// Shared vocabulary with different term counts: cosine strictly
	// between the two thresholds.
	ds := postsDataset(
		dataset.Post{ID: "a", Content: "flood flood warning"},
		dataset.Post{ID: "b", Content: "flood warning warning"},
	)
	strict := BuildContentSimilarity(ds, 0.99)
	if strict.EdgeCount() != 0 {
		t.Error("overlap should not pass a 0.99 threshold")
	}
	loose := BuildContentSimilarity(ds, 0.01)
	if loose.EdgeCount() != 1 {
		t.Error("overlap should pass a 0.01 threshold")
	}
}

func TestBuildContentSimilarityMissingColumn(t *testing.T) {
	ds := dataset.New(dataset.ColPostID)
	ds.Posts = []dataset.Post{{ID: "a", Content: "text"}}
	if g := BuildContentSimilarity(ds, 0); g.NodeCount() != 0 {
		t.Error("missing content column should yield an empty graph")
	}
}

func TestVectorizeL2Norm(t *testing.T) {
	vectors := vectorize([]string{
		"flood water flood water",
		"flood water levels",
		"water levels rising",
	}, defaultTFIDFOptions())
	if vectors == nil {
		t.Fatal("expected vectors")
	}
	for i, v := range vectors {
		var norm float64
		for _, x := range v {
			norm += x * x
		}
		if len(v) > 0 && (norm < 0.999 || norm > 1.001) {
			t.Errorf("vector %d norm = %v, want 1", i, norm)
		}
	}
}

func TestNgramsBigrams(t *testing.T) {
	opts := defaultTFIDFOptions()
	terms := ngrams("flood warning issued", opts)
	want := map[string]bool{
		"flood": true, "warning": true, "issued": true,
		"flood warning": true, "warning issued": true,
	}
	if len(terms) != len(want) {
		t.Fatalf("terms = %v", terms)
	}
	for _, term := range terms {
		if !want[term] {
			t.Errorf("unexpected term %q", term)
		}
	}
}

func TestNgramsStopwordsFiltered(t *testing.T) {
	terms := ngrams("the flood and the river", defaultTFIDFOptions())
	for _, term := range terms {
		if term == "the" || term == "and" {
			t.Errorf("stopword %q survived filtering", term)
		}
	}
}
