package network

import (
	"math"
	"testing"
	"time"

	"github.com/crisislab/crisisnet/pkg/crisisnet/dataset"
)

func TestBuildTemporalFlow(t *testing.T) {
	t0 := time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)
	ds := postsDataset(
		dataset.Post{ID: "a", Author: "alice", Subreddit: "floods", Score: 10, CreatedUTC: t0},
		dataset.Post{ID: "b", Author: "bob", Subreddit: "floods", Score: 20, CreatedUTC: t0.Add(2 * time.Hour)},
		dataset.Post{ID: "c", Author: "alice", Subreddit: "weather", Score: 30, CreatedUTC: t0.Add(3 * time.Hour)},
		dataset.Post{ID: "d", Author: "dave", Subreddit: "knitting", Score: 5, CreatedUTC: t0.Add(4 * time.Hour)},
	)

	g := BuildTemporalFlow(ds, 0)
	if !g.Directed() {
		t.Fatal("temporal flow must be directed")
	}

	// a -> b: shared subreddit, 2h apart, mean score 15.
	w, ok := g.Weight("a", "b")
	if !ok {
		t.Fatal("expected edge a->b")
	}
	want := (1.0 / 3.0) * 15
	if math.Abs(w-want) > 1e-9 {
		t.Errorf("weight(a,b) = %v, want %v", w, want)
	}

	// a -> c: shared author.
	if _, ok := g.Weight("a", "c"); !ok {
		t.Error("expected edge a->c via shared author")
	}
	// Direction matters: no backward edge.
	if _, ok := g.Weight("b", "a"); ok {
		t.Error("unexpected backward edge b->a")
	}
	// d shares nothing.
	if g.Degree("d") != 0 {
		t.Error("d should have no outgoing edges")
	}
}

func TestBuildTemporalFlowWindow(t *testing.T) {
	t0 := time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)
	ds := postsDataset(
		dataset.Post{ID: "a", Author: "alice", Subreddit: "floods", Score: 1, CreatedUTC: t0},
		dataset.Post{ID: "b", Author: "alice", Subreddit: "floods", Score: 1, CreatedUTC: t0.Add(30 * time.Hour)},
	)

	if g := BuildTemporalFlow(ds, 0); g.EdgeCount() != 0 {
		t.Error("posts 30h apart must not connect within the default 24h window")
	}
	if g := BuildTemporalFlow(ds, 48*time.Hour); g.EdgeCount() != 1 {
		t.Error("a wider window should connect them")
	}
}

func TestBuildTemporalFlowSortsInput(t *testing.T) {
	t0 := time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)
	// Rows deliberately out of order; edges must still run forward in
	// time.
	ds := postsDataset(
		dataset.Post{ID: "late", Author: "alice", Subreddit: "floods", Score: 1, CreatedUTC: t0.Add(time.Hour)},
		dataset.Post{ID: "early", Author: "alice", Subreddit: "floods", Score: 1, CreatedUTC: t0},
	)
	g := BuildTemporalFlow(ds, 0)
	if _, ok := g.Weight("early", "late"); !ok {
		t.Error("expected edge early->late")
	}
	if _, ok := g.Weight("late", "early"); ok {
		t.Error("unexpected edge late->early")
	}
	// Input order is untouched.
	if ds.Posts[0].ID != "late" {
		t.Error("builder must not reorder the caller's dataset")
	}
}

func TestBuildTemporalFlowMissingTimestamps(t *testing.T) {
	ds := dataset.New(dataset.ColPostID, dataset.ColAuthor)
	ds.Posts = []dataset.Post{{ID: "a", Author: "alice"}}
	if g := BuildTemporalFlow(ds, 0); g.NodeCount() != 0 {
		t.Error("missing timestamp column should yield an empty graph")
	}
}
