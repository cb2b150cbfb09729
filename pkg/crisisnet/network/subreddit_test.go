package network

import (
	"testing"

	"github.com/crisislab/crisisnet/pkg/crisisnet/dataset"
)

func TestBuildSubredditCooccurrence(t *testing.T) {
	ds := postsDataset(
		dataset.Post{Author: "alice", Subreddit: "floods", Score: 10},
		dataset.Post{Author: "alice", Subreddit: "weather", Score: 20},
		dataset.Post{Author: "bob", Subreddit: "floods", Score: 30},
		dataset.Post{Author: "bob", Subreddit: "weather", Score: 0},
		dataset.Post{Author: "carol", Subreddit: "floods", Score: 2},
		dataset.Post{Author: "[deleted]", Subreddit: "floods", Score: 1},
		dataset.Post{Author: "[deleted]", Subreddit: "weather", Score: 1},
	)

	g := BuildSubredditCooccurrence(ds)
	if g.NodeCount() != 2 {
		t.Fatalf("nodes = %d, want 2", g.NodeCount())
	}

	// alice and bob post in both; the deleted sentinel never counts.
	if w, ok := g.Weight("floods", "weather"); !ok || w != 2 {
		t.Errorf("weight = %v %v, want 2", w, ok)
	}
	if attr, _ := g.EdgeAttr("floods", "weather", "shared_authors"); attr != "2" {
		t.Errorf("shared_authors = %q, want 2", attr)
	}

	if v, _ := g.NodeAttr("floods", "post_count"); v != "4" {
		t.Errorf("floods post_count = %q, want 4", v)
	}
	if v, _ := g.NodeAttr("floods", "total_score"); v != "43" {
		t.Errorf("floods total_score = %q, want 43", v)
	}
	if v, _ := g.NodeAttr("floods", "avg_score"); v != "10.75" {
		t.Errorf("floods avg_score = %q, want 10.75", v)
	}
	if v, _ := g.NodeAttr("floods", "unique_authors"); v != "3" {
		t.Errorf("floods unique_authors = %q, want 3", v)
	}
}

func TestBuildSubredditCooccurrenceNoOverlap(t *testing.T) {
	ds := postsDataset(
		dataset.Post{Author: "alice", Subreddit: "floods"},
		dataset.Post{Author: "bob", Subreddit: "weather"},
	)
	g := BuildSubredditCooccurrence(ds)
	if g.NodeCount() != 2 || g.EdgeCount() != 0 {
		t.Errorf("got %d nodes, %d edges; want isolated nodes only",
			g.NodeCount(), g.EdgeCount())
	}
}
