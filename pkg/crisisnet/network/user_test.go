package network

import (
	"reflect"
	"testing"

	"github.com/crisislab/crisisnet/pkg/crisisnet/dataset"
)

func postsDataset(posts ...dataset.Post) *dataset.Dataset {
	ds := dataset.New(
		dataset.ColPostID, dataset.ColContent, dataset.ColAuthor,
		dataset.ColSubreddit, dataset.ColCreatedUTC, dataset.ColScore,
	)
	ds.Posts = posts
	return ds
}

func TestBuildUserInteraction(t *testing.T) {
	// alice and bob share floods; carol shares nothing; a deleted
	// author never becomes a node.
	ds := postsDataset(
		dataset.Post{ID: "1", Author: "alice", Subreddit: "floods"},
		dataset.Post{ID: "2", Author: "alice", Subreddit: "weather"},
		dataset.Post{ID: "3", Author: "bob", Subreddit: "floods"},
		dataset.Post{ID: "4", Author: "carol", Subreddit: "knitting"},
		dataset.Post{ID: "5", Author: "[deleted]", Subreddit: "floods"},
	)

	g := BuildUserInteraction(ds)
	if g.NodeCount() != 3 {
		t.Fatalf("nodes = %d, want 3", g.NodeCount())
	}
	if g.EdgeCount() != 1 {
		t.Fatalf("edges = %d, want 1", g.EdgeCount())
	}
	if w, ok := g.Weight("alice", "bob"); !ok || w != 1 {
		t.Errorf("weight(alice,bob) = %v %v, want 1", w, ok)
	}
	if attr, ok := g.EdgeAttr("alice", "bob", "shared_subreddits"); !ok || attr != "1" {
		t.Errorf("shared_subreddits = %q", attr)
	}
	if g.HasNode("[deleted]") {
		t.Error("deleted sentinel must not be a node")
	}
}

func TestBuildUserInteractionWeight(t *testing.T) {
	// Duplicate posts to the same subreddit do not inflate the weight.
	ds := postsDataset(
		dataset.Post{Author: "alice", Subreddit: "floods"},
		dataset.Post{Author: "alice", Subreddit: "floods"},
		dataset.Post{Author: "alice", Subreddit: "weather"},
		dataset.Post{Author: "bob", Subreddit: "floods"},
		dataset.Post{Author: "bob", Subreddit: "weather"},
	)

	g := BuildUserInteraction(ds)
	if w, _ := g.Weight("alice", "bob"); w != 2 {
		t.Errorf("weight = %v, want 2 distinct shared subreddits", w)
	}
}

func TestBuildUserInteractionIdempotent(t *testing.T) {
	ds := postsDataset(
		dataset.Post{Author: "alice", Subreddit: "floods"},
		dataset.Post{Author: "bob", Subreddit: "floods"},
		dataset.Post{Author: "carol", Subreddit: "weather"},
	)
	first := BuildUserInteraction(ds)
	second := BuildUserInteraction(ds)
	if !reflect.DeepEqual(first.Edges(), second.Edges()) {
		t.Error("repeated builds must produce identical edge lists")
	}
	if !reflect.DeepEqual(first.Nodes(), second.Nodes()) {
		t.Error("repeated builds must produce identical node lists")
	}
}

func TestBuildUserInteractionMissingColumns(t *testing.T) {
	ds := dataset.New(dataset.ColPostID)
	ds.Posts = []dataset.Post{{ID: "1", Author: "alice", Subreddit: "floods"}}
	g := BuildUserInteraction(ds)
	if g.NodeCount() != 0 {
		t.Errorf("missing columns should yield an empty graph, got %d nodes", g.NodeCount())
	}
}
