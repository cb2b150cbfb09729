package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/crisislab/crisisnet/pkg/crisisnet/dataset"
	"github.com/crisislab/crisisnet/pkg/crisisnet/network"
)

// star builds a hub node connected to n leaves.
func star(n int) *network.Graph {
	g := network.NewUndirected("star")
	for i := 0; i < n; i++ {
		g.SetEdge("hub", fmt.Sprintf("leaf%02d", i), 1)
	}
	return g
}

func TestHubsStarGraph(t *testing.T) {
	report := Hubs(star(10), HubOptions{TopK: 3})

	for _, ranking := range [][]NodeScore{
		report.Degree, report.Betweenness, report.Closeness, report.Eigenvector,
	} {
		if len(ranking) != 3 {
			t.Fatalf("ranking length = %d, want top 3", len(ranking))
		}
		if ranking[0].Label != "hub" {
			t.Errorf("top node = %s, want hub", ranking[0].Label)
		}
	}

	flags, ok := report.Flags["hub"]
	if !ok {
		t.Fatal("hub has no flags")
	}
	if !flags.StructuralHub || !flags.InformationBroker || !flags.CoreUser {
		t.Errorf("hub flags = %+v, want all three roles", flags)
	}
	if leaf, ok := report.Flags["leaf00"]; ok && leaf.StructuralHub {
		t.Error("leaves must not be structural hubs")
	}
}

func TestHubsDegreeCentrality(t *testing.T) {
	report := Hubs(star(4), HubOptions{TopK: 10})
	// Center degree 4 over 4 possible neighbors.
	if report.Degree[0].Score != 1 {
		t.Errorf("hub degree centrality = %v, want 1", report.Degree[0].Score)
	}
	last := report.Degree[len(report.Degree)-1]
	if last.Score != 0.25 {
		t.Errorf("leaf degree centrality = %v, want 0.25", last.Score)
	}
}

func TestHubsRankingDeterministic(t *testing.T) {
	a := Hubs(star(6), HubOptions{TopK: 7})
	b := Hubs(star(6), HubOptions{TopK: 7})
	for i := range a.Degree {
		if a.Degree[i] != b.Degree[i] {
			t.Fatalf("ranking differs between runs at %d", i)
		}
	}
}

func TestSampledBetweenness(t *testing.T) {
	// Path a-b-c-d-e: endpoints carry no shortest paths, the middle
	// node does, whichever pivots are sampled.
	g := network.NewUndirected("path")
	labels := []string{"a", "b", "c", "d", "e"}
	for i := 0; i+1 < len(labels); i++ {
		g.SetEdge(labels[i], labels[i+1], 1)
	}

	scores := sampledBetweenness(g, g.Nodes(), 3, 1)
	if scores["a"] != 0 || scores["e"] != 0 {
		t.Errorf("endpoints = %v/%v, want 0", scores["a"], scores["e"])
	}
	if scores["c"] <= 0 {
		t.Errorf("middle node = %v, want > 0", scores["c"])
	}
}

func TestHubsNegativeEdgeWeights(t *testing.T) {
	// Temporal edge weights scale with post scores, and Reddit scores
	// can be negative. Closeness must still come out instead of a
	// Dijkstra panic.
	t0 := time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)
	ds := dataset.New(
		dataset.ColPostID, dataset.ColAuthor,
		dataset.ColCreatedUTC, dataset.ColScore,
	)
	ds.Posts = []dataset.Post{
		{ID: "p1", Author: "alice", Score: -10, CreatedUTC: t0},
		{ID: "p2", Author: "alice", Score: -6, CreatedUTC: t0.Add(time.Hour)},
		{ID: "p3", Author: "alice", Score: 4, CreatedUTC: t0.Add(2 * time.Hour)},
	}
	g := network.BuildTemporalFlow(ds, 0)

	negative := false
	for _, e := range g.Edges() {
		if e.Weight < 0 {
			negative = true
		}
	}
	if !negative {
		t.Fatal("fixture should produce a negative edge weight")
	}

	report := Hubs(g, HubOptions{})
	if len(report.Closeness) == 0 {
		t.Error("closeness ranking missing")
	}
	for _, ns := range report.Closeness {
		if ns.Score < 0 {
			t.Errorf("closeness(%s) = %v, want >= 0", ns.Label, ns.Score)
		}
	}
}

func TestHubsEmptyGraph(t *testing.T) {
	report := Hubs(network.NewUndirected("empty"), HubOptions{})
	if len(report.Degree) != 0 || len(report.Flags) != 0 {
		t.Errorf("empty graph should yield an empty report: %+v", report)
	}
}
