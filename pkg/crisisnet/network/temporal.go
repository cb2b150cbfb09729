package network

import (
	"strconv"
	"time"

	"github.com/crisislab/crisisnet/pkg/crisisnet/dataset"
)

// DefaultTimeWindow bounds how far forward the temporal builder scans
// for related posts.
const DefaultTimeWindow = 24 * time.Hour

// BuildTemporalFlow builds a directed information-flow graph: posts
// sorted by timestamp, with an edge from each post to any later post
// inside the window that shares its author or subreddit. Edge weight is
// temporal proximity (1 / (hours apart + 1)) scaled by the mean
// engagement score of the pair. The forward scan breaks early once a
// candidate falls outside the window, which is safe because rows are
// time-sorted.
func BuildTemporalFlow(ds *dataset.Dataset, window time.Duration) *Graph {
	g := NewDirected("temporal_flow")
	if window <= 0 {
		window = DefaultTimeWindow
	}
	if !ds.Has(dataset.ColCreatedUTC) {
		return g
	}

	sorted := &dataset.Dataset{Posts: make([]dataset.Post, len(ds.Posts))}
	copy(sorted.Posts, ds.Posts)
	for _, c := range ds.Columns() {
		sorted.AddColumn(c)
	}
	sorted.SortByTime()

	labels := postLabels(sorted)
	for i, p := range sorted.Posts {
		g.AddNode(labels[i])
		g.SetNodeAttr(labels[i], "author", p.Author)
		g.SetNodeAttr(labels[i], "subreddit", p.Subreddit)
		g.SetNodeAttr(labels[i], "score", strconv.Itoa(p.Score))
		if !p.CreatedUTC.IsZero() {
			g.SetNodeAttr(labels[i], "timestamp", p.CreatedUTC.UTC().Format(time.RFC3339))
		}
	}

	posts := sorted.Posts
	for i := range posts {
		if posts[i].CreatedUTC.IsZero() {
			continue
		}
		for j := i + 1; j < len(posts); j++ {
			delta := posts[j].CreatedUTC.Sub(posts[i].CreatedUTC)
			if delta > window {
				break
			}
			if !related(posts[i], posts[j]) {
				continue
			}

			hours := delta.Hours()
			temporalWeight := 1 / (hours + 1)
			engagement := (float64(posts[i].Score) + float64(posts[j].Score)) / 2
			g.SetEdge(labels[i], labels[j], temporalWeight*engagement)
			g.SetEdgeAttr(labels[i], labels[j], "time_diff_hours",
				strconv.FormatFloat(hours, 'g', -1, 64))
		}
	}

	return g
}

func related(a, b dataset.Post) bool {
	if a.Author != "" && a.Author == b.Author {
		return true
	}
	return a.Subreddit != "" && a.Subreddit == b.Subreddit
}
