package network

import (
	"sort"
	"strconv"

	"github.com/crisislab/crisisnet/pkg/crisisnet/dataset"
)

// BuildSubredditCooccurrence connects subreddits that share authors.
// Edge weight is the number of distinct authors who posted in both
// communities; the deleted-author sentinel never counts. Each node
// carries the community's post count, total and average score, and
// unique author count.
func BuildSubredditCooccurrence(ds *dataset.Dataset) *Graph {
	g := NewUndirected("subreddit_cooccurrence")
	if !ds.Has(dataset.ColSubreddit) {
		return g
	}

	type stats struct {
		posts      int
		totalScore int
		authors    map[string]struct{}
	}
	bySub := make(map[string]*stats)
	for _, p := range ds.Posts {
		if p.Subreddit == "" {
			continue
		}
		st, ok := bySub[p.Subreddit]
		if !ok {
			st = &stats{authors: make(map[string]struct{})}
			bySub[p.Subreddit] = st
		}
		st.posts++
		st.totalScore += p.Score
		if p.Author != "" && p.Author != dataset.DeletedAuthor {
			st.authors[p.Author] = struct{}{}
		}
	}

	subs := make([]string, 0, len(bySub))
	for s := range bySub {
		subs = append(subs, s)
	}
	sort.Strings(subs)

	for _, s := range subs {
		st := bySub[s]
		g.AddNode(s)
		g.SetNodeAttr(s, "post_count", strconv.Itoa(st.posts))
		g.SetNodeAttr(s, "total_score", strconv.Itoa(st.totalScore))
		avg := 0.0
		if st.posts > 0 {
			avg = float64(st.totalScore) / float64(st.posts)
		}
		g.SetNodeAttr(s, "avg_score", strconv.FormatFloat(avg, 'g', -1, 64))
		g.SetNodeAttr(s, "unique_authors", strconv.Itoa(len(st.authors)))
	}

	for i := 0; i < len(subs); i++ {
		for j := i + 1; j < len(subs); j++ {
			shared := intersectCount(bySub[subs[i]].authors, bySub[subs[j]].authors)
			if shared == 0 {
				continue
			}
			g.SetEdge(subs[i], subs[j], float64(shared))
			g.SetEdgeAttr(subs[i], subs[j], "shared_authors", strconv.Itoa(shared))
		}
	}

	return g
}
