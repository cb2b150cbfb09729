package network

import (
	"sort"
	"strconv"

	"github.com/crisislab/crisisnet/pkg/crisisnet/dataset"
)

// BuildUserInteraction connects authors who posted in at least one
// common subreddit. Edge weight is the number of shared subreddits;
// duplicate posts to the same subreddit do not double count. The
// deleted-author sentinel is excluded.
//
// Construction is O(U^2) over distinct authors. That is acceptable at
// the dataset scales this toolkit handles (tens of thousands of rows);
// larger corpora need a different algorithm, which would change the
// output semantics and is deliberately not attempted here.
func BuildUserInteraction(ds *dataset.Dataset) *Graph {
	g := NewUndirected("user_interaction")
	if !ds.Has(dataset.ColAuthor) || !ds.Has(dataset.ColSubreddit) {
		return g
	}

	// Author -> distinct subreddit set.
	membership := make(map[string]map[string]struct{})
	for _, p := range ds.Posts {
		if p.Author == "" || p.Author == dataset.DeletedAuthor {
			continue
		}
		if p.Subreddit == "" {
			continue
		}
		set, ok := membership[p.Author]
		if !ok {
			set = make(map[string]struct{})
			membership[p.Author] = set
		}
		set[p.Subreddit] = struct{}{}
	}

	authors := make([]string, 0, len(membership))
	for a := range membership {
		authors = append(authors, a)
	}
	sort.Strings(authors)

	for i := 0; i < len(authors); i++ {
		for j := i + 1; j < len(authors); j++ {
			shared := intersectCount(membership[authors[i]], membership[authors[j]])
			if shared == 0 {
				continue
			}
			g.SetEdge(authors[i], authors[j], float64(shared))
			g.SetEdgeAttr(authors[i], authors[j], "shared_subreddits", strconv.Itoa(shared))
		}
	}

	return g
}

func intersectCount(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}
