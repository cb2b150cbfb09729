package network

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/crisislab/crisisnet/pkg/crisisnet/dataset"
)

// DefaultSimilarityThreshold is the cosine similarity above which two
// posts are connected in the content network.
const DefaultSimilarityThreshold = 0.3

// BuildContentSimilarity connects posts whose TF-IDF cosine similarity
// exceeds the threshold (pass <= 0 for the default). Nodes are post
// ids, annotated with title/author/subreddit/score. A corpus too small
// or empty to vectorize yields an empty graph, never an error.
//
// Pairwise similarity is O(P^2) over posts; see BuildUserInteraction
// for the scale this is intended for.
func BuildContentSimilarity(ds *dataset.Dataset, threshold float64) *Graph {
	g := NewUndirected("content_similarity")
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}
	if !ds.Has(dataset.ColContent) {
		return g
	}

	texts := make([]string, len(ds.Posts))
	for i, p := range ds.Posts {
		texts[i] = strings.ToLower(p.Content)
	}

	vectors := vectorize(texts, defaultTFIDFOptions())
	if vectors == nil {
		return g
	}

	labels := postLabels(ds)
	for i, p := range ds.Posts {
		g.AddNode(labels[i])
		g.SetNodeAttr(labels[i], "title", p.Title)
		g.SetNodeAttr(labels[i], "author", p.Author)
		g.SetNodeAttr(labels[i], "subreddit", p.Subreddit)
		g.SetNodeAttr(labels[i], "score", strconv.Itoa(p.Score))
	}

	for i := 0; i < len(vectors); i++ {
		for j := i + 1; j < len(vectors); j++ {
			sim := cosine(vectors[i], vectors[j])
			if sim <= threshold {
				continue
			}
			g.SetEdge(labels[i], labels[j], sim)
			g.SetEdgeAttr(labels[i], labels[j], "similarity", strconv.FormatFloat(sim, 'g', -1, 64))
		}
	}

	return g
}

// postLabels returns a stable node label per row: the post id when the
// column is present, otherwise a positional fallback.
func postLabels(ds *dataset.Dataset) []string {
	labels := make([]string, len(ds.Posts))
	useID := ds.Has(dataset.ColPostID)
	for i, p := range ds.Posts {
		if useID && p.ID != "" {
			labels[i] = p.ID
		} else {
			labels[i] = fmt.Sprintf("post_%d", i)
		}
	}
	return labels
}
