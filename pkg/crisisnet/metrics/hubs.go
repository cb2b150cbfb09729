package metrics

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/stat"

	cnet "github.com/crisislab/crisisnet/pkg/crisisnet/network"
)

// HubPercentile is the default centrality percentile above which a
// node is flagged as a hub.
const HubPercentile = 0.9

// DefaultBetweennessSample bounds exact betweenness: larger graphs use
// pivot-sampled Brandes with this many sources.
const DefaultBetweennessSample = 100

// HubOptions configure hub identification.
type HubOptions struct {
	// TopK is the ranking length per measure. Zero means 10.
	TopK int
	// BetweennessSample overrides the exact-computation cutoff and
	// sample size. Zero means DefaultBetweennessSample.
	BetweennessSample int
	// Seed makes pivot sampling reproducible. Zero selects a fixed
	// default seed so repeated runs agree.
	Seed int64
	// Percentile is the hub flag threshold. Zero means HubPercentile.
	Percentile float64
}

// NodeScore is one node's value for a single centrality measure.
type NodeScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// HubFlags mark a node exceeding the hub percentile on a measure. The
// flags are independent; a node can hold several roles at once.
type HubFlags struct {
	StructuralHub     bool `json:"structural_hub"`     // degree
	InformationBroker bool `json:"information_broker"` // betweenness
	CoreUser          bool `json:"core_user"`          // closeness
}

// HubReport holds per-measure rankings and per-node hub roles.
type HubReport struct {
	Degree      []NodeScore `json:"degree"`
	Betweenness []NodeScore `json:"betweenness"`
	Closeness   []NodeScore `json:"closeness"`
	Eigenvector []NodeScore `json:"eigenvector"`

	Flags map[string]HubFlags `json:"flags"`
}

// Hubs ranks nodes by degree, betweenness, closeness, and eigenvector
// centrality and flags nodes above the hub percentile of each of the
// first three. Eigenvector centrality is best effort: power iteration
// that fails to make progress returns whatever it converged to.
func Hubs(g *cnet.Graph, opts HubOptions) *HubReport {
	if opts.TopK <= 0 {
		opts.TopK = 10
	}
	if opts.BetweennessSample <= 0 {
		opts.BetweennessSample = DefaultBetweennessSample
	}
	if opts.Seed == 0 {
		opts.Seed = 1
	}
	if opts.Percentile <= 0 || opts.Percentile >= 1 {
		opts.Percentile = HubPercentile
	}

	report := &HubReport{Flags: make(map[string]HubFlags)}
	labels := g.Nodes()
	if len(labels) == 0 {
		return report
	}

	degree := degreeCentrality(g, labels)
	betweenness := betweennessCentrality(g, labels, opts)
	closeness := closenessCentrality(g, labels)
	eigen := eigenvectorCentrality(g, labels)

	report.Degree = topK(degree, opts.TopK)
	report.Betweenness = topK(betweenness, opts.TopK)
	report.Closeness = topK(closeness, opts.TopK)
	report.Eigenvector = topK(eigen, opts.TopK)

	degThresh := percentile(degree, opts.Percentile)
	betThresh := percentile(betweenness, opts.Percentile)
	cloThresh := percentile(closeness, opts.Percentile)
	for _, label := range labels {
		flags := HubFlags{
			StructuralHub:     degree[label] > degThresh,
			InformationBroker: betweenness[label] > betThresh,
			CoreUser:          closeness[label] > cloThresh,
		}
		if flags.StructuralHub || flags.InformationBroker || flags.CoreUser {
			report.Flags[label] = flags
		}
	}

	return report
}

// degreeCentrality normalizes degree by the maximum possible (n-1).
func degreeCentrality(g *cnet.Graph, labels []string) map[string]float64 {
	out := make(map[string]float64, len(labels))
	denom := float64(len(labels) - 1)
	if denom <= 0 {
		for _, l := range labels {
			out[l] = 0
		}
		return out
	}
	if g.Directed() {
		counts := make(map[string]int, len(labels))
		for _, e := range g.Edges() {
			counts[e.From]++
			counts[e.To]++
		}
		for _, l := range labels {
			out[l] = float64(counts[l]) / denom
		}
		return out
	}
	for _, l := range labels {
		out[l] = float64(g.Degree(l)) / denom
	}
	return out
}

func betweennessCentrality(g *cnet.Graph, labels []string, opts HubOptions) map[string]float64 {
	if len(labels) <= opts.BetweennessSample {
		raw := network.Betweenness(g.Gonum())
		out := make(map[string]float64, len(labels))
		for _, l := range labels {
			out[l] = 0
		}
		for id, v := range raw {
			out[g.Label(id)] = v
		}
		return out
	}
	return sampledBetweenness(g, labels, opts.BetweennessSample, opts.Seed)
}

// sampledBetweenness runs unweighted Brandes accumulation from a random
// pivot subset and scales the result to estimate full betweenness.
func sampledBetweenness(g *cnet.Graph, labels []string, sample int, seed int64) map[string]float64 {
	adj := undirectedAdjacency(g)
	if g.Directed() {
		adj = outAdjacency(g, labels)
	}

	pivots := make([]string, len(labels))
	copy(pivots, labels)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(pivots), func(i, j int) { pivots[i], pivots[j] = pivots[j], pivots[i] })
	pivots = pivots[:sample]

	out := make(map[string]float64, len(labels))
	for _, l := range labels {
		out[l] = 0
	}

	sigma := make(map[string]float64, len(labels))
	dist := make(map[string]int, len(labels))
	delta := make(map[string]float64, len(labels))
	preds := make(map[string][]string, len(labels))

	for _, src := range pivots {
		for k := range sigma {
			delete(sigma, k)
		}
		for k := range dist {
			delete(dist, k)
		}
		for k := range delta {
			delete(delta, k)
		}
		for k := range preds {
			delete(preds, k)
		}

		var order []string
		sigma[src] = 1
		dist[src] = 0
		queue := []string{src}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			order = append(order, cur)
			for nb := range adj[cur] {
				d, seen := dist[nb]
				if !seen {
					dist[nb] = dist[cur] + 1
					d = dist[nb]
					queue = append(queue, nb)
				}
				if d == dist[cur]+1 {
					sigma[nb] += sigma[cur]
					preds[nb] = append(preds[nb], cur)
				}
			}
		}

		for i := len(order) - 1; i >= 0; i-- {
			w := order[i]
			for _, v := range preds[w] {
				delta[v] += sigma[v] / sigma[w] * (1 + delta[w])
			}
			if w != src {
				out[w] += delta[w]
			}
		}
	}

	scale := float64(len(labels)) / float64(sample)
	if !g.Directed() {
		// Undirected paths are counted from both endpoints.
		scale /= 2
	}
	for l := range out {
		out[l] *= scale
	}
	return out
}

func outAdjacency(g *cnet.Graph, labels []string) map[string]map[string]struct{} {
	adj := make(map[string]map[string]struct{}, len(labels))
	for _, l := range labels {
		adj[l] = make(map[string]struct{})
	}
	for _, e := range g.Edges() {
		adj[e.From][e.To] = struct{}{}
	}
	return adj
}

func closenessCentrality(g *cnet.Graph, labels []string) map[string]float64 {
	out := make(map[string]float64, len(labels))
	for _, l := range labels {
		out[l] = 0
	}
	if g.EdgeCount() == 0 {
		return out
	}
	view := shortestPathView(g)
	raw := network.Closeness(view, path.DijkstraAllPaths(view))
	for id, v := range raw {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			continue
		}
		out[g.Label(id)] = v
	}
	return out
}

// shortestPathView returns the gonum graph used for shortest-path
// measures. Temporal-flow weights follow post scores and can go below
// zero, which Dijkstra rejects, so negative weights are floored at
// zero on a copy.
func shortestPathView(g *cnet.Graph) graph.Graph {
	hasNegative := false
	for _, e := range g.Edges() {
		if e.Weight < 0 {
			hasNegative = true
			break
		}
	}
	if !hasNegative {
		return g.Gonum()
	}

	var dir *simple.WeightedDirectedGraph
	var und *simple.WeightedUndirectedGraph
	if g.Directed() {
		dir = simple.NewWeightedDirectedGraph(0, 0)
	} else {
		und = simple.NewWeightedUndirectedGraph(0, 0)
	}
	for _, e := range g.Edges() {
		u, _ := g.ID(e.From)
		v, _ := g.ID(e.To)
		w := e.Weight
		if w < 0 {
			w = 0
		}
		we := simple.WeightedEdge{F: simple.Node(u), T: simple.Node(v), W: w}
		if dir != nil {
			dir.SetWeightedEdge(we)
		} else {
			und.SetWeightedEdge(we)
		}
	}
	if dir != nil {
		return dir
	}
	return und
}

// eigenvectorCentrality runs power iteration on the unweighted
// undirected adjacency view, capped at 100 iterations.
func eigenvectorCentrality(g *cnet.Graph, labels []string) map[string]float64 {
	adj := undirectedAdjacency(g)
	vec := make(map[string]float64, len(labels))
	for _, l := range labels {
		vec[l] = 1
	}

	next := make(map[string]float64, len(labels))
	for iter := 0; iter < 100; iter++ {
		var norm float64
		for _, l := range labels {
			sum := 0.0
			for nb := range adj[l] {
				sum += vec[nb]
			}
			next[l] = sum
			norm += sum * sum
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			for _, l := range labels {
				vec[l] = 0
			}
			break
		}
		var diff float64
		for _, l := range labels {
			next[l] /= norm
			diff += math.Abs(next[l] - vec[l])
		}
		vec, next = next, vec
		if diff < 1e-6 {
			break
		}
	}
	return vec
}

// topK returns the k highest-scoring nodes, ties broken by label for
// deterministic output.
func topK(scores map[string]float64, k int) []NodeScore {
	out := make([]NodeScore, 0, len(scores))
	for l, s := range scores {
		out = append(out, NodeScore{Label: l, Score: s})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Label < out[j].Label
	})
	if len(out) > k {
		out = out[:k]
	}
	return out
}

// percentile returns the empirical quantile of the score distribution.
func percentile(scores map[string]float64, p float64) float64 {
	vals := make([]float64, 0, len(scores))
	for _, v := range scores {
		vals = append(vals, v)
	}
	if len(vals) == 0 {
		return 0
	}
	sort.Float64s(vals)
	return stat.Quantile(p, stat.Empirical, vals, nil)
}
