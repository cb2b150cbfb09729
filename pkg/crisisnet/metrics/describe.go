// Package metrics computes structural summaries and hub rankings for
// the graphs produced by the network builders.
//
// Design notes:
//   - Centrality and community computation run on gonum's graph stack;
//     only measures gonum does not provide (clustering coefficient,
//     BFS hop-count path lengths, sampled betweenness, eigenvector
//     power iteration) are computed in-package.
//   - Degenerate inputs (empty graph, no edges, disconnected graphs)
//     yield zero-valued fields, never errors. Analysis of a sparse
//     crisis window must not abort the pipeline.
package metrics

import (
	"gonum.org/v1/gonum/graph/community"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/crisislab/crisisnet/pkg/crisisnet/network"
)

// Summary describes one graph's structure. Directed-only and
// undirected-only fields are zero when they do not apply.
type Summary struct {
	Name     string  `json:"name"`
	Directed bool    `json:"directed"`
	Nodes    int     `json:"nodes"`
	Edges    int     `json:"edges"`
	Density  float64 `json:"density"`

	Connected        bool `json:"connected"`
	Components       int  `json:"components"`
	LargestComponent int  `json:"largest_component"`

	AvgDegree    float64 `json:"avg_degree"`
	MaxDegree    int     `json:"max_degree"`
	AvgInDegree  float64 `json:"avg_in_degree,omitempty"`
	AvgOutDegree float64 `json:"avg_out_degree,omitempty"`

	AvgClustering float64 `json:"avg_clustering,omitempty"`
	Transitivity  float64 `json:"transitivity,omitempty"`

	// Path statistics are computed by BFS hop count on the largest
	// (weakly) connected component; zero when no component has more
	// than one node.
	AvgPathLength float64 `json:"avg_path_length"`
	Diameter      int     `json:"diameter"`

	Communities int     `json:"communities,omitempty"`
	Modularity  float64 `json:"modularity,omitempty"`
}

// Describe computes the structural summary for a graph.
func Describe(g *network.Graph) Summary {
	s := Summary{
		Name:     g.Name,
		Directed: g.Directed(),
		Nodes:    g.NodeCount(),
		Edges:    g.EdgeCount(),
	}
	if s.Nodes == 0 {
		return s
	}

	n := float64(s.Nodes)
	if s.Nodes > 1 {
		if s.Directed {
			s.Density = float64(s.Edges) / (n * (n - 1))
		} else {
			s.Density = 2 * float64(s.Edges) / (n * (n - 1))
		}
	}

	adj := undirectedAdjacency(g)
	comps := componentsOf(g, adj)
	s.Components = len(comps)
	for _, c := range comps {
		if len(c) > s.LargestComponent {
			s.LargestComponent = len(c)
		}
	}
	s.Connected = s.Components == 1

	degreeStats(g, &s)
	if !s.Directed {
		s.AvgClustering, s.Transitivity = clustering(adj)
	}
	s.AvgPathLength, s.Diameter = pathStats(adj, largest(comps))

	if !s.Directed && s.Edges > 0 {
		reduced := community.Modularize(g.GonumUndirected(), 1, nil)
		comms := reduced.Communities()
		s.Communities = len(comms)
		s.Modularity = community.Q(g.GonumUndirected(), comms, 1)
	}

	return s
}

func degreeStats(g *network.Graph, s *Summary) {
	if s.Directed {
		// Out-degree via Graph.Degree; in-degree from the edge list so
		// both averages come from the same traversal source.
		var in = make(map[string]int)
		var out = make(map[string]int)
		for _, e := range g.Edges() {
			out[e.From]++
			in[e.To]++
		}
		var sumIn, sumOut, max int
		for _, label := range g.Nodes() {
			d := in[label] + out[label]
			if d > max {
				max = d
			}
			sumIn += in[label]
			sumOut += out[label]
		}
		n := float64(s.Nodes)
		s.AvgInDegree = float64(sumIn) / n
		s.AvgOutDegree = float64(sumOut) / n
		s.AvgDegree = float64(sumIn+sumOut) / n
		s.MaxDegree = max
		return
	}
	var sum, max int
	for _, label := range g.Nodes() {
		d := g.Degree(label)
		sum += d
		if d > max {
			max = d
		}
	}
	s.AvgDegree = float64(sum) / float64(s.Nodes)
	s.MaxDegree = max
}

// undirectedAdjacency builds a label-keyed neighbor-set view, ignoring
// edge direction. All hand-rolled measures run on this view.
func undirectedAdjacency(g *network.Graph) map[string]map[string]struct{} {
	adj := make(map[string]map[string]struct{}, g.NodeCount())
	for _, label := range g.Nodes() {
		adj[label] = make(map[string]struct{})
	}
	for _, e := range g.Edges() {
		adj[e.From][e.To] = struct{}{}
		adj[e.To][e.From] = struct{}{}
	}
	return adj
}

// componentsOf returns the (weakly) connected components as label
// slices. Undirected graphs go through gonum's topo package; directed
// graphs use a BFS over the undirected adjacency view.
func componentsOf(g *network.Graph, adj map[string]map[string]struct{}) [][]string {
	if !g.Directed() {
		var out [][]string
		for _, comp := range topo.ConnectedComponents(g.GonumUndirected()) {
			labels := make([]string, len(comp))
			for i, node := range comp {
				labels[i] = g.Label(node.ID())
			}
			out = append(out, labels)
		}
		return out
	}

	visited := make(map[string]bool, len(adj))
	var out [][]string
	for _, start := range g.Nodes() {
		if visited[start] {
			continue
		}
		var comp []string
		queue := []string{start}
		visited[start] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			comp = append(comp, cur)
			for nb := range adj[cur] {
				if !visited[nb] {
					visited[nb] = true
					queue = append(queue, nb)
				}
			}
		}
		out = append(out, comp)
	}
	return out
}

func largest(comps [][]string) []string {
	var best []string
	for _, c := range comps {
		if len(c) > len(best) {
			best = c
		}
	}
	return best
}

// clustering returns the average local clustering coefficient and the
// global transitivity (closed triplets over all triplets).
func clustering(adj map[string]map[string]struct{}) (avg, transitivity float64) {
	if len(adj) == 0 {
		return 0, 0
	}
	var coeffSum float64
	var closed, triplets int
	for _, neighbors := range adj {
		k := len(neighbors)
		if k < 2 {
			continue
		}
		links := 0
		labels := make([]string, 0, k)
		for nb := range neighbors {
			labels = append(labels, nb)
		}
		for i := 0; i < len(labels); i++ {
			for j := i + 1; j < len(labels); j++ {
				if _, ok := adj[labels[i]][labels[j]]; ok {
					links++
				}
			}
		}
		coeffSum += 2 * float64(links) / float64(k*(k-1))
		closed += links
		triplets += k * (k - 1) / 2
	}
	avg = coeffSum / float64(len(adj))
	if triplets > 0 {
		transitivity = float64(closed) / float64(triplets)
	}
	return avg, transitivity
}

// pathStats computes the mean shortest-path length and diameter over
// one component by BFS hop counts from every node.
func pathStats(adj map[string]map[string]struct{}, comp []string) (avg float64, diameter int) {
	if len(comp) < 2 {
		return 0, 0
	}
	inComp := make(map[string]bool, len(comp))
	for _, label := range comp {
		inComp[label] = true
	}

	var sum, pairs int
	dist := make(map[string]int, len(comp))
	for _, src := range comp {
		for k := range dist {
			delete(dist, k)
		}
		dist[src] = 0
		queue := []string{src}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for nb := range adj[cur] {
				if !inComp[nb] {
					continue
				}
				if _, seen := dist[nb]; seen {
					continue
				}
				dist[nb] = dist[cur] + 1
				queue = append(queue, nb)
			}
		}
		for dst, d := range dist {
			if dst == src {
				continue
			}
			sum += d
			pairs++
			if d > diameter {
				diameter = d
			}
		}
	}
	if pairs == 0 {
		return 0, 0
	}
	return float64(sum) / float64(pairs), diameter
}
