package network

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// Graph is a string-labelled weighted graph over gonum's simple graph
// types. Nodes are users, posts, or subreddits depending on the builder
// that produced it. A graph is exclusively owned by its builder
// invocation and handed to the metrics engine by reference; nothing
// mutates it concurrently.
type Graph struct {
	Name string

	directed bool
	und      *simple.WeightedUndirectedGraph
	dir      *simple.WeightedDirectedGraph

	ids    map[string]int64
	labels map[int64]string
	next   int64

	nodeAttrs map[string]map[string]string
	edgeAttrs map[[2]int64]map[string]string
}

// Edge is one weighted edge with resolved labels.
type Edge struct {
	From   string
	To     string
	Weight float64
}

// NewUndirected creates an empty undirected graph.
func NewUndirected(name string) *Graph {
	return &Graph{
		Name:      name,
		und:       simple.NewWeightedUndirectedGraph(0, 0),
		ids:       make(map[string]int64),
		labels:    make(map[int64]string),
		nodeAttrs: make(map[string]map[string]string),
		edgeAttrs: make(map[[2]int64]map[string]string),
	}
}

// NewDirected creates an empty directed graph.
func NewDirected(name string) *Graph {
	return &Graph{
		Name:      name,
		directed:  true,
		dir:       simple.NewWeightedDirectedGraph(0, 0),
		ids:       make(map[string]int64),
		labels:    make(map[int64]string),
		nodeAttrs: make(map[string]map[string]string),
		edgeAttrs: make(map[[2]int64]map[string]string),
	}
}

// Directed reports whether the graph is directed.
func (g *Graph) Directed() bool { return g.directed }

// AddNode ensures a node exists for the label and returns its id.
func (g *Graph) AddNode(label string) int64 {
	if id, ok := g.ids[label]; ok {
		return id
	}
	id := g.next
	g.next++
	g.ids[label] = id
	g.labels[id] = label
	if g.directed {
		g.dir.AddNode(simple.Node(id))
	} else {
		g.und.AddNode(simple.Node(id))
	}
	return id
}

// HasNode reports whether a label is present.
func (g *Graph) HasNode(label string) bool {
	_, ok := g.ids[label]
	return ok
}

// Label resolves a gonum node id back to its label.
func (g *Graph) Label(id int64) string { return g.labels[id] }

// ID resolves a label to its gonum node id.
func (g *Graph) ID(label string) (int64, bool) {
	id, ok := g.ids[label]
	return id, ok
}

// SetEdge adds or replaces the edge between two labels (from→to when
// directed) with the given weight. Self-loops are ignored.
func (g *Graph) SetEdge(from, to string, weight float64) {
	if from == to {
		return
	}
	u := g.AddNode(from)
	v := g.AddNode(to)
	if g.directed {
		g.dir.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(u), T: simple.Node(v), W: weight})
	} else {
		g.und.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(u), T: simple.Node(v), W: weight})
	}
}

// Weight returns the weight of the edge between two labels.
func (g *Graph) Weight(from, to string) (float64, bool) {
	u, ok := g.ids[from]
	if !ok {
		return 0, false
	}
	v, ok := g.ids[to]
	if !ok {
		return 0, false
	}
	if g.directed {
		if e := g.dir.WeightedEdge(u, v); e != nil {
			return e.Weight(), true
		}
		return 0, false
	}
	if e := g.und.WeightedEdge(u, v); e != nil {
		return e.Weight(), true
	}
	return 0, false
}

// SetNodeAttr attaches a string attribute to a node, creating the node
// if needed.
func (g *Graph) SetNodeAttr(label, key, value string) {
	g.AddNode(label)
	attrs, ok := g.nodeAttrs[label]
	if !ok {
		attrs = make(map[string]string)
		g.nodeAttrs[label] = attrs
	}
	attrs[key] = value
}

// NodeAttr returns a node attribute.
func (g *Graph) NodeAttr(label, key string) (string, bool) {
	v, ok := g.nodeAttrs[label][key]
	return v, ok
}

// SetEdgeAttr attaches a string attribute to an existing edge.
func (g *Graph) SetEdgeAttr(from, to, key, value string) {
	u, ok := g.ids[from]
	if !ok {
		return
	}
	v, ok := g.ids[to]
	if !ok {
		return
	}
	k := g.edgeKey(u, v)
	attrs, ok := g.edgeAttrs[k]
	if !ok {
		attrs = make(map[string]string)
		g.edgeAttrs[k] = attrs
	}
	attrs[key] = value
}

// EdgeAttr returns an edge attribute.
func (g *Graph) EdgeAttr(from, to, key string) (string, bool) {
	u, ok := g.ids[from]
	if !ok {
		return "", false
	}
	v, ok := g.ids[to]
	if !ok {
		return "", false
	}
	val, ok := g.edgeAttrs[g.edgeKey(u, v)][key]
	return val, ok
}

// NodeAttrs returns a copy of all attributes on a node.
func (g *Graph) NodeAttrs(label string) map[string]string {
	attrs := g.nodeAttrs[label]
	if len(attrs) == 0 {
		return nil
	}
	out := make(map[string]string, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	return out
}

// EdgeAttrs returns a copy of all attributes on an edge.
func (g *Graph) EdgeAttrs(from, to string) map[string]string {
	u, ok := g.ids[from]
	if !ok {
		return nil
	}
	v, ok := g.ids[to]
	if !ok {
		return nil
	}
	attrs := g.edgeAttrs[g.edgeKey(u, v)]
	if len(attrs) == 0 {
		return nil
	}
	out := make(map[string]string, len(attrs))
	for k, val := range attrs {
		out[k] = val
	}
	return out
}

func (g *Graph) edgeKey(u, v int64) [2]int64 {
	if !g.directed && u > v {
		u, v = v, u
	}
	return [2]int64{u, v}
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.ids) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	var it graph.Edges
	if g.directed {
		it = g.dir.Edges()
	} else {
		it = g.und.Edges()
	}
	n := 0
	for it.Next() {
		n++
	}
	return n
}

// Nodes returns all labels in sorted order for deterministic output.
func (g *Graph) Nodes() []string {
	out := make([]string, 0, len(g.ids))
	for label := range g.ids {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}

// Edges returns all weighted edges. Order is deterministic: sorted by
// from-label then to-label (undirected edges reported with the smaller
// label first).
func (g *Graph) Edges() []Edge {
	var out []Edge
	if g.directed {
		it := g.dir.WeightedEdges()
		for it.Next() {
			e := it.WeightedEdge()
			out = append(out, Edge{
				From:   g.labels[e.From().ID()],
				To:     g.labels[e.To().ID()],
				Weight: e.Weight(),
			})
		}
	} else {
		it := g.und.WeightedEdges()
		for it.Next() {
			e := it.WeightedEdge()
			from, to := g.labels[e.From().ID()], g.labels[e.To().ID()]
			if from > to {
				from, to = to, from
			}
			out = append(out, Edge{From: from, To: to, Weight: e.Weight()})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}

// Gonum exposes the underlying gonum graph for metric computation.
func (g *Graph) Gonum() graph.Graph {
	if g.directed {
		return g.dir
	}
	return g.und
}

// GonumUndirected returns the undirected gonum graph, or nil for
// directed graphs.
func (g *Graph) GonumUndirected() graph.Undirected {
	if g.directed {
		return nil
	}
	return g.und
}

// GonumDirected returns the directed gonum graph, or nil for
// undirected graphs.
func (g *Graph) GonumDirected() graph.Directed {
	if !g.directed {
		return nil
	}
	return g.dir
}

// Degree returns the (out-)degree of a label.
func (g *Graph) Degree(label string) int {
	id, ok := g.ids[label]
	if !ok {
		return 0
	}
	var it graph.Nodes
	if g.directed {
		it = g.dir.From(id)
	} else {
		it = g.und.From(id)
	}
	n := 0
	for it.Next() {
		n++
	}
	return n
}
