// Package graphio reads and writes graphs in a minimal GraphML subset:
// node ids, directedness, an edge weight key, and string attributes.
// Encoding then decoding preserves node count, edge count, and weights
// exactly.
package graphio

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/crisislab/crisisnet/pkg/crisisnet/internalerr"
	"github.com/crisislab/crisisnet/pkg/crisisnet/network"
)

const graphmlNS = "http://graphml.graphdrawing.org/xmlns"

const weightKey = "weight"

type xmlGraphML struct {
	XMLName xml.Name `xml:"graphml"`
	XMLNS   string   `xml:"xmlns,attr"`
	Keys    []xmlKey `xml:"key"`
	Graph   xmlGraph `xml:"graph"`
}

type xmlKey struct {
	ID       string `xml:"id,attr"`
	For      string `xml:"for,attr"`
	AttrName string `xml:"attr.name,attr"`
	AttrType string `xml:"attr.type,attr"`
}

type xmlGraph struct {
	ID          string    `xml:"id,attr"`
	EdgeDefault string    `xml:"edgedefault,attr"`
	Nodes       []xmlNode `xml:"node"`
	Edges       []xmlEdge `xml:"edge"`
}

type xmlNode struct {
	ID   string    `xml:"id,attr"`
	Data []xmlData `xml:"data"`
}

type xmlEdge struct {
	Source string    `xml:"source,attr"`
	Target string    `xml:"target,attr"`
	Data   []xmlData `xml:"data"`
}

type xmlData struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

// Encode writes the graph as GraphML.
func Encode(g *network.Graph, w io.Writer) error {
	doc := xmlGraphML{
		XMLNS: graphmlNS,
		Graph: xmlGraph{ID: g.Name, EdgeDefault: "undirected"},
	}
	if g.Directed() {
		doc.Graph.EdgeDefault = "directed"
	}

	nodeKeys, edgeKeys := attrKeys(g)
	doc.Keys = append(doc.Keys, xmlKey{ID: weightKey, For: "edge", AttrName: weightKey, AttrType: "double"})
	for _, k := range nodeKeys {
		doc.Keys = append(doc.Keys, xmlKey{ID: "n_" + k, For: "node", AttrName: k, AttrType: "string"})
	}
	for _, k := range edgeKeys {
		doc.Keys = append(doc.Keys, xmlKey{ID: "e_" + k, For: "edge", AttrName: k, AttrType: "string"})
	}

	for _, label := range g.Nodes() {
		n := xmlNode{ID: label}
		attrs := g.NodeAttrs(label)
		for _, k := range sortedKeys(attrs) {
			n.Data = append(n.Data, xmlData{Key: "n_" + k, Value: attrs[k]})
		}
		doc.Graph.Nodes = append(doc.Graph.Nodes, n)
	}

	for _, e := range g.Edges() {
		xe := xmlEdge{
			Source: e.From,
			Target: e.To,
			Data:   []xmlData{{Key: weightKey, Value: strconv.FormatFloat(e.Weight, 'g', -1, 64)}},
		}
		attrs := g.EdgeAttrs(e.From, e.To)
		for _, k := range sortedKeys(attrs) {
			xe.Data = append(xe.Data, xmlData{Key: "e_" + k, Value: attrs[k]})
		}
		doc.Graph.Edges = append(doc.Graph.Edges, xe)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode graphml: %w", err)
	}
	return enc.Close()
}

// Decode parses GraphML produced by Encode (or any document limited to
// the same subset).
func Decode(r io.Reader) (*network.Graph, error) {
	var doc xmlGraphML
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode graphml: %w: %v", internalerr.ErrInvalidInput, err)
	}

	// Key id -> declared attribute name, so attributes survive the
	// prefixing scheme and foreign key ids.
	nodeKeyName := make(map[string]string)
	edgeKeyName := make(map[string]string)
	for _, k := range doc.Keys {
		switch k.For {
		case "node":
			nodeKeyName[k.ID] = k.AttrName
		case "edge":
			edgeKeyName[k.ID] = k.AttrName
		}
	}

	var g *network.Graph
	if doc.Graph.EdgeDefault == "directed" {
		g = network.NewDirected(doc.Graph.ID)
	} else {
		g = network.NewUndirected(doc.Graph.ID)
	}

	for _, n := range doc.Graph.Nodes {
		g.AddNode(n.ID)
		for _, d := range n.Data {
			name := nodeKeyName[d.Key]
			if name == "" {
				name = d.Key
			}
			g.SetNodeAttr(n.ID, name, d.Value)
		}
	}

	for _, e := range doc.Graph.Edges {
		weight := 1.0
		for _, d := range e.Data {
			if d.Key == weightKey || edgeKeyName[d.Key] == weightKey {
				if v, err := strconv.ParseFloat(d.Value, 64); err == nil {
					weight = v
				}
			}
		}
		g.SetEdge(e.Source, e.Target, weight)
		for _, d := range e.Data {
			name := edgeKeyName[d.Key]
			if name == "" {
				name = d.Key
			}
			if name == weightKey {
				continue
			}
			g.SetEdgeAttr(e.Source, e.Target, name, d.Value)
		}
	}

	return g, nil
}

// WriteFile encodes the graph to a file.
func WriteFile(g *network.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(g, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadFile decodes a graph from a file.
func ReadFile(path string) (*network.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// attrKeys collects the distinct node and edge attribute names in use.
func attrKeys(g *network.Graph) (nodes, edges []string) {
	nodeSet := make(map[string]struct{})
	for _, label := range g.Nodes() {
		for k := range g.NodeAttrs(label) {
			nodeSet[k] = struct{}{}
		}
	}
	edgeSet := make(map[string]struct{})
	for _, e := range g.Edges() {
		for k := range g.EdgeAttrs(e.From, e.To) {
			edgeSet[k] = struct{}{}
		}
	}
	for k := range nodeSet {
		nodes = append(nodes, k)
	}
	for k := range edgeSet {
		edges = append(edges, k)
	}
	sort.Strings(nodes)
	sort.Strings(edges)
	return nodes, edges
}

func sortedKeys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
