package report

import (
	"encoding/csv"
	"html/template"
	"os"
	"path/filepath"
	"strconv"
)

var summaryTemplate = template.Must(template.New("summary").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Crisis analysis {{.RunID}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; margin: 1em 0; }
th, td { border: 1px solid #ccc; padding: 4px 10px; text-align: left; }
th { background: #f0f0f0; }
</style>
</head>
<body>
<h1>Crisis analysis summary</h1>
<p>Run {{.RunID}}</p>
{{if .Quality}}
<h2>Dataset quality</h2>
<p>Overall score {{printf "%.1f" .Quality.Overall}}/100 ({{.Quality.Rating}}) over {{.Quality.Rows}} rows.</p>
{{end}}
<h2>Networks</h2>
<table>
<tr><th>Network</th><th>Nodes</th><th>Edges</th><th>Density</th><th>Components</th><th>Communities</th><th>Modularity</th></tr>
{{range .Summaries}}
<tr>
<td>{{.Name}}</td>
<td>{{.Nodes}}</td>
<td>{{.Edges}}</td>
<td>{{printf "%.4f" .Density}}</td>
<td>{{.Components}}</td>
<td>{{.Communities}}</td>
<td>{{printf "%.4f" .Modularity}}</td>
</tr>
{{end}}
</table>
<h2>Artifacts</h2>
<ul>
{{range .Artifacts}}<li>{{.}}</li>
{{end}}</ul>
</body>
</html>
`))

func (b *Bundle) writeSummaryHTML() error {
	artifacts := make([]string, len(b.files))
	for i, f := range b.files {
		artifacts[i] = filepath.Base(f)
	}
	data := struct {
		RunID     string
		Quality   *qualityView
		Summaries []summaryView
		Artifacts []string
	}{RunID: b.RunID, Artifacts: artifacts}
	if b.quality != nil {
		data.Quality = &qualityView{
			Overall: b.quality.Overall,
			Rating:  b.quality.Rating,
			Rows:    b.quality.Rows,
		}
	}
	for _, s := range b.summaries {
		data.Summaries = append(data.Summaries, summaryView{
			Name: s.Name, Nodes: s.Nodes, Edges: s.Edges,
			Density: s.Density, Components: s.Components,
			Communities: s.Communities, Modularity: s.Modularity,
		})
	}

	p := b.path("summary.html")
	f, err := os.Create(p)
	if err != nil {
		return err
	}
	if err := summaryTemplate.Execute(f, data); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	b.files = append(b.files, p)
	return nil
}

type qualityView struct {
	Overall float64
	Rating  string
	Rows    int
}

type summaryView struct {
	Name        string
	Nodes       int
	Edges       int
	Density     float64
	Components  int
	Communities int
	Modularity  float64
}

// writeSummaryCSV emits one row per network for spreadsheet import.
func (b *Bundle) writeSummaryCSV() error {
	p := b.path("summary.csv")
	f, err := os.Create(p)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		"network", "directed", "nodes", "edges", "density",
		"components", "largest_component", "avg_degree",
		"avg_clustering", "transitivity", "avg_path_length",
		"diameter", "communities", "modularity",
	}); err != nil {
		return err
	}
	for _, s := range b.summaries {
		row := []string{
			s.Name,
			strconv.FormatBool(s.Directed),
			strconv.Itoa(s.Nodes),
			strconv.Itoa(s.Edges),
			fmtFloat(s.Density),
			strconv.Itoa(s.Components),
			strconv.Itoa(s.LargestComponent),
			fmtFloat(s.AvgDegree),
			fmtFloat(s.AvgClustering),
			fmtFloat(s.Transitivity),
			fmtFloat(s.AvgPathLength),
			strconv.Itoa(s.Diameter),
			strconv.Itoa(s.Communities),
			fmtFloat(s.Modularity),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	b.files = append(b.files, p)
	return nil
}
