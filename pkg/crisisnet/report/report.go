// Package report writes an analysis run's artifacts into a bundle
// directory: JSON for the structured results, GraphML for the
// networks, the enriched CSV, the quality text report, and an HTML +
// CSV summary.
package report

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/crisislab/crisisnet/pkg/crisisnet/compare"
	"github.com/crisislab/crisisnet/pkg/crisisnet/composite"
	"github.com/crisislab/crisisnet/pkg/crisisnet/dataset"
	"github.com/crisislab/crisisnet/pkg/crisisnet/graphio"
	"github.com/crisislab/crisisnet/pkg/crisisnet/metrics"
	"github.com/crisislab/crisisnet/pkg/crisisnet/network"
	"github.com/crisislab/crisisnet/pkg/crisisnet/quality"
)

// Bundle accumulates one analysis run's artifacts and writes them under
// a single directory named by run id.
type Bundle struct {
	// RunID is a ULID identifying this analysis run.
	RunID string
	// Dir is the bundle directory, created by NewBundle.
	Dir string

	stamp   string
	entropy *ulid.MonotonicEntropy

	summaries []metrics.Summary
	quality   *quality.Report
	files     []string
}

// NewBundle creates the bundle directory under root.
func NewBundle(root string) (*Bundle, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	now := time.Now().UTC()
	b := &Bundle{
		RunID:   ulid.MustNew(ulid.Timestamp(now), entropy).String(),
		stamp:   now.Format("20060102_150405"),
		entropy: entropy,
	}
	b.Dir = filepath.Join(root, "analysis_"+b.stamp+"_"+b.RunID)
	if err := os.MkdirAll(b.Dir, 0o755); err != nil {
		return nil, err
	}
	return b, nil
}

// Files lists the artifact paths written so far.
func (b *Bundle) Files() []string {
	out := make([]string, len(b.files))
	copy(out, b.files)
	return out
}

func (b *Bundle) path(name string) string {
	return filepath.Join(b.Dir, name)
}

func (b *Bundle) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	p := b.path(name)
	if err := os.WriteFile(p, append(data, '\n'), 0o644); err != nil {
		return err
	}
	b.files = append(b.files, p)
	return nil
}

// WriteMetrics writes one graph's structural summary and hub report.
func (b *Bundle) WriteMetrics(s metrics.Summary, hubs *metrics.HubReport) error {
	b.summaries = append(b.summaries, s)
	if err := b.writeJSON(s.Name+"_metrics.json", s); err != nil {
		return err
	}
	if hubs != nil {
		return b.writeJSON(s.Name+"_hubs.json", hubs)
	}
	return nil
}

// WriteGraph writes one network as GraphML.
func (b *Bundle) WriteGraph(g *network.Graph) error {
	p := b.path(g.Name + "_" + b.stamp + ".graphml")
	if err := graphio.WriteFile(g, p); err != nil {
		return err
	}
	b.files = append(b.files, p)
	return nil
}

// WritePADM writes the PADM stage breakdown.
func (b *Bundle) WritePADM(stages []composite.StageStats) error {
	return b.writeJSON("padm_analysis.json", stages)
}

// WriteProfiles writes the per-crisis linguistic profiles.
func (b *Bundle) WriteProfiles(profiles []composite.CrisisProfile) error {
	return b.writeJSON("crisis_profiles.json", profiles)
}

// WriteComparisons writes the cross-crisis statistical results.
func (b *Bundle) WriteComparisons(results []compare.Result) error {
	return b.writeJSON("statistical_comparisons.json", results)
}

// WriteCognitiveHubs writes the lexically classified network hubs.
func (b *Bundle) WriteCognitiveHubs(hubs []composite.CognitiveHub) error {
	return b.writeJSON("cognitive_hubs.json", hubs)
}

// WriteQuality writes the validation report as both JSON and the
// rendered text document.
func (b *Bundle) WriteQuality(r *quality.Report) error {
	b.quality = r
	if err := b.writeJSON("quality_report.json", r); err != nil {
		return err
	}
	p := b.path("quality_report.txt")
	if err := os.WriteFile(p, []byte(quality.Render(r)), 0o644); err != nil {
		return err
	}
	b.files = append(b.files, p)
	return nil
}

// WriteDataset writes the enriched dataset as CSV.
func (b *Bundle) WriteDataset(ds *dataset.Dataset) error {
	p := b.path("enriched_posts_" + b.stamp + ".csv")
	if err := ds.WriteCSV(p); err != nil {
		return err
	}
	b.files = append(b.files, p)
	return nil
}

// Finish writes the HTML and CSV summaries and returns the bundle
// directory.
func (b *Bundle) Finish() (string, error) {
	if err := b.writeSummaryCSV(); err != nil {
		return "", err
	}
	if err := b.writeSummaryHTML(); err != nil {
		return "", err
	}
	return b.Dir, nil
}

func fmtFloat(v float64) string {
	return fmt.Sprintf("%.4f", v)
}
