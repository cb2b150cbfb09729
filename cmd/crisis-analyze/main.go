// crisis-analyze runs the full analysis pipeline over a collected
// dataset (CSV file or sqlite archive): optional cleaning, quality
// validation, lexical enrichment, the four network layers with metrics
// and hub detection, composite scoring, cognitive-hub classification,
// and cross-crisis statistics, all written into one artifact bundle.
package main

import (
	"context"
	"flag"

	"github.com/charmbracelet/log"

	"github.com/crisislab/crisisnet/pkg/crisisnet/compare"
	"github.com/crisislab/crisisnet/pkg/crisisnet/composite"
	"github.com/crisislab/crisisnet/pkg/crisisnet/config"
	"github.com/crisislab/crisisnet/pkg/crisisnet/dataset"
	"github.com/crisislab/crisisnet/pkg/crisisnet/lexicon"
	"github.com/crisislab/crisisnet/pkg/crisisnet/liwc"
	"github.com/crisislab/crisisnet/pkg/crisisnet/metrics"
	"github.com/crisislab/crisisnet/pkg/crisisnet/network"
	"github.com/crisislab/crisisnet/pkg/crisisnet/quality"
	"github.com/crisislab/crisisnet/pkg/crisisnet/report"
	"github.com/crisislab/crisisnet/pkg/crisisnet/store"
	"github.com/crisislab/crisisnet/pkg/crisisnet/store/sqlite"
)

func main() {
	var (
		input    = flag.String("input", "", "Input CSV dataset")
		dbPath   = flag.String("db", "", "Read posts from a sqlite archive instead of a CSV")
		cfgPath  = flag.String("config", "", "Optional crisis config YAML")
		crisis   = flag.String("crisis", "", "Restrict analysis to one crisis id")
		out      = flag.String("out", "results", "Directory for the artifact bundle")
		lexPath  = flag.String("lexicon", "", "Optional lexicon YAML merged over the built-in categories")
		clean    = flag.Bool("clean", false, "Clean the dataset (dedupe, deleted/bot removal, length and outlier bounds) before analysis")
		minScore = flag.Float64("min-quality", 0, "Abort when the quality score falls below this")
	)
	flag.Parse()

	if *input == "" && *dbPath == "" {
		log.Fatal("--input or --db required")
	}

	var cfg *config.Config
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatal("load config failed", "path", *cfgPath, "err", err)
		}
		cfg = loaded
	}

	var ds *dataset.Dataset
	if *dbPath != "" {
		ctx := context.Background()
		s, err := sqlite.Open(ctx, *dbPath)
		if err != nil {
			log.Fatal("open archive failed", "path", *dbPath, "err", err)
		}
		ds, err = store.LoadDataset(ctx, s, *crisis)
		s.Close()
		if err != nil {
			log.Fatal("load archive failed", "path", *dbPath, "err", err)
		}
		log.Info("dataset loaded", "rows", ds.Len(), "db", *dbPath)
	} else {
		loaded, err := dataset.LoadCSV(*input)
		if err != nil {
			log.Fatal("load dataset failed", "path", *input, "err", err)
		}
		ds = loaded.FilterCrisis(*crisis)
		log.Info("dataset loaded", "rows", ds.Len(), "path", *input)
	}
	if *clean {
		cr := ds.Clean(dataset.CleanOptions{})
		log.Info("cleaned", "kept", cr.Kept,
			"duplicates", cr.Duplicates, "deleted", cr.Deleted,
			"bots", cr.Bots, "length", cr.Length, "outliers", cr.Outliers)
	}
	if ds.Len() == 0 {
		log.Fatal("dataset is empty")
	}

	lex := lexicon.Default()
	if *lexPath != "" {
		if err := lex.LoadFromYAML(*lexPath); err != nil {
			log.Fatal("load lexicon failed", "path", *lexPath, "err", err)
		}
	}

	var keywords []string
	if cfg != nil && *crisis != "" {
		if ev, ok := cfg.Crisis(*crisis); ok {
			keywords = ev.Keywords()
		}
	}

	bundle, err := report.NewBundle(*out)
	if err != nil {
		log.Fatal("create bundle failed", "dir", *out, "err", err)
	}
	log.Info("bundle created", "dir", bundle.Dir, "run", bundle.RunID)

	// Quality gate.
	qr := quality.Validate(ds, keywords)
	if err := bundle.WriteQuality(qr); err != nil {
		log.Fatal("write quality report failed", "err", err)
	}
	log.Info("quality", "score", qr.Overall, "rating", qr.Rating)
	if qr.Overall < *minScore {
		log.Fatal("dataset below quality threshold", "score", qr.Overall, "min", *minScore)
	}

	// Lexical enrichment.
	enricher := liwc.NewEnricher(lex)
	enricher.Enrich(ds)
	enricher.Normalize(ds)
	composite.Score(ds)
	log.Info("enriched", "categories", len(ds.ScoreOrder))

	// Network layers.
	var params config.Analysis
	if cfg != nil {
		params = cfg.Analysis
	}
	userGraph := network.BuildUserInteraction(ds)
	graphs := []*network.Graph{
		userGraph,
		network.BuildContentSimilarity(ds, params.SimilarityThreshold),
		network.BuildTemporalFlow(ds, params.TimeWindow()),
		network.BuildSubredditCooccurrence(ds),
	}
	var userHubs *metrics.HubReport
	for _, g := range graphs {
		summary := metrics.Describe(g)
		hubs := metrics.Hubs(g, metrics.HubOptions{
			TopK:              params.TopK,
			BetweennessSample: params.BetweennessSample,
			Percentile:        params.HubPercentile,
		})
		if g == userGraph {
			userHubs = hubs
		}
		if err := bundle.WriteMetrics(summary, hubs); err != nil {
			log.Fatal("write metrics failed", "network", g.Name, "err", err)
		}
		if err := bundle.WriteGraph(g); err != nil {
			log.Fatal("write graph failed", "network", g.Name, "err", err)
		}
		log.Info("network analyzed", "name", g.Name,
			"nodes", summary.Nodes, "edges", summary.Edges,
			"communities", summary.Communities)
	}

	if hubs := composite.CognitiveHubs(ds, userHubs); hubs != nil {
		if err := bundle.WriteCognitiveHubs(hubs); err != nil {
			log.Fatal("write cognitive hubs failed", "err", err)
		}
		log.Info("cognitive hubs classified", "count", len(hubs))
	}

	// Composite and statistical results.
	if err := bundle.WritePADM(composite.PADM(ds)); err != nil {
		log.Fatal("write PADM failed", "err", err)
	}
	if err := bundle.WriteProfiles(composite.Profiles(ds)); err != nil {
		log.Fatal("write profiles failed", "err", err)
	}
	if results := compare.Crises(ds); results != nil {
		if err := bundle.WriteComparisons(results); err != nil {
			log.Fatal("write comparisons failed", "err", err)
		}
		log.Info("statistical comparisons", "tests", len(results),
			"significant", len(compare.Significant(results)))
	}

	if err := bundle.WriteDataset(ds); err != nil {
		log.Fatal("write enriched dataset failed", "err", err)
	}

	dir, err := bundle.Finish()
	if err != nil {
		log.Fatal("finalize bundle failed", "err", err)
	}
	log.Info("analysis complete", "bundle", dir, "artifacts", len(bundle.Files()))
}
