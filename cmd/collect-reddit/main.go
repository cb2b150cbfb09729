// collect-reddit gathers crisis-related posts from Reddit's public
// listing endpoints into a CSV file and/or a SQLite archive.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/crisislab/crisisnet/internal/reddit"
	"github.com/crisislab/crisisnet/pkg/crisisnet/config"
	"github.com/crisislab/crisisnet/pkg/crisisnet/dataset"
	"github.com/crisislab/crisisnet/pkg/crisisnet/store"
	"github.com/crisislab/crisisnet/pkg/crisisnet/store/sqlite"
)

func main() {
	var (
		cfgPath   = flag.String("config", "crisis_config.yaml", "Crisis configuration YAML (required)")
		envPath   = flag.String("env", "", "Optional .env file with Reddit credentials")
		crisis    = flag.String("crisis", "", "Crisis id to collect (required)")
		target    = flag.Int("target", 1000, "Total posts to aim for")
		maxPerSub = flag.Int("max-per-sub", 200, "Maximum posts per subreddit")
		out       = flag.String("out", "", "Output CSV path")
		dbPath    = flag.String("db", "", "Optional SQLite archive path")
	)
	flag.Parse()

	if *crisis == "" {
		log.Fatal("--crisis required")
	}
	if *out == "" && *dbPath == "" {
		log.Fatal("need --out and/or --db")
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal("load config failed", "path", *cfgPath, "err", err)
	}
	event, ok := cfg.Crisis(*crisis)
	if !ok {
		log.Fatal("unknown crisis id", "crisis", *crisis)
	}
	creds, err := config.LoadCredentials(*envPath)
	if err != nil {
		log.Fatal("load credentials failed", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var archive store.Store
	if *dbPath != "" {
		archive, err = sqlite.Open(ctx, *dbPath)
		if err != nil {
			log.Fatal("open archive failed", "path", *dbPath, "err", err)
		}
		defer archive.Close()
	}

	client := reddit.New(reddit.Options{UserAgent: creds.UserAgent})
	keywords := lowerAll(event.Keywords())

	ds := dataset.New(
		dataset.ColPostID, dataset.ColTitle, dataset.ColContent,
		dataset.ColAuthor, dataset.ColSubreddit, dataset.ColCreatedUTC,
		dataset.ColScore, dataset.ColNumComments, dataset.ColUpvoteRatio,
		dataset.ColCrisisID, dataset.ColURL, dataset.ColContentHash,
	)
	seen := make(map[string]struct{})

	for _, sub := range event.Subreddits {
		if ds.Len() >= *target {
			break
		}
		posts, err := client.SubredditNew(ctx, sub, *maxPerSub)
		if err != nil {
			// One failing subreddit must not abort the whole run.
			log.Error("subreddit fetch failed", "subreddit", sub, "err", err)
		}

		for _, kw := range event.PrimaryKeywords {
			if ds.Len() >= *target {
				break
			}
			found, err := client.Search(ctx, sub, kw, *maxPerSub)
			if err != nil {
				log.Error("search failed", "subreddit", sub, "query", kw, "err", err)
				continue
			}
			posts = append(posts, found...)
		}

		kept := 0
		for _, p := range posts {
			if ds.Len() >= *target {
				break
			}
			if _, dup := seen[p.ID]; dup || p.ID == "" {
				continue
			}
			if !matchesKeywords(p, keywords) {
				continue
			}
			seen[p.ID] = struct{}{}
			p.CrisisID = event.ID
			ds.Posts = append(ds.Posts, p)
			kept++
			if archive != nil {
				if err := archive.UpsertPost(ctx, p); err != nil {
					log.Error("archive write failed", "post", p.ID, "err", err)
				}
			}
		}
		log.Info("collected", "subreddit", sub, "kept", kept, "total", ds.Len())
	}

	if *out != "" {
		if err := ds.WriteCSV(*out); err != nil {
			log.Fatal("write CSV failed", "path", *out, "err", err)
		}
	}
	log.Info("collection finished", "crisis", event.ID, "posts", ds.Len(), "out", *out, "db", *dbPath)
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

// matchesKeywords keeps posts whose title or content mentions at least
// one crisis keyword. An empty keyword list keeps everything.
func matchesKeywords(p dataset.Post, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	text := strings.ToLower(p.Title + " " + p.Content)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
