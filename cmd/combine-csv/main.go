// combine-csv merges collected post CSV files into one dataset, with
// optional de-duplication by post id and/or content hash.
package main

import (
	"errors"
	"flag"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/crisislab/crisisnet/pkg/crisisnet/dataset"
	"github.com/crisislab/crisisnet/pkg/crisisnet/internalerr"
)

func main() {
	var (
		files   = flag.String("files", "", "Comma-separated list of input CSV files")
		dir     = flag.String("dir", "", "Directory to scan for input files (alternative to --files)")
		pattern = flag.String("pattern", "*.csv", "Glob pattern used with --dir")
		dedupe  = flag.String("dedupe", "", "Comma-separated dedupe keys: post_id, content_hash")
		output  = flag.String("output", "combined_posts.csv", "Output CSV path")
		limit   = flag.Int("limit", 0, "Keep at most this many rows before dedupe (0 = all)")
	)
	flag.Parse()

	var inputs []string
	if *files != "" {
		for _, f := range strings.Split(*files, ",") {
			if f = strings.TrimSpace(f); f != "" {
				inputs = append(inputs, f)
			}
		}
	} else if *dir != "" {
		found, err := dataset.FindFiles(*dir, *pattern)
		if err != nil {
			log.Fatal("scan directory failed", "dir", *dir, "err", err)
		}
		inputs = found
	}

	keys, err := parseDedupe(*dedupe)
	if err != nil {
		log.Fatal(err)
	}

	combined, res, err := dataset.Combine(inputs, keys, *limit)
	if errors.Is(err, internalerr.ErrNoInputFiles) {
		log.Error("no input files found")
		os.Exit(1)
	}
	if err != nil {
		log.Fatal("combine failed", "err", err)
	}

	if err := combined.WriteCSV(*output); err != nil {
		log.Fatal("write output failed", "path", *output, "err", err)
	}

	log.Info("combined",
		"files", len(res.Files),
		"rows", res.RowsAfter,
		"removed", res.RowsRemoved,
		"output", *output)
}

func parseDedupe(s string) ([]dataset.DedupeKey, error) {
	if s == "" {
		return nil, nil
	}
	var keys []dataset.DedupeKey
	for _, part := range strings.Split(s, ",") {
		switch k := dataset.DedupeKey(strings.TrimSpace(part)); k {
		case dataset.DedupeByPostID, dataset.DedupeByContentHash:
			keys = append(keys, k)
		case "":
		default:
			return nil, errors.New("unknown dedupe key: " + string(k))
		}
	}
	return keys, nil
}
