// clean-workspace removes generated data and result files from a
// project directory. It refuses to run outside a recognizable project
// root, and defaults to a dry run.
package main

import (
	"flag"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// rootMarkers identify a project directory this tool may clean.
// Requiring one guards against running from, say, the home directory.
var rootMarkers = []string{"crisis_config.yaml", "data", "results"}

// categoryDirs maps cleanup categories to directories under the root.
var categoryDirs = map[string][]string{
	"raw":       {"data/raw"},
	"processed": {"data/processed", "data/combined"},
	"networks":  {"results/networks"},
	"results":   {"results"},
	"logs":      {"logs"},
}

func main() {
	var (
		root        = flag.String("root", ".", "Project root to clean")
		raw         = flag.Bool("raw", false, "Remove raw collected data")
		processed   = flag.Bool("processed", false, "Remove processed/combined datasets")
		networks    = flag.Bool("networks", false, "Remove exported network files")
		results     = flag.Bool("results", false, "Remove analysis results")
		logs        = flag.Bool("logs", false, "Remove log files")
		all         = flag.Bool("all", false, "Remove every category")
		keepReports = flag.Bool("keep-reports", false, "Keep report files when cleaning results")
		dryRun      = flag.Bool("dry-run", true, "List what would be removed without deleting")
		yes         = flag.Bool("yes", false, "Actually delete (disables the default dry run)")
	)
	flag.Parse()

	if !isProjectRoot(*root) {
		log.Error("not a project root: none of the expected markers found",
			"root", *root, "markers", strings.Join(rootMarkers, ", "))
		os.Exit(2)
	}

	selected := map[string]bool{
		"raw":       *raw || *all,
		"processed": *processed || *all,
		"networks":  *networks || *all,
		"results":   *results || *all,
		"logs":      *logs || *all,
	}

	var targets []string
	categories := make([]string, 0, len(selected))
	for c := range selected {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	for _, cat := range categories {
		if !selected[cat] {
			continue
		}
		for _, dir := range categoryDirs[cat] {
			targets = append(targets, collectFiles(filepath.Join(*root, dir), cat, *keepReports)...)
		}
	}

	if len(targets) == 0 {
		log.Info("nothing to clean")
		return
	}

	if *dryRun && !*yes {
		for _, t := range targets {
			log.Info("would remove", "path", t)
		}
		log.Info("dry run complete", "files", len(targets), "hint", "pass --yes to delete")
		return
	}

	removed := 0
	for _, t := range targets {
		if err := os.Remove(t); err != nil {
			log.Error("remove failed", "path", t, "err", err)
			continue
		}
		removed++
	}
	log.Info("cleaned", "files", removed)
}

func isProjectRoot(root string) bool {
	for _, m := range rootMarkers {
		if _, err := os.Stat(filepath.Join(root, m)); err == nil {
			return true
		}
	}
	return false
}

// collectFiles lists regular files under dir, honoring the
// keep-reports exemption for the results category.
func collectFiles(dir, category string, keepReports bool) []string {
	var out []string
	filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if keepReports && category == "results" &&
			strings.Contains(strings.ToLower(d.Name()), "report") {
			return nil
		}
		out = append(out, path)
		return nil
	})
	sort.Strings(out)
	return out
}
