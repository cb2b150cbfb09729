package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/crisislab/crisisnet/pkg/crisisnet/internalerr"
)

// DedupeKey selects the column used for de-duplication when combining.
type DedupeKey string

const (
	DedupeByPostID      DedupeKey = "post_id"
	DedupeByContentHash DedupeKey = "content_hash"
)

// CombineResult summarizes a combine run.
type CombineResult struct {
	Files       []string
	RowsBefore  int
	RowsAfter   int
	RowsRemoved int
}

// FindFiles returns the sorted regular files under dir matching the
// glob pattern.
func FindFiles(dir, pattern string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, err
	}
	var files []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, m)
	}
	sort.Strings(files)
	return files, nil
}

// Combine loads every input file, concatenates rows with a column-set
// union, tags each row with its source file, and optionally
// de-duplicates (first occurrence kept). Returns ErrNoInputFiles when
// the file list is empty.
func Combine(files []string, dedupe []DedupeKey, limit int) (*Dataset, CombineResult, error) {
	res := CombineResult{Files: files}
	if len(files) == 0 {
		return nil, res, internalerr.ErrNoInputFiles
	}

	combined := New(ColSourceFile)
	for _, path := range files {
		ds, err := LoadCSV(path)
		if err != nil {
			return nil, res, fmt.Errorf("combine %s: %w", path, err)
		}
		for _, c := range ds.Columns() {
			combined.AddColumn(c)
		}
		for _, p := range ds.Posts {
			if p.SourceFile == "" {
				p.SourceFile = path
			}
			combined.Posts = append(combined.Posts, p)
		}
	}

	if limit > 0 && len(combined.Posts) > limit {
		combined.Posts = combined.Posts[:limit]
	}
	res.RowsBefore = len(combined.Posts)

	if len(dedupe) > 0 {
		combined.FillContentHashes()
		combined.Posts = dedupeRows(combined.Posts, dedupe)
	}
	res.RowsAfter = len(combined.Posts)
	res.RowsRemoved = res.RowsBefore - res.RowsAfter

	return combined, res, nil
}

func dedupeRows(posts []Post, keys []DedupeKey) []Post {
	seen := make(map[string]struct{}, len(posts))
	out := posts[:0]
	for _, p := range posts {
		id := rowKey(p, keys)
		if id == "" {
			out = append(out, p)
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, p)
	}
	return out
}

func rowKey(p Post, keys []DedupeKey) string {
	var id string
	for _, k := range keys {
		switch k {
		case DedupeByPostID:
			id += "id:" + p.ID + "|"
		case DedupeByContentHash:
			id += "hash:" + p.ContentHash + "|"
		}
	}
	if id == "id:|" || id == "hash:|" || id == "id:|hash:|" {
		return ""
	}
	return id
}
