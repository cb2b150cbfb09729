package dataset

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"time"
)

// DeletedAuthor is the sentinel used for removed or anonymous authors.
const DeletedAuthor = "[deleted]"

// Column identifies a recognized dataset column.
type Column string

// Recognized columns. Optional columns degrade gracefully: features that
// need an absent column are skipped, never faked from zero values.
const (
	ColPostID      Column = "post_id"
	ColTitle       Column = "title"
	ColContent     Column = "content"
	ColAuthor      Column = "author"
	ColSubreddit   Column = "subreddit"
	ColCreatedUTC  Column = "created_utc"
	ColScore       Column = "score"
	ColNumComments Column = "num_comments"
	ColUpvoteRatio Column = "upvote_ratio"
	ColCrisisID    Column = "crisis_id"
	ColURL         Column = "url"
	ColContentHash Column = "content_hash"
	ColSourceFile  Column = "__source_file"
)

// baseColumnOrder is the canonical output order for recognized columns.
var baseColumnOrder = []Column{
	ColPostID, ColTitle, ColContent, ColAuthor, ColSubreddit,
	ColCreatedUTC, ColScore, ColNumComments, ColUpvoteRatio,
	ColCrisisID, ColURL, ColContentHash, ColSourceFile,
}

// Post is one collected social-media post.
type Post struct {
	ID          string
	Title       string
	Content     string
	Author      string
	Subreddit   string
	CreatedUTC  time.Time
	Score       int
	NumComments int
	UpvoteRatio float64
	CrisisID    string
	URL         string
	ContentHash string
	SourceFile  string

	// Scores holds per-category lexical percentages, attached during
	// enrichment and never mutated afterward.
	Scores map[string]float64
}

// Dataset is an in-memory tabular post collection with an explicit
// column-presence set. Presence is checked before computing any feature
// that depends on an optional column.
type Dataset struct {
	Posts []Post

	cols map[Column]bool

	// ScoreOrder lists per-category score columns in lexicon
	// declaration order.
	ScoreOrder []string

	derivedOrder []string
	derived      map[string][]float64
}

// New creates an empty dataset with the given columns present.
func New(cols ...Column) *Dataset {
	ds := &Dataset{cols: make(map[Column]bool)}
	for _, c := range cols {
		ds.cols[c] = true
	}
	return ds
}

// Len returns the number of rows.
func (ds *Dataset) Len() int { return len(ds.Posts) }

// Has reports whether a recognized column is present.
func (ds *Dataset) Has(c Column) bool { return ds.cols[c] }

// AddColumn marks a recognized column as present.
func (ds *Dataset) AddColumn(c Column) {
	if ds.cols == nil {
		ds.cols = make(map[Column]bool)
	}
	ds.cols[c] = true
}

// Columns returns the present recognized columns in canonical order.
func (ds *Dataset) Columns() []Column {
	var out []Column
	for _, c := range baseColumnOrder {
		if ds.cols[c] {
			out = append(out, c)
		}
	}
	return out
}

// SetDerived attaches a derived float column (length must equal Len).
// Re-setting a name replaces its values but keeps its position.
func (ds *Dataset) SetDerived(name string, values []float64) {
	if ds.derived == nil {
		ds.derived = make(map[string][]float64)
	}
	if _, ok := ds.derived[name]; !ok {
		ds.derivedOrder = append(ds.derivedOrder, name)
	}
	ds.derived[name] = values
}

// Derived returns a derived column and whether it exists.
func (ds *Dataset) Derived(name string) ([]float64, bool) {
	v, ok := ds.derived[name]
	return v, ok
}

// DerivedNames returns derived column names in insertion order.
func (ds *Dataset) DerivedNames() []string {
	out := make([]string, len(ds.derivedOrder))
	copy(out, ds.derivedOrder)
	return out
}

// FilterCrisis returns a shallow copy restricted to one crisis label.
// An empty label returns the dataset unchanged. Derived columns are not
// carried over; they are tied to the full row set.
func (ds *Dataset) FilterCrisis(crisisID string) *Dataset {
	if crisisID == "" || !ds.Has(ColCrisisID) {
		return ds
	}
	out := &Dataset{cols: ds.cols, ScoreOrder: ds.ScoreOrder}
	for _, p := range ds.Posts {
		if p.CrisisID == crisisID {
			out.Posts = append(out.Posts, p)
		}
	}
	return out
}

// SortByTime orders rows by creation timestamp ascending. Zero
// timestamps sort first. Sorting is stable so repeated runs produce
// identical row order.
func (ds *Dataset) SortByTime() {
	sort.SliceStable(ds.Posts, func(i, j int) bool {
		return ds.Posts[i].CreatedUTC.Before(ds.Posts[j].CreatedUTC)
	})
}

// Crises returns the distinct non-empty crisis labels in first-seen order.
func (ds *Dataset) Crises() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range ds.Posts {
		if p.CrisisID == "" {
			continue
		}
		if _, ok := seen[p.CrisisID]; ok {
			continue
		}
		seen[p.CrisisID] = struct{}{}
		out = append(out, p.CrisisID)
	}
	return out
}

// FillContentHashes computes sha256 content hashes for rows that lack
// one and marks the column present.
func (ds *Dataset) FillContentHashes() {
	for i := range ds.Posts {
		if ds.Posts[i].ContentHash == "" {
			ds.Posts[i].ContentHash = HashContent(ds.Posts[i].Content)
		}
	}
	ds.AddColumn(ColContentHash)
}

// HashContent returns the hex sha256 of trimmed post content.
func HashContent(content string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(content)))
	return hex.EncodeToString(sum[:])
}
