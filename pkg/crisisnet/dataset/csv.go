package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// header aliases accepted on load, mapped to recognized columns.
var headerAliases = map[string]Column{
	"post_id":       ColPostID,
	"id":            ColPostID,
	"title":         ColTitle,
	"content":       ColContent,
	"selftext":      ColContent,
	"body":          ColContent,
	"author":        ColAuthor,
	"subreddit":     ColSubreddit,
	"created_utc":   ColCreatedUTC,
	"timestamp":     ColCreatedUTC,
	"created_at":    ColCreatedUTC,
	"score":         ColScore,
	"num_comments":  ColNumComments,
	"upvote_ratio":  ColUpvoteRatio,
	"crisis_id":     ColCrisisID,
	"url":           ColURL,
	"permalink":     ColURL,
	"content_hash":  ColContentHash,
	"__source_file": ColSourceFile,
}

// LoadCSV reads a delimited post dataset. Unrecognized columns are
// ignored; recognized columns are recorded in the presence set.
// Malformed numeric or timestamp cells coerce to zero values rather
// than aborting the load.
func LoadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return New(), nil
	}

	// Map header positions to recognized columns. First alias wins so
	// e.g. both "content" and "selftext" headers don't fight.
	ds := New()
	index := make(map[Column]int)
	for i, h := range records[0] {
		col, ok := headerAliases[strings.ToLower(strings.TrimSpace(h))]
		if !ok {
			continue
		}
		if _, dup := index[col]; dup {
			continue
		}
		index[col] = i
		ds.AddColumn(col)
	}

	field := func(row []string, c Column) string {
		i, ok := index[c]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	for _, row := range records[1:] {
		p := Post{
			ID:          strings.TrimSpace(field(row, ColPostID)),
			Title:       field(row, ColTitle),
			Content:     field(row, ColContent),
			Author:      strings.TrimSpace(field(row, ColAuthor)),
			Subreddit:   strings.TrimSpace(field(row, ColSubreddit)),
			CrisisID:    strings.TrimSpace(field(row, ColCrisisID)),
			URL:         strings.TrimSpace(field(row, ColURL)),
			ContentHash: strings.TrimSpace(field(row, ColContentHash)),
			SourceFile:  field(row, ColSourceFile),
		}
		p.CreatedUTC = ParseTimestamp(field(row, ColCreatedUTC))
		p.Score = parseInt(field(row, ColScore))
		p.NumComments = parseInt(field(row, ColNumComments))
		p.UpvoteRatio = parseFloat(field(row, ColUpvoteRatio))
		ds.Posts = append(ds.Posts, p)
	}

	return ds, nil
}

// WriteCSV saves the dataset: recognized columns in canonical order,
// then per-category score columns in lexicon declaration order, then
// derived columns in insertion order.
func (ds *Dataset) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	base := ds.Columns()
	header := make([]string, 0, len(base)+len(ds.ScoreOrder)+len(ds.derivedOrder))
	for _, c := range base {
		header = append(header, string(c))
	}
	header = append(header, ds.ScoreOrder...)
	header = append(header, ds.derivedOrder...)
	if err := w.Write(header); err != nil {
		return err
	}

	for i, p := range ds.Posts {
		row := make([]string, 0, len(header))
		for _, c := range base {
			row = append(row, p.format(c))
		}
		for _, cat := range ds.ScoreOrder {
			row = append(row, formatFloat(p.Scores[cat]))
		}
		for _, name := range ds.derivedOrder {
			var v float64
			if vals := ds.derived[name]; i < len(vals) {
				v = vals[i]
			}
			row = append(row, formatFloat(v))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func (p Post) format(c Column) string {
	switch c {
	case ColPostID:
		return p.ID
	case ColTitle:
		return p.Title
	case ColContent:
		return p.Content
	case ColAuthor:
		return p.Author
	case ColSubreddit:
		return p.Subreddit
	case ColCreatedUTC:
		if p.CreatedUTC.IsZero() {
			return ""
		}
		return p.CreatedUTC.UTC().Format(time.RFC3339)
	case ColScore:
		return strconv.Itoa(p.Score)
	case ColNumComments:
		return strconv.Itoa(p.NumComments)
	case ColUpvoteRatio:
		return formatFloat(p.UpvoteRatio)
	case ColCrisisID:
		return p.CrisisID
	case ColURL:
		return p.URL
	case ColContentHash:
		return p.ContentHash
	case ColSourceFile:
		return p.SourceFile
	}
	return ""
}

// ParseTimestamp accepts RFC3339, "2006-01-02 15:04:05", "2006-01-02",
// or a unix epoch (integer or float seconds). Unparseable input coerces
// to the zero time.
func ParseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	if epoch, err := strconv.ParseFloat(s, 64); err == nil && epoch > 0 {
		sec := int64(epoch)
		nsec := int64((epoch - float64(sec)) * 1e9)
		return time.Unix(sec, nsec).UTC()
	}
	return time.Time{}
}

func parseInt(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	// Collected exports sometimes carry integer columns as "12.0".
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
