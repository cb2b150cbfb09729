package dataset

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// Bot-account markers checked by Clean.
var (
	botAuthors = map[string]bool{
		"automoderator": true,
	}
	botPhrases = []string{
		"i am a bot",
		"this action was performed automatically",
	}
)

// CleanOptions tune Clean. Zero values select the defaults.
type CleanOptions struct {
	// MinLength and MaxLength bound content length in characters. Zero
	// means 20 and 10000.
	MinLength int
	MaxLength int
	// KeepBots retains bot-authored posts.
	KeepBots bool
	// OutlierStdDevs drops posts whose score is further than this many
	// standard deviations from the mean. Zero means 3; negative
	// disables the check.
	OutlierStdDevs float64
}

// CleanResult reports what a cleaning pass removed.
type CleanResult struct {
	Input      int `json:"input"`
	Kept       int `json:"kept"`
	Duplicates int `json:"duplicates"`
	Deleted    int `json:"deleted"`
	Bots       int `json:"bots"`
	Length     int `json:"length"`
	Outliers   int `json:"outliers"`
}

// Clean prepares a raw collected dataset for analysis. Title and
// content whitespace is normalized and content hashes recomputed, then
// rows are dropped in order: posts from deleted or bot accounts,
// duplicates (by post id, then by content hash), content outside the
// length bounds, and score outliers. Rows are filtered in place.
//
// Length and outlier checks only run when the content and score
// columns are present; absent columns never cause removals.
func (ds *Dataset) Clean(opts CleanOptions) CleanResult {
	if opts.MinLength <= 0 {
		opts.MinLength = 20
	}
	if opts.MaxLength <= 0 {
		opts.MaxLength = 10000
	}
	if opts.OutlierStdDevs == 0 {
		opts.OutlierStdDevs = 3
	}

	res := CleanResult{Input: len(ds.Posts)}

	seenID := make(map[string]bool, len(ds.Posts))
	seenHash := make(map[string]bool, len(ds.Posts))
	kept := ds.Posts[:0]
	for _, p := range ds.Posts {
		p.Title = normalizeSpace(p.Title)
		p.Content = normalizeSpace(p.Content)
		p.ContentHash = HashContent(p.Content)

		if isDeletedPost(p) {
			res.Deleted++
			continue
		}
		if !opts.KeepBots && isBotPost(p) {
			res.Bots++
			continue
		}
		if p.ID != "" {
			if seenID[p.ID] {
				res.Duplicates++
				continue
			}
			seenID[p.ID] = true
		}
		if p.Content != "" {
			if seenHash[p.ContentHash] {
				res.Duplicates++
				continue
			}
			seenHash[p.ContentHash] = true
		}
		if ds.Has(ColContent) {
			if n := len(p.Content); n < opts.MinLength || n > opts.MaxLength {
				res.Length++
				continue
			}
		}
		kept = append(kept, p)
	}
	ds.Posts = kept
	ds.AddColumn(ColContentHash)

	if opts.OutlierStdDevs > 0 && ds.Has(ColScore) && len(ds.Posts) >= 3 {
		scores := make([]float64, len(ds.Posts))
		for i, p := range ds.Posts {
			scores[i] = float64(p.Score)
		}
		mean, std := stat.MeanStdDev(scores, nil)
		if std > 0 {
			kept = ds.Posts[:0]
			for i, p := range ds.Posts {
				if math.Abs(scores[i]-mean) > opts.OutlierStdDevs*std {
					res.Outliers++
					continue
				}
				kept = append(kept, p)
			}
			ds.Posts = kept
		}
	}

	res.Kept = len(ds.Posts)
	return res
}

// isDeletedPost reports whether the author or body carries Reddit's
// removal sentinels.
func isDeletedPost(p Post) bool {
	switch p.Author {
	case DeletedAuthor, "[removed]":
		return true
	}
	switch p.Content {
	case "[deleted]", "[removed]":
		return true
	}
	return false
}

func isBotPost(p Post) bool {
	author := strings.ToLower(p.Author)
	if botAuthors[author] || strings.HasSuffix(author, "bot") {
		return true
	}
	body := strings.ToLower(p.Content)
	for _, phrase := range botPhrases {
		if strings.Contains(body, phrase) {
			return true
		}
	}
	return false
}

// normalizeSpace collapses runs of whitespace to single spaces.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
