// Package quality scores dataset fitness for analysis along five
// weighted dimensions and renders a plain-text report.
package quality

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/crisislab/crisisnet/pkg/crisisnet/dataset"
)

// Sub-score weights. When a dimension cannot be computed (its columns
// are absent) the remaining weights are renormalized, so the overall
// score stays on a 0–100 scale.
const (
	weightCompleteness = 30
	weightConsistency  = 25
	weightTemporal     = 25
	weightContent      = 10
	weightBalance      = 10
)

// Content-quality bounds: posts outside this length range are counted
// as low quality.
const (
	minContentLen = 20
	maxContentLen = 10000
)

var requiredColumns = []dataset.Column{
	dataset.ColTitle, dataset.ColContent, dataset.ColAuthor,
	dataset.ColCreatedUTC, dataset.ColScore,
}

var spamMarkers = []string{
	"click here", "buy now", "free money", "limited offer",
	"subscribe to", "check out my",
}

// SubScore is one quality dimension: its 0–100 value and the issues
// that lowered it.
type SubScore struct {
	Score  float64  `json:"score"`
	Issues []string `json:"issues,omitempty"`
}

// Report is the full validation result.
type Report struct {
	Rows int `json:"rows"`

	Completeness *SubScore `json:"completeness,omitempty"`
	Consistency  *SubScore `json:"consistency,omitempty"`
	Temporal     *SubScore `json:"temporal_coverage,omitempty"`
	Content      *SubScore `json:"content_quality,omitempty"`
	Balance      *SubScore `json:"distribution_balance,omitempty"`

	// KeywordRelevance is the share of posts mentioning at least one
	// crisis keyword. Informational only; it does not affect Overall.
	KeywordRelevance *SubScore `json:"keyword_relevance,omitempty"`

	Overall float64 `json:"overall"`
	Rating  string  `json:"rating"`
}

// Validate scores the dataset. Keywords may be nil; when given they add
// the relevance section. An empty dataset scores zero overall.
func Validate(ds *dataset.Dataset, keywords []string) *Report {
	r := &Report{Rows: ds.Len()}
	if ds.Len() == 0 {
		r.Rating = rating(0)
		return r
	}

	r.Completeness = completeness(ds)
	r.Consistency = consistency(ds)
	r.Temporal = temporalCoverage(ds)
	r.Content = contentQuality(ds)
	r.Balance = distributionBalance(ds)
	if len(keywords) > 0 {
		r.KeywordRelevance = keywordRelevance(ds, keywords)
	}

	var weighted, weights float64
	add := func(s *SubScore, w float64) {
		if s != nil {
			weighted += s.Score * w
			weights += w
		}
	}
	add(r.Completeness, weightCompleteness)
	add(r.Consistency, weightConsistency)
	add(r.Temporal, weightTemporal)
	add(r.Content, weightContent)
	add(r.Balance, weightBalance)
	if weights > 0 {
		r.Overall = weighted / weights
	}
	r.Rating = rating(r.Overall)
	return r
}

func rating(score float64) string {
	switch {
	case score >= 90:
		return "excellent"
	case score >= 75:
		return "good"
	case score >= 60:
		return "fair"
	case score >= 40:
		return "poor"
	default:
		return "very poor"
	}
}

// completeness averages the non-empty fraction of each required column.
// A column missing from the dataset counts as fully empty.
func completeness(ds *dataset.Dataset) *SubScore {
	s := &SubScore{}
	n := float64(ds.Len())
	var sum float64
	for _, col := range requiredColumns {
		if !ds.Has(col) {
			s.Issues = append(s.Issues, "missing column: "+string(col))
			continue
		}
		filled := 0
		for _, p := range ds.Posts {
			if columnFilled(p, col) {
				filled++
			}
		}
		frac := float64(filled) / n
		sum += frac * 100
		if frac < 0.95 {
			s.Issues = append(s.Issues, "sparse column: "+string(col))
		}
	}
	s.Score = sum / float64(len(requiredColumns))
	return s
}

func columnFilled(p dataset.Post, col dataset.Column) bool {
	switch col {
	case dataset.ColTitle:
		return strings.TrimSpace(p.Title) != ""
	case dataset.ColContent:
		return strings.TrimSpace(p.Content) != ""
	case dataset.ColAuthor:
		return p.Author != ""
	case dataset.ColCreatedUTC:
		return !p.CreatedUTC.IsZero()
	case dataset.ColScore:
		return true
	default:
		return true
	}
}

// consistency checks each row against sanity rules: no future
// timestamps, no negative scores, upvote ratio within [0,1], content
// present. The score is the fraction of passed checks.
func consistency(ds *dataset.Dataset) *SubScore {
	s := &SubScore{}
	now := time.Now().UTC()

	checks, failures := 0, 0
	var future, negative, badRatio, empty int
	for _, p := range ds.Posts {
		if ds.Has(dataset.ColCreatedUTC) && !p.CreatedUTC.IsZero() {
			checks++
			if p.CreatedUTC.After(now) {
				failures++
				future++
			}
		}
		if ds.Has(dataset.ColScore) {
			checks++
			if p.Score < 0 {
				failures++
				negative++
			}
		}
		if ds.Has(dataset.ColUpvoteRatio) {
			checks++
			if p.UpvoteRatio < 0 || p.UpvoteRatio > 1 {
				failures++
				badRatio++
			}
		}
		if ds.Has(dataset.ColContent) {
			checks++
			if strings.TrimSpace(p.Content) == "" {
				failures++
				empty++
			}
		}
	}
	if checks == 0 {
		return nil
	}
	s.Score = float64(checks-failures) / float64(checks) * 100
	appendCount(&s.Issues, future, "posts with future timestamps")
	appendCount(&s.Issues, negative, "posts with negative scores")
	appendCount(&s.Issues, badRatio, "posts with upvote ratio outside [0,1]")
	appendCount(&s.Issues, empty, "posts with empty content")
	return s
}

// temporalCoverage measures the fraction of days in the dataset span
// that have at least one post.
func temporalCoverage(ds *dataset.Dataset) *SubScore {
	if !ds.Has(dataset.ColCreatedUTC) {
		return nil
	}
	days := make(map[string]struct{})
	var min, max time.Time
	for _, p := range ds.Posts {
		if p.CreatedUTC.IsZero() {
			continue
		}
		t := p.CreatedUTC.UTC()
		days[t.Format("2006-01-02")] = struct{}{}
		if min.IsZero() || t.Before(min) {
			min = t
		}
		if t.After(max) {
			max = t
		}
	}
	if len(days) == 0 {
		return nil
	}

	s := &SubScore{}
	span := int(max.Sub(min).Hours()/24) + 1
	s.Score = float64(len(days)) / float64(span) * 100
	if s.Score < 50 {
		s.Issues = append(s.Issues, "large gaps in daily coverage")
	}
	return s
}

// contentQuality is the share of posts with reasonable length and no
// obvious spam markers.
func contentQuality(ds *dataset.Dataset) *SubScore {
	if !ds.Has(dataset.ColContent) {
		return nil
	}
	s := &SubScore{}
	good := 0
	var short, long, spam int
	for _, p := range ds.Posts {
		n := len(strings.TrimSpace(p.Content))
		switch {
		case n < minContentLen:
			short++
		case n > maxContentLen:
			long++
		case isSpam(p.Content):
			spam++
		default:
			good++
		}
	}
	s.Score = float64(good) / float64(ds.Len()) * 100
	appendCount(&s.Issues, short, "posts shorter than 20 characters")
	appendCount(&s.Issues, long, "posts longer than 10000 characters")
	appendCount(&s.Issues, spam, "posts matching spam patterns")
	return s
}

func isSpam(content string) bool {
	lower := strings.ToLower(content)
	for _, m := range spamMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// distributionBalance penalizes corpora dominated by a single author or
// subreddit: 100 minus the mean of the top shares.
func distributionBalance(ds *dataset.Dataset) *SubScore {
	var shares []float64
	var issues []string
	if ds.Has(dataset.ColAuthor) {
		if top, name := topShare(ds, func(p dataset.Post) string {
			if p.Author == dataset.DeletedAuthor {
				return ""
			}
			return p.Author
		}); top > 0 {
			shares = append(shares, top)
			if top > 50 {
				issues = append(issues, "author "+name+" contributes over half the posts")
			}
		}
	}
	if ds.Has(dataset.ColSubreddit) {
		if top, name := topShare(ds, func(p dataset.Post) string { return p.Subreddit }); top > 0 {
			shares = append(shares, top)
			if top > 50 {
				issues = append(issues, "subreddit "+name+" contributes over half the posts")
			}
		}
	}
	if len(shares) == 0 {
		return nil
	}
	var sum float64
	for _, v := range shares {
		sum += v
	}
	return &SubScore{Score: 100 - sum/float64(len(shares)), Issues: issues}
}

func topShare(ds *dataset.Dataset, key func(dataset.Post) string) (float64, string) {
	counts := make(map[string]int)
	total := 0
	for _, p := range ds.Posts {
		k := key(p)
		if k == "" {
			continue
		}
		counts[k]++
		total++
	}
	if total == 0 {
		return 0, ""
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	best, bestKey := 0, ""
	for _, k := range keys {
		if counts[k] > best {
			best, bestKey = counts[k], k
		}
	}
	return float64(best) / float64(total) * 100, bestKey
}

// keywordRelevance is the share of posts whose title or content
// mentions at least one crisis keyword.
func keywordRelevance(ds *dataset.Dataset, keywords []string) *SubScore {
	lowered := make([]string, len(keywords))
	for i, kw := range keywords {
		lowered[i] = strings.ToLower(kw)
	}
	hits := 0
	for _, p := range ds.Posts {
		text := strings.ToLower(p.Title + " " + p.Content)
		for _, kw := range lowered {
			if kw != "" && strings.Contains(text, kw) {
				hits++
				break
			}
		}
	}
	s := &SubScore{Score: float64(hits) / float64(ds.Len()) * 100}
	if s.Score < 30 {
		s.Issues = append(s.Issues, "under 30% of posts mention a crisis keyword")
	}
	return s
}

func appendCount(issues *[]string, n int, what string) {
	if n > 0 {
		*issues = append(*issues, strconv.Itoa(n)+" "+what)
	}
}
