// Package reddit fetches posts from Reddit's public JSON listing
// endpoints. No OAuth flow: the listing endpoints only need a
// descriptive User-Agent, and the client keeps a fixed delay between
// requests to stay inside the unauthenticated rate limit.
package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	stdhtml "html"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/crisislab/crisisnet/pkg/crisisnet/dataset"
)

const apiBase = "https://www.reddit.com"

// DefaultRequestDelay spaces listing requests.
const DefaultRequestDelay = 2 * time.Second

// Client polls listing endpoints sequentially.
type Client struct {
	httpClient *http.Client
	userAgent  string
	delay      time.Duration
	lastCall   time.Time

	// baseURL is swapped out by tests.
	baseURL string
}

// Options configure a Client. Zero values select defaults.
type Options struct {
	UserAgent    string
	RequestDelay time.Duration
	HTTPClient   *http.Client
}

// New creates a listing client.
func New(opts Options) *Client {
	c := &Client{
		httpClient: opts.HTTPClient,
		userAgent:  opts.UserAgent,
		delay:      opts.RequestDelay,
		baseURL:    apiBase,
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if c.userAgent == "" {
		c.userAgent = "crisisnet-collector/1.0"
	}
	if c.delay <= 0 {
		c.delay = DefaultRequestDelay
	}
	return c
}

// listing mirrors the JSON shape of /new.json and /search.json.
type listing struct {
	Data struct {
		After    string `json:"after"`
		Children []struct {
			Data listingPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type listingPost struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Selftext    string  `json:"selftext"`
	Author      string  `json:"author"`
	Subreddit   string  `json:"subreddit"`
	CreatedUTC  float64 `json:"created_utc"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	UpvoteRatio float64 `json:"upvote_ratio"`
	Permalink   string  `json:"permalink"`
}

// SubredditNew fetches up to max posts from a subreddit's /new
// listing, paginating until max is reached or the listing ends.
func (c *Client) SubredditNew(ctx context.Context, subreddit string, max int) ([]dataset.Post, error) {
	if max <= 0 {
		max = 100
	}
	var out []dataset.Post
	after := ""
	for len(out) < max {
		batch := max - len(out)
		if batch > 100 {
			batch = 100
		}
		q := url.Values{"limit": {fmt.Sprint(batch)}}
		if after != "" {
			q.Set("after", after)
		}
		l, err := c.fetch(ctx, fmt.Sprintf("%s/r/%s/new.json?%s", c.baseURL, url.PathEscape(subreddit), q.Encode()))
		if err != nil {
			return out, err
		}
		if len(l.Data.Children) == 0 {
			break
		}
		for _, child := range l.Data.Children {
			out = append(out, toPost(child.Data))
		}
		after = l.Data.After
		if after == "" {
			break
		}
	}
	if len(out) > max {
		out = out[:max]
	}
	return out, nil
}

// Search queries sitewide search, restricted to a subreddit when one is
// given.
func (c *Client) Search(ctx context.Context, subreddit, query string, max int) ([]dataset.Post, error) {
	if max <= 0 {
		max = 100
	}
	q := url.Values{
		"q":     {query},
		"limit": {fmt.Sprint(max)},
		"sort":  {"new"},
	}
	endpoint := c.baseURL + "/search.json"
	if subreddit != "" {
		q.Set("restrict_sr", "1")
		endpoint = fmt.Sprintf("%s/r/%s/search.json", c.baseURL, url.PathEscape(subreddit))
	}
	l, err := c.fetch(ctx, endpoint+"?"+q.Encode())
	if err != nil {
		return nil, err
	}
	var out []dataset.Post
	for _, child := range l.Data.Children {
		out = append(out, toPost(child.Data))
	}
	if len(out) > max {
		out = out[:max]
	}
	return out, nil
}

func (c *Client) fetch(ctx context.Context, rawURL string) (*listing, error) {
	if wait := c.delay - time.Since(c.lastCall); wait > 0 {
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	c.lastCall = time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: HTTP %d", rawURL, resp.StatusCode)
	}

	var l listing
	if err := json.NewDecoder(resp.Body).Decode(&l); err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}
	return &l, nil
}

func toPost(lp listingPost) dataset.Post {
	p := dataset.Post{
		ID:          lp.ID,
		Title:       lp.Title,
		Content:     StripHTML(lp.Selftext),
		Author:      lp.Author,
		Subreddit:   lp.Subreddit,
		Score:       lp.Score,
		NumComments: lp.NumComments,
		UpvoteRatio: lp.UpvoteRatio,
	}
	if lp.CreatedUTC > 0 {
		sec := int64(lp.CreatedUTC)
		p.CreatedUTC = time.Unix(sec, 0).UTC()
	}
	if lp.Permalink != "" {
		p.URL = apiBase + lp.Permalink
	}
	p.ContentHash = dataset.HashContent(p.Content)
	return p
}

// StripHTML flattens HTML-escaped selftext to plain text. Listing
// responses escape embedded markup, so entities are resolved before
// stripping tags. Unparseable input is returned unchanged.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	s = stdhtml.UnescapeString(s)
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return strings.TrimSpace(b.String())
}
