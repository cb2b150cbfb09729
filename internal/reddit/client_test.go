package reddit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleListing = `{
  "data": {
    "after": "",
    "children": [
      {"data": {
        "id": "abc",
        "title": "Flood warning issued",
        "selftext": "The river is &lt;b&gt;rising&lt;/b&gt; fast",
        "author": "alice",
        "subreddit": "floods",
        "created_utc": 1688205600,
        "score": 42,
        "num_comments": 7,
        "upvote_ratio": 0.93,
        "permalink": "/r/floods/comments/abc/flood_warning/"
      }}
    ]
  }
}`

func testClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := New(Options{
		UserAgent:    "test-agent",
		RequestDelay: 1,
		HTTPClient:   srv.Client(),
	})
	return c, srv
}

func TestSubredditNew(t *testing.T) {
	var gotAgent string
	c, srv := testClient(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.Write([]byte(sampleListing))
	})
	defer srv.Close()
	c.baseURL = srv.URL

	posts, err := c.SubredditNew(context.Background(), "floods", 10)
	if err != nil {
		t.Fatal(err)
	}
	if gotAgent != "test-agent" {
		t.Errorf("user agent = %q", gotAgent)
	}
	if len(posts) != 1 {
		t.Fatalf("posts = %d", len(posts))
	}

	p := posts[0]
	if p.ID != "abc" || p.Author != "alice" || p.Score != 42 {
		t.Errorf("post = %+v", p)
	}
	if p.Content != "The river is rising fast" {
		t.Errorf("content = %q, want HTML stripped", p.Content)
	}
	if p.CreatedUTC.Unix() != 1688205600 {
		t.Errorf("timestamp = %v", p.CreatedUTC)
	}
	if p.ContentHash == "" {
		t.Error("content hash missing")
	}
	if p.URL == "" {
		t.Error("permalink should become a URL")
	}
}

func TestSearchRestrictedToSubreddit(t *testing.T) {
	var gotPath, gotQuery string
	c, srv := testClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(sampleListing))
	})
	defer srv.Close()
	c.baseURL = srv.URL

	posts, err := c.Search(context.Background(), "floods", "evacuation", 5)
	if err != nil {
		t.Fatal(err)
	}
	if gotPath != "/r/floods/search.json" {
		t.Errorf("path = %q", gotPath)
	}
	if gotQuery != "evacuation" {
		t.Errorf("query = %q", gotQuery)
	}
	if len(posts) != 1 {
		t.Errorf("posts = %d", len(posts))
	}
}

func TestFetchHTTPError(t *testing.T) {
	c, srv := testClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})
	defer srv.Close()
	c.baseURL = srv.URL

	if _, err := c.SubredditNew(context.Background(), "floods", 10); err == nil {
		t.Fatal("expected an error on HTTP 429")
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct{ in, want string }{
		{"plain text", "plain text"},
		{"<p>hello <b>world</b></p>", "hello world"},
		{"a &amp; b", "a & b"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StripHTML(tt.in); got != tt.want {
			t.Errorf("StripHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
