package dataset

import (
	"strings"
	"testing"
)

func TestCleanRemovesDeletedAndBots(t *testing.T) {
	ds := New(ColPostID, ColContent, ColAuthor, ColScore)
	ds.Posts = []Post{
		{ID: "p1", Author: "alice", Content: "The river is rising fast near the east bank today", Score: 5},
		{ID: "p2", Author: "[deleted]", Content: "Gone but long enough to pass the length bound here", Score: 3},
		{ID: "p3", Author: "AutoModerator", Content: "Your post has been filtered for review by the moderators", Score: 1},
		{ID: "p4", Author: "floodalertbot", Content: "Automated flood gauge reading for the east bank station", Score: 0},
		{ID: "p5", Author: "bob", Content: "Reminder that I am a bot and this action was performed automatically", Score: 2},
	}

	res := ds.Clean(CleanOptions{OutlierStdDevs: -1})
	if res.Deleted != 1 {
		t.Errorf("deleted = %d, want 1", res.Deleted)
	}
	if res.Bots != 3 {
		t.Errorf("bots = %d, want 3", res.Bots)
	}
	if len(ds.Posts) != 1 || ds.Posts[0].ID != "p1" {
		t.Fatalf("kept = %+v, want only p1", ds.Posts)
	}
	if res.Kept != 1 || res.Input != 5 {
		t.Errorf("result = %+v", res)
	}
}

func TestCleanDeduplicates(t *testing.T) {
	first := "Flood warning issued for the east bank this morning"
	second := "Evacuation routes are open and shelters are ready now"
	ds := New(ColPostID, ColContent, ColAuthor)
	ds.Posts = []Post{
		{ID: "p1", Author: "alice", Content: first},
		{ID: "p1", Author: "alice", Content: second},
		{ID: "p2", Author: "bob", Content: "  Flood   warning issued for the east bank this morning "},
		{ID: "p3", Author: "carol", Content: second},
	}

	res := ds.Clean(CleanOptions{OutlierStdDevs: -1})
	if res.Duplicates != 2 {
		t.Errorf("duplicates = %d, want 2 (repeated id, repeated content)", res.Duplicates)
	}
	if len(ds.Posts) != 2 || ds.Posts[0].ID != "p1" || ds.Posts[1].ID != "p3" {
		t.Fatalf("kept = %+v, want p1 and p3", ds.Posts)
	}
	if !ds.Has(ColContentHash) {
		t.Error("content hash column should be present after cleaning")
	}
	if ds.Posts[0].Content != first {
		t.Errorf("content = %q, want normalized whitespace", ds.Posts[0].Content)
	}
}

func TestCleanLengthBounds(t *testing.T) {
	ds := New(ColPostID, ColContent)
	ds.Posts = []Post{
		{ID: "p1", Content: "too short"},
		{ID: "p2", Content: strings.Repeat("x", 30)},
		{ID: "p3", Content: strings.Repeat("y", 20000)},
	}

	res := ds.Clean(CleanOptions{OutlierStdDevs: -1})
	if res.Length != 2 {
		t.Errorf("length removals = %d, want 2", res.Length)
	}
	if len(ds.Posts) != 1 || ds.Posts[0].ID != "p2" {
		t.Fatalf("kept = %+v, want only p2", ds.Posts)
	}
}

func TestCleanScoreOutliers(t *testing.T) {
	base := "Heavy rain expected again tomorrow across the region"
	ds := New(ColPostID, ColContent, ColScore)
	ds.Posts = []Post{
		{ID: "p1", Content: base + " one", Score: 10},
		{ID: "p2", Content: base + " two", Score: 12},
		{ID: "p3", Content: base + " three", Score: 11},
		{ID: "p4", Content: base + " four", Score: 9},
		{ID: "p5", Content: base + " five", Score: 1000},
	}

	res := ds.Clean(CleanOptions{OutlierStdDevs: 1})
	if res.Outliers != 1 {
		t.Errorf("outliers = %d, want 1", res.Outliers)
	}
	for _, p := range ds.Posts {
		if p.ID == "p5" {
			t.Error("outlier p5 should be removed")
		}
	}
	if res.Kept != 4 {
		t.Errorf("kept = %d, want 4", res.Kept)
	}
}

func TestCleanEmptyDataset(t *testing.T) {
	ds := New(ColPostID, ColContent)
	res := ds.Clean(CleanOptions{})
	if res.Input != 0 || res.Kept != 0 {
		t.Errorf("result = %+v", res)
	}
}
