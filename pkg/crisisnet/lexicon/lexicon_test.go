package lexicon

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAddCategory(t *testing.T) {
	l := New()
	l.AddCategory("Risk", []string{"Danger", "danger", " threat "})
	l.AddCategory("anx", []string{"worry"})

	cats := l.Categories()
	if len(cats) != 2 || cats[0] != "risk" || cats[1] != "anx" {
		t.Fatalf("unexpected categories: %v", cats)
	}
	if !l.Contains("risk", "danger") {
		t.Error("expected lowercase match for danger")
	}
	if !l.Contains("risk", "threat") {
		t.Error("expected trimmed match for threat")
	}
	if l.Contains("risk", "Danger") {
		t.Error("lookup should require a lower-cased token")
	}
	if got := len(l.Words("risk")); got != 2 {
		t.Errorf("expected 2 deduplicated words, got %d", got)
	}
}

func TestReAddKeepsOrder(t *testing.T) {
	l := New()
	l.AddCategory("risk", []string{"danger"})
	l.AddCategory("anx", []string{"worry"})
	l.AddCategory("risk", []string{"hazard"})

	cats := l.Categories()
	if cats[0] != "risk" || cats[1] != "anx" {
		t.Fatalf("re-add changed order: %v", cats)
	}
	if l.Contains("risk", "danger") {
		t.Error("re-add should replace the word set")
	}
	if !l.Contains("risk", "hazard") {
		t.Error("expected replacement word set")
	}
}

func TestDefault(t *testing.T) {
	l := Default()
	if l.Len() != 28 {
		t.Fatalf("expected 28 categories, got %d", l.Len())
	}

	// Spot-check a few category memberships.
	checks := map[string]string{
		"risk":      "danger",
		"cogproc":   "think",
		"percept":   "see",
		"negemo":    "terrible",
		"certainty": "sure",
	}
	for cat, word := range checks {
		if !l.Contains(cat, word) {
			t.Errorf("expected %q in category %q", word, cat)
		}
	}

	stats := l.Stats()
	if stats.Categories != 28 || stats.TotalWords == 0 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	content := `categories:
  - name: risk
    words: [meltdown, fallout]
  - name: custom
    words: [bespoke]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	l := Default()
	before := l.Len()
	if err := l.LoadFromYAML(path); err != nil {
		t.Fatalf("LoadFromYAML: %v", err)
	}

	if l.Len() != before+1 {
		t.Errorf("expected one new category, got %d -> %d", before, l.Len())
	}
	if !l.Contains("risk", "meltdown") {
		t.Error("expected risk to be replaced by the file's words")
	}
	if l.Contains("risk", "danger") {
		t.Error("built-in risk words should be gone after override")
	}
	if !l.Contains("custom", "bespoke") {
		t.Error("expected appended custom category")
	}
	if cats := l.Categories(); cats[0] == "custom" {
		t.Error("appended category should not move to the front")
	}
}
