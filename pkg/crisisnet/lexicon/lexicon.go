package lexicon

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Lexicon maps category names to trigger-word sets for per-document
// linguistic scoring:
// - Categories are ordered: score columns derived from a lexicon keep
//   declaration order, so output schemas are stable across runs
// - Matching is case-insensitive exact-token lookup (no stemming)
// - Word sets are fixed at load time; scoring never mutates them
type Lexicon struct {
	order []string
	cats  map[string]map[string]struct{}
}

// Category is one named trigger-word list.
type Category struct {
	Name  string
	Words []string
}

// New creates an empty lexicon.
func New() *Lexicon {
	return &Lexicon{
		cats: make(map[string]map[string]struct{}),
	}
}

// AddCategory registers a category with its trigger words. Words are
// lower-cased and deduplicated. Re-adding a category replaces its word
// set but keeps its original position in the declaration order.
func (l *Lexicon) AddCategory(name string, words []string) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return
	}

	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			set[w] = struct{}{}
		}
	}

	if _, exists := l.cats[name]; !exists {
		l.order = append(l.order, name)
	}
	l.cats[name] = set
}

// Categories returns category names in declaration order.
func (l *Lexicon) Categories() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// Contains reports whether token is a trigger word of the category.
// The token must already be lower-cased by the caller's tokenizer.
func (l *Lexicon) Contains(category, token string) bool {
	set, ok := l.cats[category]
	if !ok {
		return false
	}
	_, ok = set[token]
	return ok
}

// Words returns the trigger words of a category in unspecified order.
// Returns nil for unknown categories.
func (l *Lexicon) Words(category string) []string {
	set, ok := l.cats[category]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(set))
	for w := range set {
		out = append(out, w)
	}
	return out
}

// Len returns the number of categories.
func (l *Lexicon) Len() int {
	return len(l.order)
}

// Stats holds summary counts about lexicon contents.
type Stats struct {
	Categories int
	TotalWords int
}

// Stats returns statistics about the lexicon contents.
func (l *Lexicon) Stats() Stats {
	total := 0
	for _, set := range l.cats {
		total += len(set)
	}
	return Stats{Categories: len(l.order), TotalWords: total}
}

// LoadFromYAML loads categories from a YAML file, merged on top of the
// receiver (new categories appended, existing ones replaced).
//
// Expected format:
//
//	categories:
//	  - name: risk
//	    words: [danger, threat, warning]
//	  - name: anx
//	    words: [worry, fear, panic]
func (l *Lexicon) LoadFromYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var config struct {
		Categories []struct {
			Name  string   `yaml:"name"`
			Words []string `yaml:"words"`
		} `yaml:"categories"`
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return err
	}

	for _, entry := range config.Categories {
		l.AddCategory(entry.Name, entry.Words)
	}
	return nil
}
