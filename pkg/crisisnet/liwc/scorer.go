package liwc

import (
	"strings"
	"unicode"

	"github.com/crisislab/crisisnet/pkg/crisisnet/lexicon"
)

// Scorer computes per-category lexical percentages for one text.
type Scorer struct {
	lex *lexicon.Lexicon
}

// NewScorer creates a scorer over the given lexicon.
func NewScorer(lex *lexicon.Lexicon) *Scorer {
	return &Scorer{lex: lex}
}

// Score tokenizes text and returns one percentage per lexicon category:
// matches / total_tokens * 100. Duplicate tokens count multiply and the
// value is not capped. Empty or whitespace-only input scores every
// category 0.
func (s *Scorer) Score(text string) map[string]float64 {
	scores := make(map[string]float64, s.lex.Len())
	for _, cat := range s.lex.Categories() {
		scores[cat] = 0
	}

	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return scores
	}

	total := float64(len(tokens))
	for _, cat := range s.lex.Categories() {
		matches := 0
		for _, tok := range tokens {
			if s.lex.Contains(cat, tok) {
				matches++
			}
		}
		scores[cat] = float64(matches) / total * 100
	}

	return scores
}

// Tokenize splits text into lower-cased word tokens. A token is a
// maximal run of letters, digits, or underscores, matching the word
// boundaries the category word lists were built against.
func Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			current.WriteRune(unicode.ToLower(r))
		} else {
			flush()
		}
	}
	flush()

	return tokens
}
