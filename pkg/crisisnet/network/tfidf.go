package network

import (
	"math"
	"sort"
	"strings"

	"github.com/crisislab/crisisnet/pkg/crisisnet/liwc"
)

// tfidfOptions mirror the vectorizer settings the similarity builder
// was tuned with: bounded vocabulary, uni+bi-grams, minimum document
// frequency 2.
type tfidfOptions struct {
	MaxFeatures int
	MinDocFreq  int
	Bigrams     bool
	Stopwords   map[string]struct{}
}

func defaultTFIDFOptions() tfidfOptions {
	return tfidfOptions{
		MaxFeatures: 1000,
		MinDocFreq:  2,
		Bigrams:     true,
		Stopwords:   englishStopwords(),
	}
}

// tfidfVector is a sparse l2-normalized document vector.
type tfidfVector map[string]float64

// vectorize builds smoothed-idf, l2-normalized TF-IDF vectors for the
// corpus. Returns nil when the vocabulary is empty (degenerate corpus).
func vectorize(texts []string, opts tfidfOptions) []tfidfVector {
	docs := make([][]string, len(texts))
	df := make(map[string]int)
	corpusFreq := make(map[string]int)

	for i, text := range texts {
		terms := ngrams(text, opts)
		docs[i] = terms

		seen := make(map[string]struct{}, len(terms))
		for _, t := range terms {
			corpusFreq[t]++
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			df[t]++
		}
	}

	// Vocabulary: min_df filter, then top max_features by corpus
	// frequency (ties broken alphabetically for determinism).
	vocab := make([]string, 0, len(df))
	for t, n := range df {
		if n >= opts.MinDocFreq {
			vocab = append(vocab, t)
		}
	}
	if len(vocab) == 0 {
		return nil
	}
	sort.Slice(vocab, func(i, j int) bool {
		if corpusFreq[vocab[i]] != corpusFreq[vocab[j]] {
			return corpusFreq[vocab[i]] > corpusFreq[vocab[j]]
		}
		return vocab[i] < vocab[j]
	})
	if opts.MaxFeatures > 0 && len(vocab) > opts.MaxFeatures {
		vocab = vocab[:opts.MaxFeatures]
	}
	inVocab := make(map[string]struct{}, len(vocab))
	for _, t := range vocab {
		inVocab[t] = struct{}{}
	}

	n := float64(len(texts))
	idf := make(map[string]float64, len(vocab))
	for _, t := range vocab {
		idf[t] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}

	vectors := make([]tfidfVector, len(texts))
	for i, terms := range docs {
		vec := make(tfidfVector)
		for _, t := range terms {
			if _, ok := inVocab[t]; ok {
				vec[t]++
			}
		}
		var norm float64
		for t := range vec {
			vec[t] *= idf[t]
			norm += vec[t] * vec[t]
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for t := range vec {
				vec[t] /= norm
			}
		}
		vectors[i] = vec
	}

	return vectors
}

// cosine returns the cosine similarity of two l2-normalized vectors.
func cosine(a, b tfidfVector) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for t, av := range a {
		if bv, ok := b[t]; ok {
			dot += av * bv
		}
	}
	return dot
}

// ngrams tokenizes one document into stopword-filtered unigrams plus,
// when enabled, adjacent bigrams joined by a space.
func ngrams(text string, opts tfidfOptions) []string {
	raw := liwc.Tokenize(text)
	words := make([]string, 0, len(raw))
	for _, w := range raw {
		if len(w) < 2 {
			continue
		}
		if _, stop := opts.Stopwords[w]; stop {
			continue
		}
		words = append(words, w)
	}

	if !opts.Bigrams {
		return words
	}
	terms := make([]string, 0, len(words)*2)
	terms = append(terms, words...)
	for i := 0; i+1 < len(words); i++ {
		terms = append(terms, words[i]+" "+words[i+1])
	}
	return terms
}

// englishStopwords returns the filter set applied before vectorizing.
func englishStopwords() map[string]struct{} {
	words := strings.Fields(`a about above after again against all am an and
any are as at be because been before being below between both but by can
could did do does doing down during each few for from further had has have
having he her here hers herself him himself his how i if in into is it its
itself just me more most my myself no nor not now of off on once only or
other our ours ourselves out over own same she should so some such than
that the their theirs them themselves then there these they this those
through to too under until up very was we were what when where which while
who whom why will with you your yours yourself yourselves`)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
