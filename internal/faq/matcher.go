package faq

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

// FallbackAnswer is returned when no entry clears the confidence threshold.
const FallbackAnswer = "I'm not sure about that specific question. For accurate medical advice, please consult with a healthcare professional. You can also try rephrasing your question or asking about common health topics like symptoms, medications, or prevention."

// Result is the outcome of matching one query against the corpus.
type Result struct {
	Question   string
	Answer     string
	Category   string
	Confidence float64
	Fallback   bool
}

// Matcher ranks a free-text English query against the corpus questions by
// TF-IDF cosine similarity. The vocabulary and entry vectors are fitted once
// at construction and never change; adding entries requires a restart.
type Matcher struct {
	entries   []Entry
	vocab     map[string]int
	idf       []float64
	vectors   [][]float64
	threshold float64
	logger    *zap.Logger
}

func NewMatcher(entries []Entry, threshold float64, logger *zap.Logger) (*Matcher, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("corpus is empty")
	}

	m := &Matcher{
		entries:   entries,
		vocab:     make(map[string]int),
		threshold: threshold,
		logger:    logger,
	}

	entryTerms := make([][]string, len(entries))
	docFreq := make(map[string]int)

	for i, entry := range entries {
		terms, err := extractTerms(entry.Question)
		if err != nil {
			return nil, fmt.Errorf("failed to tokenize corpus question %q: %w", entry.Question, err)
		}
		entryTerms[i] = terms

		seen := make(map[string]bool)
		for _, t := range terms {
			if _, ok := m.vocab[t]; !ok {
				m.vocab[t] = len(m.vocab)
			}
			if !seen[t] {
				seen[t] = true
				docFreq[t]++
			}
		}
	}

	// Smoothed idf, matching the usual TF-IDF formulation:
	// idf(t) = ln((1+n)/(1+df)) + 1.
	n := float64(len(entries))
	m.idf = make([]float64, len(m.vocab))
	for term, idx := range m.vocab {
		m.idf[idx] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	m.vectors = make([][]float64, len(entries))
	for i, terms := range entryTerms {
		m.vectors[i] = m.vectorize(terms)
	}

	logger.Info("FAQ matcher initialized",
		zap.Int("entries", len(entries)),
		zap.Int("vocabulary", len(m.vocab)),
		zap.Float64("threshold", threshold),
	)

	return m, nil
}

// Match returns the best-matching entry for an English query. Queries whose
// best similarity falls below the threshold get the fallback answer with
// confidence 0. Ties keep the first entry in corpus order.
func (m *Matcher) Match(query string) (Result, error) {
	terms, err := extractTerms(query)
	if err != nil {
		return Result{}, fmt.Errorf("failed to tokenize query: %w", err)
	}

	queryVec := m.vectorize(terms)

	bestIdx := -1
	bestScore := 0.0
	for i, vec := range m.vectors {
		score := dot(queryVec, vec)
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	if bestIdx < 0 || bestScore < m.threshold {
		m.logger.Debug("Query below confidence threshold",
			zap.Float64("best_score", bestScore),
		)
		return Result{
			Answer:     FallbackAnswer,
			Confidence: 0,
			Fallback:   true,
		}, nil
	}

	entry := m.entries[bestIdx]
	m.logger.Debug("Query matched",
		zap.String("question", entry.Question),
		zap.Float64("confidence", bestScore),
	)

	return Result{
		Question:   entry.Question,
		Answer:     entry.Answer,
		Category:   entry.Category,
		Confidence: bestScore,
	}, nil
}

// Entries returns the immutable corpus backing this matcher.
func (m *Matcher) Entries() []Entry {
	return m.entries
}

// vectorize builds an L2-normalized TF-IDF vector over the fitted
// vocabulary. Out-of-vocabulary terms are dropped.
func (m *Matcher) vectorize(terms []string) []float64 {
	vec := make([]float64, len(m.vocab))
	for _, t := range terms {
		if idx, ok := m.vocab[t]; ok {
			vec[idx] += m.idf[idx]
		}
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}

	return vec
}

// dot of two L2-normalized vectors is their cosine similarity.
func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
