// Package evaluation runs the matcher offline against a labelled dataset so
// corpus or tokenizer changes can be checked before deploying.
package evaluation

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/carelingo/backend/internal/faq"
)

type DatasetItem struct {
	Query        string `json:"query"`
	WantCategory string `json:"want_category"`
}

type Report struct {
	TotalQueries    int
	Hits            int
	Misses          int
	Fallbacks       int
	AvgConfidence   float64
	HitRate         float64
	FallbackRate    float64
	CategoryHits    map[string]int
	CategoryCounts  map[string]int
}

type Matcher interface {
	Match(query string) (faq.Result, error)
}

type Evaluator struct {
	matcher Matcher
	logger  *zap.Logger
}

func NewEvaluator(matcher Matcher, logger *zap.Logger) *Evaluator {
	return &Evaluator{
		matcher: matcher,
		logger:  logger,
	}
}

func (e *Evaluator) Run(items []DatasetItem) (*Report, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("dataset is empty")
	}

	report := &Report{
		TotalQueries:   len(items),
		CategoryHits:   make(map[string]int),
		CategoryCounts: make(map[string]int),
	}

	var totalConfidence float64

	for _, item := range items {
		report.CategoryCounts[item.WantCategory]++

		result, err := e.matcher.Match(item.Query)
		if err != nil {
			return nil, fmt.Errorf("match failed for %q: %w", item.Query, err)
		}

		totalConfidence += result.Confidence

		if result.Fallback {
			report.Fallbacks++
			report.Misses++
			continue
		}

		if result.Category == item.WantCategory {
			report.Hits++
			report.CategoryHits[item.WantCategory]++
		} else {
			report.Misses++
			e.logger.Debug("Category mismatch",
				zap.String("query", item.Query),
				zap.String("want", item.WantCategory),
				zap.String("got", result.Category),
			)
		}
	}

	report.AvgConfidence = totalConfidence / float64(report.TotalQueries)
	report.HitRate = float64(report.Hits) / float64(report.TotalQueries)
	report.FallbackRate = float64(report.Fallbacks) / float64(report.TotalQueries)

	e.logger.Info("Evaluation completed",
		zap.Int("total", report.TotalQueries),
		zap.Int("hits", report.Hits),
		zap.Int("fallbacks", report.Fallbacks),
		zap.Float64("hit_rate", report.HitRate),
	)

	return report, nil
}

// DefaultDataset rephrases corpus questions so the evaluation is not a
// trivial identity check.
func DefaultDataset() []DatasetItem {
	return []DatasetItem{
		{Query: "I think I have the flu, what symptoms should I look for?", WantCategory: "general_health"},
		{Query: "Tips to avoid catching an illness", WantCategory: "prevention"},
		{Query: "My temperature is high, what should I do?", WantCategory: "symptoms"},
		{Query: "What does a COVID infection feel like?", WantCategory: "covid19"},
		{Query: "Safe daily dose of acetaminophen", WantCategory: "medications"},
		{Query: "Chest pain, should I go to the ER?", WantCategory: "emergency"},
		{Query: "Best ways to deal with stress", WantCategory: "mental_health"},
		{Query: "What should a healthy diet look like?", WantCategory: "nutrition"},
		{Query: "Weekly exercise recommendations for adults", WantCategory: "fitness"},
		{Query: "How many hours of sleep do I need?", WantCategory: "sleep"},
		{Query: "Which vaccines should an adult get?", WantCategory: "vaccinations"},
		{Query: "Sunscreen and skin protection advice", WantCategory: "skin_health"},
		{Query: "Sneezing and itchy eyes every spring", WantCategory: "allergies"},
	}
}
