package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"

	"go.uber.org/zap"

	"github.com/carelingo/backend/internal/evaluation"
	"github.com/carelingo/backend/internal/faq"
	"github.com/carelingo/backend/internal/storage/sqlite"
	appLogger "github.com/carelingo/backend/pkg/logger"
)

func main() {
	corpusPath := flag.String("corpus", "", "path to a JSON corpus; the built-in corpus is used when empty")
	datasetPath := flag.String("dataset", "", "path to a JSON evaluation dataset; the built-in dataset is used when empty")
	threshold := flag.Float64("threshold", 0.1, "minimum cosine similarity before falling back")
	seed := flag.Int("seed", 0, "insert this many sample records into the query log and exit")
	dbPath := flag.String("db", "./data/chatbot.db", "SQLite database path, used with -seed")
	flag.Parse()

	err := appLogger.Init("info", "console", "stdout")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer appLogger.Sync()

	if *seed > 0 {
		seedDatabase(*dbPath, *seed)
		return
	}

	entries := faq.DefaultCorpus()
	if *corpusPath != "" {
		entries, err = faq.LoadCorpus(*corpusPath)
		if err != nil {
			appLogger.Fatal("Failed to load corpus", zap.Error(err))
		}
	}

	matcher, err := faq.NewMatcher(entries, *threshold, appLogger.GetLogger())
	if err != nil {
		appLogger.Fatal("Failed to build matcher", zap.Error(err))
	}

	items := evaluation.DefaultDataset()
	if *datasetPath != "" {
		items, err = loadDataset(*datasetPath)
		if err != nil {
			appLogger.Fatal("Failed to load dataset", zap.Error(err))
		}
	}

	evaluator := evaluation.NewEvaluator(matcher, appLogger.GetLogger())
	report, err := evaluator.Run(items)
	if err != nil {
		appLogger.Fatal("Evaluation failed", zap.Error(err))
	}

	printReport(report)
}

func loadDataset(path string) ([]evaluation.DatasetItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}

	var items []evaluation.DatasetItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse dataset file: %w", err)
	}

	return items, nil
}

func seedDatabase(path string, n int) {
	client, err := sqlite.NewClient(path)
	if err != nil {
		appLogger.Fatal("Failed to open database", zap.Error(err))
	}
	defer client.Close()

	if err := client.InitSchema(); err != nil {
		appLogger.Fatal("Failed to initialize schema", zap.Error(err))
	}

	if err := client.SeedSampleData(n); err != nil {
		appLogger.Fatal("Failed to seed sample data", zap.Error(err))
	}

	appLogger.Info("Sample data inserted", zap.Int("records", n), zap.String("db", path))
}

func printReport(r *evaluation.Report) {
	fmt.Printf("Queries:        %d\n", r.TotalQueries)
	fmt.Printf("Hits:           %d (%.1f%%)\n", r.Hits, r.HitRate*100)
	fmt.Printf("Misses:         %d\n", r.Misses)
	fmt.Printf("Fallbacks:      %d (%.1f%%)\n", r.Fallbacks, r.FallbackRate*100)
	fmt.Printf("Avg confidence: %.3f\n", r.AvgConfidence)

	categories := make([]string, 0, len(r.CategoryCounts))
	for category := range r.CategoryCounts {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	fmt.Println("\nPer category:")
	for _, category := range categories {
		fmt.Printf("  %-20s %d/%d\n", category, r.CategoryHits[category], r.CategoryCounts[category])
	}
}
