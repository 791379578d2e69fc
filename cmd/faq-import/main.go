package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/carelingo/backend/internal/ingest"
	appLogger "github.com/carelingo/backend/pkg/logger"
)

func main() {
	input := flag.String("in", "", "path to the HTML page to extract FAQ entries from")
	output := flag.String("out", "corpus.json", "path to write the JSON corpus to")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "usage: faq-import -in page.html [-out corpus.json]")
		os.Exit(2)
	}

	err := appLogger.Init("info", "console", "stdout")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer appLogger.Sync()

	importer := ingest.NewImporter(appLogger.GetLogger())

	count, err := importer.ImportFile(*input, *output)
	if err != nil {
		appLogger.Fatal("Import failed", zap.Error(err))
	}

	appLogger.Info("Corpus written",
		zap.String("path", *output),
		zap.Int("entries", count),
	)
}
