// Package ingest turns HTML FAQ pages into corpus JSON consumable by the
// matcher. Two common page shapes are supported: definition lists (dt/dd)
// and heading-plus-paragraph sequences.
package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/carelingo/backend/internal/faq"
)

var whitespacePattern = regexp.MustCompile(`\s+`)

type Importer struct {
	logger *zap.Logger
}

func NewImporter(logger *zap.Logger) *Importer {
	return &Importer{
		logger: logger,
	}
}

// Extract parses question/answer pairs out of an HTML document. Sections are
// categorized by the nearest preceding h2, lowercased with spaces collapsed
// to underscores; pages without section headings get category "general".
func (i *Importer) Extract(html string) ([]faq.Entry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, nav, footer, header, aside").Each(func(_ int, s *goquery.Selection) {
		s.Remove()
	})

	var entries []faq.Entry

	doc.Find("dl").Each(func(_ int, dl *goquery.Selection) {
		category := categoryFor(dl)
		questions := dl.Find("dt")
		answers := dl.Find("dd")
		questions.Each(func(idx int, dt *goquery.Selection) {
			if idx >= answers.Length() {
				return
			}
			entry := buildEntry(category, dt.Text(), answers.Eq(idx).Text())
			if entry != nil {
				entries = append(entries, *entry)
			}
		})
	})

	doc.Find("h3").Each(func(_ int, h *goquery.Selection) {
		answer := h.NextFiltered("p")
		if answer.Length() == 0 {
			return
		}
		entry := buildEntry(categoryFor(h), h.Text(), answer.Text())
		if entry != nil {
			entries = append(entries, *entry)
		}
	})

	if len(entries) == 0 {
		return nil, fmt.Errorf("no question/answer pairs found in document")
	}

	i.logger.Info("FAQ entries extracted", zap.Int("entries", len(entries)))
	return entries, nil
}

// ImportFile extracts entries from an HTML file and writes corpus JSON.
func (i *Importer) ImportFile(htmlPath, outPath string) (int, error) {
	html, err := os.ReadFile(htmlPath)
	if err != nil {
		return 0, fmt.Errorf("failed to read HTML file: %w", err)
	}

	entries, err := i.Extract(string(html))
	if err != nil {
		return 0, err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("failed to marshal corpus: %w", err)
	}

	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return 0, fmt.Errorf("failed to write corpus file: %w", err)
	}

	i.logger.Info("Corpus written",
		zap.String("path", outPath),
		zap.Int("entries", len(entries)),
	)

	return len(entries), nil
}

func buildEntry(category, question, answer string) *faq.Entry {
	question = cleanText(question)
	answer = cleanText(answer)
	if question == "" || answer == "" {
		return nil
	}

	return &faq.Entry{
		Category: category,
		Question: question,
		Answer:   answer,
	}
}

func categoryFor(s *goquery.Selection) string {
	heading := s.PrevAllFiltered("h2").First().Text()
	heading = cleanText(heading)
	if heading == "" {
		return "general"
	}

	category := strings.ToLower(heading)
	category = whitespacePattern.ReplaceAllString(category, "_")
	return category
}

func cleanText(text string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}
