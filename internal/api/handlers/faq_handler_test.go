package handlers

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/carelingo/backend/internal/faq"
)

func newFAQApp() *fiber.App {
	handler := NewFAQHandler([]faq.Entry{
		{Category: "covid19", Question: "q1", Answer: "a1"},
		{Category: "covid19", Question: "q2", Answer: "a2"},
		{Category: "sleep", Question: "q3", Answer: "a3"},
	})

	app := fiber.New()
	app.Get("/api/faq/categories", handler.HandleCategories)
	app.Get("/api/faq", handler.HandleEntries)
	return app
}

func TestHandleCategories(t *testing.T) {
	app := newFAQApp()

	resp, body := getJSON(t, app, "/api/faq/categories")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	categories, ok := body["categories"].([]interface{})
	if !ok || len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %v", body["categories"])
	}
	if categories[0] != "covid19" || categories[1] != "sleep" {
		t.Fatalf("expected sorted categories, got %v", categories)
	}
}

func TestHandleEntries(t *testing.T) {
	app := newFAQApp()

	resp, body := getJSON(t, app, "/api/faq")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	entries, ok := body["entries"].([]interface{})
	if !ok || len(entries) != 3 {
		t.Fatalf("expected all 3 entries, got %v", body["entries"])
	}

	resp, body = getJSON(t, app, "/api/faq?category=sleep")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	entries, ok = body["entries"].([]interface{})
	if !ok || len(entries) != 1 {
		t.Fatalf("expected 1 sleep entry, got %v", body["entries"])
	}

	resp, _ = getJSON(t, app, "/api/faq?category=bogus")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown category, got %d", resp.StatusCode)
	}
}
