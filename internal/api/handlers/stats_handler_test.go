package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/carelingo/backend/internal/storage/models"
)

type mockStatsStore struct {
	report  *models.StatsReport
	history []models.QueryRecord
	err     error
}

func (m *mockStatsStore) Stats() (*models.StatsReport, error) {
	return m.report, m.err
}

func (m *mockStatsStore) SessionHistory(string, int) ([]models.QueryRecord, error) {
	return m.history, m.err
}

func newStatsApp(store StatsStore) *fiber.App {
	handler := NewStatsHandler(store)
	app := fiber.New()
	app.Get("/api/stats", handler.HandleStats)
	app.Get("/api/history", handler.HandleSessionHistory)
	return app
}

func getJSON(t *testing.T, app *fiber.App, path string) (*http.Response, map[string]interface{}) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp, decodeBody(t, resp)
}

func TestHandleStats(t *testing.T) {
	store := &mockStatsStore{report: &models.StatsReport{
		TotalQueries:         4,
		AverageAccuracy:      0.55,
		LanguageDistribution: map[string]int{"en": 3, "fr": 1},
		AccuracyDistribution: map[string]int{"medium": 4},
		RecentQueries:        []models.RecentQuery{},
		GeneratedAt:          time.Now(),
	}}
	app := newStatsApp(store)

	resp, body := getJSON(t, app, "/api/stats")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["total_queries"] != float64(4) {
		t.Fatalf("unexpected total_queries %v", body["total_queries"])
	}
	if body["average_accuracy"] != 0.55 {
		t.Fatalf("unexpected average_accuracy %v", body["average_accuracy"])
	}
}

func TestHandleStatsStoreError(t *testing.T) {
	app := newStatsApp(&mockStatsStore{err: errors.New("db gone")})

	resp, body := getJSON(t, app, "/api/stats")
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	if body["error"] == nil {
		t.Fatal("expected error field")
	}
}

func TestHandleSessionHistory(t *testing.T) {
	store := &mockStatsStore{history: []models.QueryRecord{
		{ID: "q1", Message: "hello", Language: "en", Response: "hi", Confidence: 0.7, CreatedAt: time.Now()},
	}}
	app := newStatsApp(store)

	resp, body := getJSON(t, app, "/api/history?session_id=s-1")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["session_id"] != "s-1" {
		t.Fatalf("unexpected session_id %v", body["session_id"])
	}
	history, ok := body["history"].([]interface{})
	if !ok || len(history) != 1 {
		t.Fatalf("expected one history record, got %v", body["history"])
	}
}

func TestHandleSessionHistoryValidation(t *testing.T) {
	app := newStatsApp(&mockStatsStore{})

	resp, _ := getJSON(t, app, "/api/history")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 without session_id, got %d", resp.StatusCode)
	}

	resp, _ = getJSON(t, app, "/api/history?session_id=s-1&limit=9999")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for limit out of range, got %d", resp.StatusCode)
	}

	resp, _ = getJSON(t, app, "/api/history?session_id=s-1&limit=abc")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric limit, got %d", resp.StatusCode)
	}
}
