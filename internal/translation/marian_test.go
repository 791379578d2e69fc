package translation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

// echoServer answers every translate request by reversing the direction
// marker, enough to assert the request wiring without a real model.
func echoServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/translate" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}

		var req struct {
			Model  string `json:"model"`
			Text   string `json:"text"`
			Source string `json:"source"`
			Target string `json:"target"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if req.Model == "" {
			t.Error("expected a model name in the request")
		}

		json.NewEncoder(w).Encode(map[string]string{
			"translation": "[" + req.Target + "] " + req.Text,
		})
	}))
}

func TestMarianTranslate(t *testing.T) {
	server := echoServer(t)
	defer server.Close()

	client := NewMarianClient(server.URL, 512, 5, zap.NewNop())

	out, err := client.Translate(context.Background(), "Bonjour", "fr", "en")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out != "[en] Bonjour" {
		t.Fatalf("unexpected translation %q", out)
	}
}

func TestMarianTranslateIdentity(t *testing.T) {
	// No server: an identity pair must never hit the network.
	client := NewMarianClient("http://127.0.0.1:1", 512, 1, zap.NewNop())

	out, err := client.Translate(context.Background(), "hello", "en", "en")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out != "hello" {
		t.Fatalf("expected input unchanged, got %q", out)
	}
}

func TestMarianTranslateRoundTrip(t *testing.T) {
	server := echoServer(t)
	defer server.Close()

	client := NewMarianClient(server.URL, 512, 5, zap.NewNop())

	for _, lang := range []string{"fr", "de", "es", "hi"} {
		english, err := client.Translate(context.Background(), "plain ascii input", lang, "en")
		if err != nil {
			t.Fatalf("%s->en failed: %v", lang, err)
		}
		if _, err := client.Translate(context.Background(), english, "en", lang); err != nil {
			t.Fatalf("en->%s failed: %v", lang, err)
		}
	}
}

func TestMarianTranslateValidation(t *testing.T) {
	client := NewMarianClient("http://127.0.0.1:1", 5, 1, zap.NewNop())

	if _, err := client.Translate(context.Background(), "x", "xx", "en"); !errors.Is(err, ErrUnsupportedLanguage) {
		t.Fatalf("expected ErrUnsupportedLanguage, got %v", err)
	}
	if _, err := client.Translate(context.Background(), "too long text", "fr", "en"); !errors.Is(err, ErrTextTooLong) {
		t.Fatalf("expected ErrTextTooLong, got %v", err)
	}
}

func TestMarianTranslateServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewMarianClient(server.URL, 512, 5, zap.NewNop())

	_, err := client.Translate(context.Background(), "Bonjour", "fr", "en")
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}
}
