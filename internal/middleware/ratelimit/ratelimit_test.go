package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

func TestAllowWithinBudget(t *testing.T) {
	rl := New(Config{MaxRequestsPerMinute: 5})
	defer rl.Stop()

	for i := 0; i < 5; i++ {
		if !rl.allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.allow("1.2.3.4") {
		t.Fatal("request over budget should be denied")
	}
}

func TestAllowIsPerClient(t *testing.T) {
	rl := New(Config{MaxRequestsPerMinute: 1})
	defer rl.Stop()

	if !rl.allow("1.1.1.1") {
		t.Fatal("first client should be allowed")
	}
	if rl.allow("1.1.1.1") {
		t.Fatal("first client should be exhausted")
	}
	if !rl.allow("2.2.2.2") {
		t.Fatal("second client has its own bucket")
	}
}

func TestTokensRefill(t *testing.T) {
	rl := New(Config{MaxRequestsPerMinute: 10, WindowDuration: 100 * time.Millisecond})
	defer rl.Stop()

	for i := 0; i < 10; i++ {
		rl.allow("1.2.3.4")
	}
	if rl.allow("1.2.3.4") {
		t.Fatal("bucket should be empty")
	}

	time.Sleep(30 * time.Millisecond)
	if !rl.allow("1.2.3.4") {
		t.Fatal("tokens should refill over time")
	}
}

func TestMiddlewareReturns429(t *testing.T) {
	rl := New(Config{MaxRequestsPerMinute: 1})
	defer rl.Stop()

	app := fiber.New()
	app.Use(rl.Middleware())
	app.Get("/api/stats", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	get := func() *http.Response {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/stats", nil))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		return resp
	}

	if resp := get(); resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if resp := get(); resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.StatusCode)
	}
}
