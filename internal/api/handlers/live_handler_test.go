package handlers

import (
	"testing"
	"time"

	"github.com/carelingo/backend/internal/storage/models"
)

func liveRecord(id string) *models.QueryRecord {
	return &models.QueryRecord{
		ID:         id,
		SessionID:  "session-1",
		Message:    "what should I do about a fever",
		Language:   "en",
		Confidence: 0.72,
		LatencyMS:  12,
		CreatedAt:  time.Now(),
	}
}

func TestExchangeCompletedNeverBlocksCaller(t *testing.T) {
	h := NewLiveHandler()

	// Flood well past the event buffer capacity. Excess events must be
	// dropped rather than stalling the caller, which sits on the chat
	// reply path.
	done := make(chan struct{})
	go func() {
		for i := 0; i < liveEventBuffer*10; i++ {
			h.ExchangeCompleted(liveRecord("q-flood"))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("ExchangeCompleted blocked the caller")
	}
}

func TestExchangeCompletedWithNoSubscribers(t *testing.T) {
	h := NewLiveHandler()

	start := time.Now()
	for i := 0; i < 100; i++ {
		h.ExchangeCompleted(liveRecord("q-1"))
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("expected fast return with no subscribers, took %v", elapsed)
	}
}
