package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/carelingo/backend/internal/faq"
	"github.com/carelingo/backend/internal/storage/models"
	"github.com/carelingo/backend/internal/translation"
)

type mockTranslator struct {
	translateFn func(ctx context.Context, text, source, target string) (string, error)
	calls       []string
}

func (m *mockTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	m.calls = append(m.calls, source+"-"+target)
	if m.translateFn != nil {
		return m.translateFn(ctx, text, source, target)
	}
	return "[" + target + "] " + text, nil
}

type mockMatcher struct {
	result   faq.Result
	err      error
	gotQuery string
}

func (m *mockMatcher) Match(query string) (faq.Result, error) {
	m.gotQuery = query
	return m.result, m.err
}

type mockStore struct {
	records []*models.QueryRecord
	err     error
}

func (m *mockStore) InsertQueryRecord(r *models.QueryRecord) error {
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, r)
	return nil
}

type mockObserver struct {
	records []*models.QueryRecord
}

func (m *mockObserver) ExchangeCompleted(r *models.QueryRecord) {
	m.records = append(m.records, r)
}

func newTestService(translator *mockTranslator, matcher *mockMatcher, store *mockStore) *Service {
	return NewService(translator, matcher, store, zap.NewNop())
}

func TestProcessMessageEnglishSkipsTranslation(t *testing.T) {
	translator := &mockTranslator{}
	matcher := &mockMatcher{result: faq.Result{
		Answer:     "Rest and drink fluids.",
		Category:   "symptoms",
		Confidence: 0.7,
	}}
	store := &mockStore{}
	svc := newTestService(translator, matcher, store)

	resp, err := svc.ProcessMessage(context.Background(), Request{
		Message:  "What should I do for a fever?",
		Language: "en",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(translator.calls) != 0 {
		t.Fatalf("expected no translation calls for English, got %v", translator.calls)
	}
	if resp.Response != "Rest and drink fluids." {
		t.Fatalf("unexpected response %q", resp.Response)
	}
	if resp.Accuracy != 0.7 {
		t.Fatalf("expected accuracy 0.7, got %f", resp.Accuracy)
	}
	if resp.QueryID == "" {
		t.Fatal("expected a query id")
	}
	if len(store.records) != 1 {
		t.Fatalf("expected one logged record, got %d", len(store.records))
	}
}

func TestProcessMessageTranslatesBothWays(t *testing.T) {
	translator := &mockTranslator{}
	matcher := &mockMatcher{result: faq.Result{
		Answer:     "Drink water.",
		Confidence: 0.5,
	}}
	store := &mockStore{}
	svc := newTestService(translator, matcher, store)

	resp, err := svc.ProcessMessage(context.Background(), Request{
		Message:   "Combien d'eau dois-je boire ?",
		Language:  "fr",
		SessionID: "s-1",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(translator.calls) != 2 || translator.calls[0] != "fr-en" || translator.calls[1] != "en-fr" {
		t.Fatalf("expected fr-en then en-fr, got %v", translator.calls)
	}
	if matcher.gotQuery != "[en] Combien d'eau dois-je boire ?" {
		t.Fatalf("matcher got untranslated query %q", matcher.gotQuery)
	}
	if resp.Response != "[fr] Drink water." {
		t.Fatalf("expected translated reply, got %q", resp.Response)
	}

	record := store.records[0]
	if record.SessionID != "s-1" {
		t.Fatalf("expected caller session id, got %q", record.SessionID)
	}
	if record.Message != "Combien d'eau dois-je boire ?" {
		t.Fatalf("expected original message logged, got %q", record.Message)
	}
	if record.EnglishMessage != "[en] Combien d'eau dois-je boire ?" {
		t.Fatalf("expected english message logged, got %q", record.EnglishMessage)
	}
}

func TestProcessMessageInboundTranslationFailure(t *testing.T) {
	translator := &mockTranslator{
		translateFn: func(_ context.Context, _, _, _ string) (string, error) {
			return "", translation.ErrBackendUnavailable
		},
	}
	matcher := &mockMatcher{}
	store := &mockStore{}
	svc := newTestService(translator, matcher, store)

	resp, err := svc.ProcessMessage(context.Background(), Request{
		Message:  "Wie viel Wasser soll ich trinken?",
		Language: "de",
	})
	if err != nil {
		t.Fatalf("expected degraded reply instead of error, got %v", err)
	}
	if resp.Accuracy != 0 {
		t.Fatalf("expected confidence 0 on translation failure, got %f", resp.Accuracy)
	}
	if !strings.Contains(resp.Response, "translation is unavailable") {
		t.Fatalf("expected translation failure reply, got %q", resp.Response)
	}
	if matcher.gotQuery != "" {
		t.Fatal("matcher must not run when inbound translation fails")
	}
	if len(store.records) != 1 {
		t.Fatalf("failed exchange must still be logged, got %d records", len(store.records))
	}
}

func TestProcessMessageOutboundTranslationFailure(t *testing.T) {
	translator := &mockTranslator{
		translateFn: func(_ context.Context, text, source, target string) (string, error) {
			if source == "en" {
				return "", translation.ErrBackendUnavailable
			}
			return "translated to english", nil
		},
	}
	matcher := &mockMatcher{result: faq.Result{
		Answer:     "Drink about 8 glasses daily.",
		Confidence: 0.6,
	}}
	store := &mockStore{}
	svc := newTestService(translator, matcher, store)

	resp, err := svc.ProcessMessage(context.Background(), Request{
		Message:  "Cuanta agua debo beber?",
		Language: "es",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.HasPrefix(resp.Response, "Drink about 8 glasses daily.") {
		t.Fatalf("expected English answer kept, got %q", resp.Response)
	}
	if !strings.Contains(resp.Response, "Translation unavailable") {
		t.Fatalf("expected note about missing translation, got %q", resp.Response)
	}
	if resp.Accuracy != 0.6 {
		t.Fatalf("expected match confidence preserved, got %f", resp.Accuracy)
	}
}

func TestProcessMessageMatcherFailure(t *testing.T) {
	translator := &mockTranslator{}
	matcher := &mockMatcher{err: errors.New("tokenizer broke")}
	store := &mockStore{}
	svc := newTestService(translator, matcher, store)

	resp, err := svc.ProcessMessage(context.Background(), Request{
		Message:  "hello",
		Language: "en",
	})
	if err != nil {
		t.Fatalf("expected degraded reply instead of error, got %v", err)
	}
	if resp.Accuracy != 0 {
		t.Fatalf("expected confidence 0, got %f", resp.Accuracy)
	}
	if len(store.records) != 1 {
		t.Fatal("failed match must still be logged")
	}
}

func TestProcessMessageStoreFailureDoesNotFailReply(t *testing.T) {
	translator := &mockTranslator{}
	matcher := &mockMatcher{result: faq.Result{Answer: "ok", Confidence: 0.4}}
	store := &mockStore{err: errors.New("disk full")}
	svc := newTestService(translator, matcher, store)

	resp, err := svc.ProcessMessage(context.Background(), Request{
		Message:  "hello",
		Language: "en",
	})
	if err != nil {
		t.Fatalf("log failure must not fail the reply, got %v", err)
	}
	if resp.Response != "ok" {
		t.Fatalf("unexpected response %q", resp.Response)
	}
}

func TestProcessMessageValidation(t *testing.T) {
	svc := newTestService(&mockTranslator{}, &mockMatcher{}, &mockStore{})

	if _, err := svc.ProcessMessage(context.Background(), Request{Message: "   ", Language: "en"}); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}

	_, err := svc.ProcessMessage(context.Background(), Request{Message: "hello", Language: "xx"})
	if !errors.Is(err, translation.ErrUnsupportedLanguage) {
		t.Fatalf("expected ErrUnsupportedLanguage, got %v", err)
	}
}

func TestProcessMessageDefaultsSessionID(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(&mockTranslator{}, &mockMatcher{result: faq.Result{Answer: "a"}}, store)

	if _, err := svc.ProcessMessage(context.Background(), Request{Message: "hi", Language: "en"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if store.records[0].SessionID == "" {
		t.Fatal("expected a generated session id")
	}
}

func TestProcessMessageNotifiesObserver(t *testing.T) {
	store := &mockStore{}
	observer := &mockObserver{}
	svc := newTestService(&mockTranslator{}, &mockMatcher{result: faq.Result{Answer: "a", Confidence: 0.9}}, store)
	svc.SetObserver(observer)

	resp, err := svc.ProcessMessage(context.Background(), Request{Message: "hi", Language: "en"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(observer.records) != 1 {
		t.Fatalf("expected one observer notification, got %d", len(observer.records))
	}
	if observer.records[0].ID != resp.QueryID {
		t.Fatal("observer record must carry the query id")
	}
}
