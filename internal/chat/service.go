package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/carelingo/backend/internal/faq"
	"github.com/carelingo/backend/internal/metrics"
	"github.com/carelingo/backend/internal/storage/models"
	"github.com/carelingo/backend/internal/translation"
)

var ErrEmptyMessage = errors.New("message cannot be empty")

const (
	inboundFailureReply = "I'm sorry, I couldn't understand your message right now because translation is unavailable. Please try again later or ask in English."
	matchFailureReply   = "I'm sorry, I encountered an error while processing your question. Please try rephrasing or contact a healthcare professional."
	outboundFailureNote = "(Translation unavailable - answer shown in English.)"
)

// Store is the slice of the query log the orchestrator writes to.
type Store interface {
	InsertQueryRecord(*models.QueryRecord) error
}

// Matcher answers English queries against the FAQ corpus.
type Matcher interface {
	Match(query string) (faq.Result, error)
}

type Request struct {
	Message   string
	Language  string
	SessionID string
}

type Response struct {
	QueryID   string
	Response  string
	Accuracy  float64
	LatencyMS int
	Fallback  bool
}

// Observer is notified after each completed exchange, off the reply path.
type Observer interface {
	ExchangeCompleted(record *models.QueryRecord)
}

// Service orchestrates one chat exchange: translate in, match, translate
// out, log. Translation and matcher failures degrade to an error reply;
// only invalid requests surface as errors to the transport layer.
type Service struct {
	translator translation.Translator
	matcher    Matcher
	store      Store
	observer   Observer
	logger     *zap.Logger
}

func NewService(translator translation.Translator, matcher Matcher, store Store, logger *zap.Logger) *Service {
	return &Service{
		translator: translator,
		matcher:    matcher,
		store:      store,
		logger:     logger,
	}
}

// SetObserver registers a completed-exchange listener (the live feed).
func (s *Service) SetObserver(observer Observer) {
	s.observer = observer
}

func (s *Service) ProcessMessage(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	if !translation.Supported(req.Language) {
		return nil, fmt.Errorf("%w: %q", translation.ErrUnsupportedLanguage, req.Language)
	}

	queryID := uuid.New().String()
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	s.logger.Info("Processing message",
		zap.String("query_id", queryID),
		zap.String("language", req.Language),
	)

	englishMessage := message
	if req.Language != "en" {
		translated, err := s.translator.Translate(ctx, message, req.Language, "en")
		if err != nil {
			metrics.TranslationsTotal.WithLabelValues("inbound", "error").Inc()
			s.logger.Warn("Inbound translation failed",
				zap.String("query_id", queryID),
				zap.Error(err),
			)
			return s.finish(queryID, sessionID, message, req.Language, "",
				inboundFailureReply, 0, true, start), nil
		}
		metrics.TranslationsTotal.WithLabelValues("inbound", "ok").Inc()
		englishMessage = translated
	}

	result, err := s.matcher.Match(englishMessage)
	if err != nil {
		s.logger.Error("FAQ match failed",
			zap.String("query_id", queryID),
			zap.Error(err),
		)
		return s.finish(queryID, sessionID, message, req.Language, englishMessage,
			matchFailureReply, 0, true, start), nil
	}

	metrics.MatchConfidence.Observe(result.Confidence)
	if result.Fallback {
		metrics.FallbackResponsesTotal.Inc()
	}

	reply := result.Answer
	if req.Language != "en" {
		translated, err := s.translator.Translate(ctx, result.Answer, "en", req.Language)
		if err != nil {
			metrics.TranslationsTotal.WithLabelValues("outbound", "error").Inc()
			s.logger.Warn("Outbound translation failed, returning English answer",
				zap.String("query_id", queryID),
				zap.Error(err),
			)
			reply = result.Answer + "\n\n" + outboundFailureNote
		} else {
			metrics.TranslationsTotal.WithLabelValues("outbound", "ok").Inc()
			reply = translated
		}
	}

	return s.finish(queryID, sessionID, message, req.Language, englishMessage,
		reply, result.Confidence, result.Fallback, start), nil
}

// finish logs the completed exchange and builds the response. Log failures
// never propagate; the user still gets their reply.
func (s *Service) finish(queryID, sessionID, message, language, englishMessage,
	reply string, confidence float64, fallback bool, start time.Time) *Response {

	latency := int(time.Since(start).Milliseconds())

	record := &models.QueryRecord{
		ID:             queryID,
		SessionID:      sessionID,
		Message:        message,
		Language:       language,
		EnglishMessage: englishMessage,
		Response:       reply,
		Confidence:     confidence,
		Fallback:       fallback,
		LatencyMS:      latency,
		CreatedAt:      time.Now(),
	}

	if err := s.store.InsertQueryRecord(record); err != nil {
		metrics.LogWriteFailures.Inc()
		s.logger.Error("Failed to log query", zap.String("query_id", queryID), zap.Error(err))
	}

	if s.observer != nil {
		s.observer.ExchangeCompleted(record)
	}

	status := "ok"
	if fallback {
		status = "fallback"
	}
	metrics.ChatRequestsTotal.WithLabelValues(language, status).Inc()
	metrics.ChatRequestDuration.Observe(time.Since(start).Seconds())

	s.logger.Info("Message processed",
		zap.String("query_id", queryID),
		zap.Float64("confidence", confidence),
		zap.Int("latency_ms", latency),
	)

	return &Response{
		QueryID:   queryID,
		Response:  reply,
		Accuracy:  confidence,
		LatencyMS: latency,
		Fallback:  fallback,
	}
}
