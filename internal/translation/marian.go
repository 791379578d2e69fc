package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/carelingo/backend/pkg/circuitbreaker"
	"github.com/carelingo/backend/pkg/retry"
)

// marianModels maps a language pair to the opus-mt model serving it.
var marianModels = map[string]string{
	"fr-en": "Helsinki-NLP/opus-mt-fr-en",
	"de-en": "Helsinki-NLP/opus-mt-de-en",
	"es-en": "Helsinki-NLP/opus-mt-es-en",
	"hi-en": "Helsinki-NLP/opus-mt-hi-en",
	"en-fr": "Helsinki-NLP/opus-mt-en-fr",
	"en-de": "Helsinki-NLP/opus-mt-en-de",
	"en-es": "Helsinki-NLP/opus-mt-en-es",
	"en-hi": "Helsinki-NLP/opus-mt-en-hi",
}

// MarianClient talks to an opus-mt inference server over HTTP. Models stay
// resident on the server side for the process lifetime; this client holds no
// per-pair state beyond the model name table.
type MarianClient struct {
	endpoint    string
	maxLength   int
	httpClient  *http.Client
	cb          *circuitbreaker.CircuitBreaker
	retryConfig retry.Config
	logger      *zap.Logger
}

func NewMarianClient(endpoint string, maxLength, timeoutSec int, logger *zap.Logger) *MarianClient {
	cb := circuitbreaker.New("marian", circuitbreaker.Config{
		MaxRequests:      5,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Logger:           logger,
	})

	retryConfig := retry.Config{
		MaxAttempts:    3,
		InitialDelay:   200 * time.Millisecond,
		MaxDelay:       3 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
		Logger:         logger,
	}

	logger.Info("Marian translation client initialized",
		zap.String("endpoint", endpoint),
		zap.Int("max_length", maxLength),
	)

	return &MarianClient{
		endpoint:    endpoint,
		maxLength:   maxLength,
		httpClient:  &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
		cb:          cb,
		retryConfig: retryConfig,
		logger:      logger,
	}
}

func (c *MarianClient) Translate(ctx context.Context, text, source, target string) (string, error) {
	if source == target {
		return text, nil
	}

	if err := validatePair(text, source, target, c.maxLength); err != nil {
		return "", err
	}

	model, ok := marianModels[source+"-"+target]
	if !ok {
		return "", fmt.Errorf("%w: no model for pair %s->%s", ErrUnsupportedLanguage, source, target)
	}

	var translated string

	err := c.cb.Execute(ctx, func() error {
		return retry.Do(ctx, c.retryConfig, func() error {
			var err error
			translated, err = c.doRequest(ctx, model, text, source, target)
			return err
		})
	})

	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	c.logger.Debug("Text translated",
		zap.String("pair", source+"-"+target),
		zap.Int("chars", len(text)),
	)

	return translated, nil
}

func (c *MarianClient) doRequest(ctx context.Context, model, text, source, target string) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"model":  model,
		"text":   text,
		"source": source,
		"target": target,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint+"/translate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("translation request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translation server returned %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Translation string `json:"translation"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if result.Translation == "" {
		return "", fmt.Errorf("translation server returned empty result")
	}

	return result.Translation, nil
}
