package translation

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/carelingo/backend/pkg/circuitbreaker"
	"github.com/carelingo/backend/pkg/retry"
)

// OpenAIClient is a drop-in translation backend for deployments without a
// Marian inference server.
type OpenAIClient struct {
	client      *openai.Client
	model       string
	maxLength   int
	cb          *circuitbreaker.CircuitBreaker
	retryConfig retry.Config
	logger      *zap.Logger
}

func NewOpenAIClient(apiKey, model string, maxLength int, logger *zap.Logger) *OpenAIClient {
	cb := circuitbreaker.New("openai-translate", circuitbreaker.Config{
		MaxRequests:      5,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Logger:           logger,
	})

	retryConfig := retry.Config{
		MaxAttempts:    3,
		InitialDelay:   500 * time.Millisecond,
		MaxDelay:       5 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
		Logger:         logger,
	}

	logger.Info("OpenAI translation client initialized", zap.String("model", model))

	return &OpenAIClient{
		client:      openai.NewClient(apiKey),
		model:       model,
		maxLength:   maxLength,
		cb:          cb,
		retryConfig: retryConfig,
		logger:      logger,
	}
}

func (c *OpenAIClient) Translate(ctx context.Context, text, source, target string) (string, error) {
	if source == target {
		return text, nil
	}

	if err := validatePair(text, source, target, c.maxLength); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	systemPrompt := fmt.Sprintf(
		"You are a professional translator for healthcare content. Translate the user's text from %s to %s. Preserve medical terminology. Reply with the translation only, no commentary.",
		LanguageName(source), LanguageName(target),
	)

	var translated string

	err := c.cb.Execute(ctx, func() error {
		return retry.Do(ctx, c.retryConfig, func() error {
			resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
				Model:       c.model,
				Temperature: 0,
				Messages: []openai.ChatCompletionMessage{
					{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
					{Role: openai.ChatMessageRoleUser, Content: text},
				},
			})
			if err != nil {
				return fmt.Errorf("failed to create completion: %w", err)
			}

			if len(resp.Choices) == 0 {
				return fmt.Errorf("completion returned no choices")
			}

			translated = strings.TrimSpace(resp.Choices[0].Message.Content)
			return nil
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
