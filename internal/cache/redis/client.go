package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/carelingo/backend/pkg/logger"
)

type Client struct {
	client *redis.Client
}

func NewClient(host string, port int, password string, db int) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	_, err := client.Ping(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis client initialized", zap.String("addr", fmt.Sprintf("%s:%d", host, port)))

	return &Client{client: client}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// SetTranslation caches one translated text under its derived key.
func (c *Client) SetTranslation(ctx context.Context, key, translated string, ttl time.Duration) error {
	err := c.client.Set(ctx, fmt.Sprintf("translation:%s", key), translated, ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to set translation cache: %w", err)
	}

	logger.Debug("Translation cached", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

// GetTranslation returns the cached translation and whether it was present.
func (c *Client) GetTranslation(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, fmt.Sprintf("translation:%s", key)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get translation cache: %w", err)
	}

	logger.Debug("Translation cache hit", zap.String("key", key))
	return val, true, nil
}
