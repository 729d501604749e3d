package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"brandgate/internal/catalog/models"
)

const channelKeyPrefix = "catalog:channel:"

// Redis stores channel lookups as JSON blobs with Redis-managed expiry.
type Redis struct {
	client *redis.Client
}

var _ Cache = (*Redis)(nil)

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, handle string) (*models.ChannelVideos, bool, error) {
	raw, err := r.client.Get(ctx, channelKeyPrefix+handle).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("catalog cache get: %w", err)
	}

	var channel models.ChannelVideos
	if err := json.Unmarshal(raw, &channel); err != nil {
		// A corrupt entry is treated as a miss and will be overwritten.
		return nil, false, nil
	}
	return &channel, true, nil
}

func (r *Redis) Set(ctx context.Context, handle string, channel *models.ChannelVideos, ttl time.Duration) error {
	raw, err := json.Marshal(channel)
	if err != nil {
		return fmt.Errorf("catalog cache encode: %w", err)
	}
	if err := r.client.Set(ctx, channelKeyPrefix+handle, raw, ttl).Err(); err != nil {
		return fmt.Errorf("catalog cache set: %w", err)
	}
	return nil
}
