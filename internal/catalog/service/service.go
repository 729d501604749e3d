// Package service implements the video catalog lookups.
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"brandgate/internal/catalog/cache"
	"brandgate/internal/catalog/metrics"
	"brandgate/internal/catalog/models"
	"brandgate/internal/catalog/source"
	dErrors "brandgate/pkg/domain-errors"
)

const maxConcurrentFetches = 4

type Service struct {
	source  source.VideoSource
	cache   cache.Cache
	ttl     time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func New(src source.VideoSource, c cache.Cache, ttl time.Duration, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		source:  src,
		cache:   c,
		ttl:     ttl,
		logger:  logger,
		metrics: m,
	}
}

// GetChannel returns a channel's recent uploads, serving from the cache when
// a fresh entry exists. Handles are case-insensitive.
func (s *Service) GetChannel(ctx context.Context, handle string) (*models.ChannelVideos, error) {
	handle = normalizeHandle(handle)
	if handle == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "channel handle is required")
	}

	cached, ok, err := s.cache.Get(ctx, handle)
	if err != nil {
		// The cache being down degrades to a platform fetch, not an outage.
		s.logger.WarnContext(ctx, "catalog cache lookup failed", "handle", handle, "error", err.Error())
	}
	if ok {
		s.metrics.IncrementLookup("hit")
		return cached, nil
	}
	s.metrics.IncrementLookup("miss")

	channel, err := s.source.FetchChannel(ctx, handle)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, handle, channel, s.ttl); err != nil {
		s.logger.WarnContext(ctx, "catalog cache store failed", "handle", handle, "error", err.Error())
	}
	return channel, nil
}

// GetChannels resolves several handles concurrently. A handle the platform
// does not know is skipped; any other failure aborts the whole lookup.
func (s *Service) GetChannels(ctx context.Context, handles []string) ([]*models.ChannelVideos, error) {
	results := make([]*models.ChannelVideos, len(handles))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for i, handle := range handles {
		g.Go(func() error {
			channel, err := s.GetChannel(gCtx, handle)
			if err != nil {
				if dErrors.HasCode(err, dErrors.CodeNotFound) {
					return nil
				}
				return err
			}
			results[i] = channel
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	channels := make([]*models.ChannelVideos, 0, len(results))
	for _, channel := range results {
		if channel != nil {
			channels = append(channels, channel)
		}
	}
	return channels, nil
}

func normalizeHandle(handle string) string {
	handle = strings.ToLower(strings.TrimSpace(handle))
	return strings.TrimPrefix(handle, "@")
}
