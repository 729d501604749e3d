// Package cache provides the cache-aside layer in front of the video
// platform. Redis is the production implementation so instances share one
// cache; the in-memory implementation covers single-instance and test runs.
package cache

import (
	"context"
	"sync"
	"time"

	"brandgate/internal/catalog/models"
)

// Cache stores channel lookups under their normalized handle.
type Cache interface {
	// Get returns the cached channel and whether it was present.
	Get(ctx context.Context, handle string) (*models.ChannelVideos, bool, error)

	// Set stores the channel for the given TTL.
	Set(ctx context.Context, handle string, channel *models.ChannelVideos, ttl time.Duration) error
}

type memoryEntry struct {
	channel   models.ChannelVideos
	expiresAt time.Time
}

// Memory is a process-local cache with per-entry expiry.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

var _ Cache = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry)}
}

func (m *Memory) Get(_ context.Context, handle string) (*models.ChannelVideos, bool, error) {
	m.mu.RLock()
	entry, ok := m.entries[handle]
	m.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, handle)
		m.mu.Unlock()
		return nil, false, nil
	}

	cp := entry.channel
	cp.Videos = append([]models.Video(nil), entry.channel.Videos...)
	return &cp, true, nil
}

func (m *Memory) Set(_ context.Context, handle string, channel *models.ChannelVideos, ttl time.Duration) error {
	cp := *channel
	cp.Videos = append([]models.Video(nil), channel.Videos...)

	m.mu.Lock()
	m.entries[handle] = memoryEntry{channel: cp, expiresAt: time.Now().Add(ttl)}
	m.mu.Unlock()
	return nil
}
