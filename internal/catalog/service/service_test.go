package service

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brandgate/internal/catalog/cache"
	"brandgate/internal/catalog/models"
	dErrors "brandgate/pkg/domain-errors"
)

type fakeSource struct {
	mu       sync.Mutex
	fetches  map[string]int
	channels map[string]*models.ChannelVideos
	down     bool
}

func newFakeSource(handles ...string) *fakeSource {
	f := &fakeSource{
		fetches:  make(map[string]int),
		channels: make(map[string]*models.ChannelVideos),
	}
	for _, handle := range handles {
		f.channels[handle] = &models.ChannelVideos{
			Handle:    handle,
			Title:     "Channel " + handle,
			Videos:    []models.Video{{ID: "vid_" + handle, Title: "Latest upload"}},
			FetchedAt: time.Now().UTC(),
		}
	}
	return f
}

func (f *fakeSource) FetchChannel(_ context.Context, handle string) (*models.ChannelVideos, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return nil, dErrors.New(dErrors.CodeUnavailable, "video platform unreachable")
	}
	f.fetches[handle]++
	channel, ok := f.channels[handle]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "channel not found")
	}
	return channel, nil
}

func (f *fakeSource) fetchCount(handle string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches[handle]
}

func newTestService(src *fakeSource) *Service {
	return New(src, cache.NewMemory(), time.Minute, slog.New(slog.DiscardHandler), nil)
}

func TestGetChannel(t *testing.T) {
	ctx := context.Background()

	t.Run("fetches once then serves from cache", func(t *testing.T) {
		src := newFakeSource("gracechapel")
		svc := newTestService(src)

		first, err := svc.GetChannel(ctx, "gracechapel")
		require.NoError(t, err)
		assert.Equal(t, "Channel gracechapel", first.Title)

		second, err := svc.GetChannel(ctx, "gracechapel")
		require.NoError(t, err)
		assert.Equal(t, first.Title, second.Title)
		assert.Equal(t, 1, src.fetchCount("gracechapel"))
	})

	t.Run("normalizes handles before lookup", func(t *testing.T) {
		src := newFakeSource("gracechapel")
		svc := newTestService(src)

		_, err := svc.GetChannel(ctx, "@GraceChapel")
		require.NoError(t, err)
		_, err = svc.GetChannel(ctx, "  gracechapel ")
		require.NoError(t, err)
		assert.Equal(t, 1, src.fetchCount("gracechapel"))
	})

	t.Run("blank handle is invalid", func(t *testing.T) {
		svc := newTestService(newFakeSource())
		_, err := svc.GetChannel(ctx, "  @ ")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("unknown channel is not cached", func(t *testing.T) {
		src := newFakeSource()
		svc := newTestService(src)

		_, err := svc.GetChannel(ctx, "nobody")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
		_, err = svc.GetChannel(ctx, "nobody")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("platform outage surfaces as unavailable", func(t *testing.T) {
		src := newFakeSource("gracechapel")
		src.down = true
		svc := newTestService(src)

		_, err := svc.GetChannel(ctx, "gracechapel")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
	})
}

func TestGetChannels(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves all handles and skips unknown ones", func(t *testing.T) {
		src := newFakeSource("gracechapel", "faithcentre", "hopehall")
		svc := newTestService(src)

		channels, err := svc.GetChannels(ctx, []string{"gracechapel", "nobody", "faithcentre", "hopehall"})
		require.NoError(t, err)
		require.Len(t, channels, 3)

		handles := make([]string, 0, len(channels))
		for _, channel := range channels {
			handles = append(handles, channel.Handle)
		}
		assert.Equal(t, []string{"gracechapel", "faithcentre", "hopehall"}, handles)
	})

	t.Run("platform outage fails the whole lookup", func(t *testing.T) {
		src := newFakeSource("gracechapel")
		src.down = true
		svc := newTestService(src)

		_, err := svc.GetChannels(ctx, []string{"gracechapel"})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
	})

	t.Run("cached channels do not hit the platform again", func(t *testing.T) {
		src := newFakeSource("gracechapel", "faithcentre")
		svc := newTestService(src)

		_, err := svc.GetChannel(ctx, "gracechapel")
		require.NoError(t, err)

		_, err = svc.GetChannels(ctx, []string{"gracechapel", "faithcentre"})
		require.NoError(t, err)
		assert.Equal(t, 1, src.fetchCount("gracechapel"))
		assert.Equal(t, 1, src.fetchCount("faithcentre"))
	})
}
