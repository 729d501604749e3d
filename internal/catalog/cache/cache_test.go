package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brandgate/internal/catalog/models"
)

func sampleChannel() *models.ChannelVideos {
	return &models.ChannelVideos{
		Handle: "gracechapel",
		Title:  "Grace Chapel",
		Videos: []models.Video{
			{ID: "vid_1", Title: "Sunday Service"},
		},
		FetchedAt: time.Now().UTC(),
	}
}

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, ok, err := m.Get(ctx, "gracechapel")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "gracechapel", sampleChannel(), time.Minute))

	got, ok, err := m.Get(ctx, "gracechapel")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Grace Chapel", got.Title)
	require.Len(t, got.Videos, 1)
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Set(ctx, "gracechapel", sampleChannel(), time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	_, ok, err := m.Get(ctx, "gracechapel")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCopiesOut(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	stored := sampleChannel()
	require.NoError(t, m.Set(ctx, "gracechapel", stored, time.Minute))
	stored.Videos[0].Title = "mutated after store"

	got, ok, err := m.Get(ctx, "gracechapel")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Sunday Service", got.Videos[0].Title)

	got.Videos[0].Title = "mutated after read"

	again, ok, err := m.Get(ctx, "gracechapel")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Sunday Service", again.Videos[0].Title)
}
