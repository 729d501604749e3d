package source

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "brandgate/pkg/domain-errors"
)

func newTestClient(t *testing.T, handler http.Handler) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, "test-key", 2*time.Second, slog.New(slog.DiscardHandler))
}

func TestFetchChannel(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodGet, r.Method)
			require.Equal(t, "/v1/channels/gracechapel/videos", r.URL.Path)
			require.Equal(t, "test-key", r.URL.Query().Get("key"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"handle": "gracechapel",
				"title": "Grace Chapel",
				"videos": [
					{
						"id": "vid_1",
						"title": "Sunday Service",
						"video_url": "https://videos.example.com/vid_1",
						"published_at": "2026-08-23T10:00:00Z"
					}
				]
			}`))
		}))

		channel, err := client.FetchChannel(context.Background(), "gracechapel")
		require.NoError(t, err)
		assert.Equal(t, "gracechapel", channel.Handle)
		assert.Equal(t, "Grace Chapel", channel.Title)
		require.Len(t, channel.Videos, 1)
		assert.Equal(t, "Sunday Service", channel.Videos[0].Title)
		assert.False(t, channel.FetchedAt.IsZero())
	})

	t.Run("unknown channel is not found", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))

		_, err := client.FetchChannel(context.Background(), "nobody")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("platform error is unavailable", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))

		_, err := client.FetchChannel(context.Background(), "gracechapel")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
	})
}
