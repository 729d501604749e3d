// Package source fetches channel uploads from the external video platform.
package source

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"brandgate/internal/catalog/models"
	dErrors "brandgate/pkg/domain-errors"
)

// VideoSource is the platform operation the catalog depends on.
type VideoSource interface {
	FetchChannel(ctx context.Context, handle string) (*models.ChannelVideos, error)
}

// HTTPClient is the resty-backed platform client. Platform downtime surfaces
// as CodeUnavailable so the handler can answer 503 rather than 500.
type HTTPClient struct {
	http   *resty.Client
	logger *slog.Logger
}

var _ VideoSource = (*HTTPClient)(nil)

func NewHTTPClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(time.Second).
		SetQueryParam("key", apiKey).
		SetHeader("Accept", "application/json")

	return &HTTPClient{http: client, logger: logger}
}

type channelResponse struct {
	Handle string `json:"handle"`
	Title  string `json:"title"`
	Videos []struct {
		ID           string    `json:"id"`
		Title        string    `json:"title"`
		Description  string    `json:"description"`
		ThumbnailURL string    `json:"thumbnail_url"`
		VideoURL     string    `json:"video_url"`
		PublishedAt  time.Time `json:"published_at"`
	} `json:"videos"`
}

func (c *HTTPClient) FetchChannel(ctx context.Context, handle string) (*models.ChannelVideos, error) {
	var result channelResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&result).
		SetPathParam("handle", handle).
		Get("/v1/channels/{handle}/videos")
	if err != nil {
		c.logger.ErrorContext(ctx, "video platform unreachable", "error", err.Error())
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "video platform unreachable")
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, dErrors.New(dErrors.CodeNotFound, "channel not found")
	}
	if resp.IsError() {
		return nil, dErrors.Newf(dErrors.CodeUnavailable,
			"video platform returned status %d", resp.StatusCode())
	}

	channel := &models.ChannelVideos{
		Handle:    handle,
		Title:     result.Title,
		Videos:    make([]models.Video, 0, len(result.Videos)),
		FetchedAt: time.Now().UTC(),
	}
	for _, v := range result.Videos {
		channel.Videos = append(channel.Videos, models.Video(v))
	}
	return channel, nil
}
