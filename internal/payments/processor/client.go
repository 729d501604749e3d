package processor

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	dErrors "brandgate/pkg/domain-errors"
)

// HTTPClient is the resty-backed provider client. Every call is bounded by
// the client timeout; provider downtime surfaces as CodeUnavailable so
// callers can distinguish it from their own bugs.
type HTTPClient struct {
	http   *resty.Client
	logger *slog.Logger
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(time.Second).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	// Session creation is not idempotent: a create that timed out may still
	// have opened a session on the provider side. Only state polls retry.
	client.AddRetryCondition(func(r *resty.Response, err error) bool {
		return err != nil && r != nil && r.Request.Method == http.MethodGet
	})

	return &HTTPClient{http: client, logger: logger}
}

type createSessionRequest struct {
	AmountCents int64  `json:"amount_cents"`
	Description string `json:"description"`
	CustomerRef string `json:"customer_ref"`
	SuccessURL  string `json:"success_url"`
	CancelURL   string `json:"cancel_url"`
}

type sessionResponse struct {
	ID          string `json:"id"`
	CheckoutURL string `json:"checkout_url"`
	State       string `json:"state"`
}

func (c *HTTPClient) CreateSession(ctx context.Context, p CreateSessionParams) (Session, error) {
	var result sessionResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(createSessionRequest{
			AmountCents: p.Amount.Cents(),
			Description: p.Description,
			CustomerRef: p.CustomerRef,
			SuccessURL:  p.SuccessURL,
			CancelURL:   p.CancelURL,
		}).
		SetResult(&result).
		Post("/v1/checkout/sessions")
	if err != nil {
		c.logger.ErrorContext(ctx, "checkout session creation failed", "error", err.Error())
		return Session{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "payment provider unreachable")
	}
	if resp.IsError() {
		c.logger.ErrorContext(ctx, "checkout session creation rejected",
			"status_code", resp.StatusCode(),
		)
		return Session{}, dErrors.Newf(dErrors.CodeUnavailable,
			"payment provider returned status %d", resp.StatusCode())
	}
	if result.ID == "" || result.CheckoutURL == "" {
		return Session{}, dErrors.New(dErrors.CodeUnavailable, "payment provider returned an incomplete session")
	}
	return Session{ID: result.ID, CheckoutURL: result.CheckoutURL}, nil
}

func (c *HTTPClient) FetchState(ctx context.Context, sessionID string) (SessionState, error) {
	var result sessionResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&result).
		SetPathParam("sessionID", sessionID).
		Get("/v1/checkout/sessions/{sessionID}")
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeUnavailable, "payment provider unreachable")
	}
	if resp.StatusCode() == http.StatusNotFound {
		return "", dErrors.New(dErrors.CodeNotFound, "checkout session not found")
	}
	if resp.IsError() {
		return "", dErrors.Newf(dErrors.CodeUnavailable,
			"payment provider returned status %d", resp.StatusCode())
	}

	switch SessionState(result.State) {
	case StateOpen, StatePaid, StateExpired, StateFailed:
		return SessionState(result.State), nil
	default:
		return "", fmt.Errorf("unknown provider session state %q", result.State)
	}
}
