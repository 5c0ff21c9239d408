// Package httpclient is a thin wrapper over net/http used for the AI dispatch
// leg. It performs exactly one attempt per call: the orchestrator reports
// retryability instead of retrying, so backoff stays a caller concern.
package httpclient

import (
	"bytes"
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	apperrors "github.com/Pramod-Potti-Krishnan/elementor/pkg/errors"
)

type Options struct {
	Timeout time.Duration
}

type Client struct {
	client *http.Client
}

func New(opts Options) *Client {
	return &Client{
		client: &http.Client{
			Timeout: opts.Timeout,
		},
	}
}

// Do executes a single attempt and classifies transport failures into the
// canonical taxonomy. Non-2xx responses are returned as-is for the caller to
// classify against the backend's error body.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	resp, err := c.client.Do(req.WithContext(ctx))
	if err != nil {
		return nil, Classify(err)
	}
	return resp, nil
}

func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to build request")
	}
	return c.Do(ctx, req)
}

func (c *Client) PostJSON(ctx context.Context, url string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")
	return c.Do(ctx, req)
}

// Classify maps a transport-layer error to TIMEOUT or CONNECTION_ERROR.
// Context cancellation passes through untouched so callers can distinguish
// caller aborts from backend failures.
func Classify(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Wrap(err, apperrors.CodeTimeout, "request deadline exceeded")
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apperrors.Wrap(err, apperrors.CodeTimeout, "request timed out")
	}
	return apperrors.Wrap(err, apperrors.CodeConnectionError, "connection failed")
}
