// Package httpclient implements the fetch-with-retry fabric shared by
// ingestion (upstream Hansard catalog) and video matching (external
// video catalog): exponential backoff, bounded retries, retry only on
// network errors and 5xx.
package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sghansard/hansardkb/internal/logger"
)

// RetryClient performs GET/POST requests with a bounded exponential
// backoff retry budget. Retries fire only for network errors and
// responses with status >= 500; 4xx never retries.
type RetryClient struct {
	httpClient *http.Client
	MaxRetries int
	BaseDelay  time.Duration
}

func New(timeout time.Duration, maxRetries int, baseDelay time.Duration) *RetryClient {
	return &RetryClient{
		httpClient: &http.Client{Timeout: timeout},
		MaxRetries: maxRetries,
		BaseDelay:  baseDelay,
	}
}

// Do executes req, retrying per the policy above. The body, if any,
// must be re-suppliable across attempts via req.GetBody (set
// automatically by http.NewRequestWithContext for in-memory bodies).
func (c *RetryClient) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := c.BaseDelay * time.Duration(1<<uint(attempt-1))
			logger.Infof(ctx, "httpclient: retrying %s (attempt %d/%d) after %v", req.URL, attempt, c.MaxRetries, delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		attemptReq := req.Clone(ctx)
		if attempt > 0 && req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, fmt.Errorf("rebuild request body: %w", err)
			}
			attemptReq.Body = body
		}

		resp, err := c.httpClient.Do(attemptReq)
		if err != nil {
			lastErr = err
			logger.Warnf(ctx, "httpclient: request failed (attempt %d/%d): %v", attempt+1, c.MaxRetries+1, err)
			continue
		}
		if resp.StatusCode >= 500 {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			lastErr = fmt.Errorf("upstream returned status %d: %s", resp.StatusCode, string(body))
			logger.Warnf(ctx, "httpclient: %v", lastErr)
			continue
		}
		return resp, nil
	}
	return nil, lastErr
}
