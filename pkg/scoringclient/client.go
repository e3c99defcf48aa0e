// Package scoringclient is an HTTP client for deployed scoring endpoints.
// It mirrors what the serving bootstrap exposes: POST /score with a JSON
// payload, GET /swagger.json and a health probe on /.
package scoringclient

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	reqTimeout    = 90 * time.Second
	maxRetryCount = 3
	retryDelay    = 500 * time.Millisecond
)

// Client interacts with a deployed scoring service.
type Client struct {
	*resty.Client
}

// New returns an initialized scoring client. key may be empty for services
// deployed without key auth.
func New(key string) *Client {
	r := resty.New().
		SetTimeout(reqTimeout).
		SetRetryCount(maxRetryCount).
		SetRetryWaitTime(retryDelay).
		SetHeader("Content-Type", "application/json")
	if key != "" {
		r.SetAuthToken(key)
	}
	return &Client{Client: r}
}

// ScoreResult is the envelope the serving bootstrap wraps run() output in.
type ScoreResult struct {
	Result json.RawMessage `json:"result"`
}

// Invoke posts payload to the scoring URI and returns the raw result.
func (c *Client) Invoke(ctx context.Context, scoringURI string, payload []byte) (json.RawMessage, error) {
	var result ScoreResult

	resp, err := c.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&result).
		Post(scoringURI)
	if err != nil {
		return nil, fmt.Errorf("invoke %s: %w", scoringURI, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("invoke %s: %s: %s", scoringURI, resp.Status(), resp.String())
	}
	// Endpoints answering without an application/json content type skip
	// resty's typed unmarshal; parse the body directly in that case.
	if result.Result == nil {
		if err := json.Unmarshal(resp.Body(), &result); err != nil {
			return nil, fmt.Errorf("invoke %s: parse response: %w", scoringURI, err)
		}
	}
	return result.Result, nil
}

// Swagger fetches the service's swagger document.
func (c *Client) Swagger(ctx context.Context, swaggerURI string) (json.RawMessage, error) {
	resp, err := c.R().
		SetContext(ctx).
		Get(swaggerURI)
	if err != nil {
		return nil, fmt.Errorf("fetch swagger %s: %w", swaggerURI, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch swagger %s: %s", swaggerURI, resp.Status())
	}
	return json.RawMessage(resp.Body()), nil
}

// Healthy probes the service root and reports whether it answers 200.
func (c *Client) Healthy(ctx context.Context, scoringURI string) bool {
	base := strings.TrimSuffix(scoringURI, "/score")
	if base == "" {
		base = scoringURI
	}
	resp, err := c.R().SetContext(ctx).Get(base)
	return err == nil && resp.IsSuccess()
}
