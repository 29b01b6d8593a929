// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/luxfi/metric"
)

// cleanlyCloseBody drains and closes an HTTP response body to prevent
// HTTP/2 GOAWAY errors caused by closing bodies with unread data.
func cleanlyCloseBody(body io.ReadCloser) error {
	if body == nil {
		return nil
	}
	_, _ = io.Copy(io.Discard, body)
	return body.Close()
}

// Client requests metrics from a running daemon.
type Client struct {
	uri string
}

// NewClient returns a new metrics API client. [uri] names the daemon,
// without the metrics endpoint path.
func NewClient(uri string) *Client {
	return &Client{
		uri: uri + "/ext/metrics",
	}
}

// GetMetrics returns the daemon's metrics, keyed by metric family name.
func (c *Client) GetMetrics(ctx context.Context) (map[string]*metric.MetricFamily, error) {
	request, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.uri,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := http.DefaultClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("failed to issue request: %w", err)
	}
	defer cleanlyCloseBody(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("received status code: %d", resp.StatusCode)
	}

	var parser metric.TextParser
	return parser.TextToMetricFamilies(resp.Body)
}
