// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"net/http"

	"github.com/luxfi/metric"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewHandler serves [gatherer] in the Prometheus text exposition format.
func NewHandler(gatherer metric.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
