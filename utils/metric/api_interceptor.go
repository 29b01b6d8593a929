// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utilmetric

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/rpc/v2"
	"github.com/luxfi/metric"
)

// APIInterceptor observes the RPC server's requests: a counter and
// cumulative duration per method, plus an error counter.
type APIInterceptor interface {
	InterceptRequest(i *rpc.RequestInfo) *http.Request
	AfterRequest(i *rpc.RequestInfo)
}

type contextKey int

const requestTimestampKey contextKey = iota

type apiInterceptor struct {
	requestDurationCount metric.CounterVec
	requestDurationSum   metric.GaugeVec
	requestErrors        metric.CounterVec
}

func NewAPIInterceptor(registry metric.Registry) (APIInterceptor, error) {
	factory := metric.NewWithRegistry("api", registry)

	return &apiInterceptor{
		requestDurationCount: factory.NewCounterVec(
			"request_duration_count",
			"Number of times this type of request was made",
			[]string{"method"},
		),
		requestDurationSum: factory.NewGaugeVec(
			"request_duration_sum",
			"Time in nanoseconds spent handling this type of request",
			[]string{"method"},
		),
		requestErrors: factory.NewCounterVec(
			"request_error_count",
			"Number of request errors",
			[]string{"method"},
		),
	}, nil
}

func (*apiInterceptor) InterceptRequest(i *rpc.RequestInfo) *http.Request {
	ctx := i.Request.Context()
	ctx = context.WithValue(ctx, requestTimestampKey, time.Now())
	return i.Request.WithContext(ctx)
}

func (apr *apiInterceptor) AfterRequest(i *rpc.RequestInfo) {
	timestampIntf := i.Request.Context().Value(requestTimestampKey)
	timestamp, ok := timestampIntf.(time.Time)
	if !ok {
		return
	}

	labels := metric.Labels{
		"method": i.Method,
	}
	apr.requestDurationCount.With(labels).Inc()

	duration := time.Since(timestamp)
	apr.requestDurationSum.With(labels).Add(float64(duration))

	if i.Error != nil {
		apr.requestErrors.With(labels).Inc()
	}
}
