// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"errors"

	"github.com/luxfi/metric"
	"google.golang.org/protobuf/proto"

	dto "github.com/prometheus/client_model/go"
)

var (
	counterOpts = metric.CounterOpts{
		Name: "counter",
		Help: "help",
	}

	errTest = errors.New("test error")
)

type testGatherer struct {
	mfs []*metric.MetricFamily
	err error
}

func (g *testGatherer) Gather() ([]*metric.MetricFamily, error) {
	return g.mfs, g.err
}

func counterFamily(name string) *metric.MetricFamily {
	return &dto.MetricFamily{
		Name: proto.String(name),
		Type: dto.MetricType_COUNTER.Enum(),
		Metric: []*dto.Metric{
			{
				Counter: &dto.Counter{
					Value: proto.Float64(0),
				},
			},
		},
	}
}
