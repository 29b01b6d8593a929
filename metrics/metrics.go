// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"github.com/luxfi/metric"

	"github.com/luxfi/nftvm/txs"

	utilmetric "github.com/luxfi/nftvm/utils/metric"
)

var _ Metrics = (*metricsImpl)(nil)

type Metrics interface {
	utilmetric.APIInterceptor

	// MarkTxAccepted updates all metrics relating to the acceptance of
	// an operation.
	MarkTxAccepted(tx txs.UnsignedTx) error

	IncMessageSent()
	IncMessageReceived()
	IncMessageBounced()
}

type metricsImpl struct {
	txMetrics *txMetrics

	numMessagesSent, numMessagesReceived, numMessagesBounced metric.Counter

	utilmetric.APIInterceptor
}

func (m *metricsImpl) MarkTxAccepted(tx txs.UnsignedTx) error {
	return tx.Visit(m.txMetrics)
}

func (m *metricsImpl) IncMessageSent() {
	m.numMessagesSent.Inc()
}

func (m *metricsImpl) IncMessageReceived() {
	m.numMessagesReceived.Inc()
}

func (m *metricsImpl) IncMessageBounced() {
	m.numMessagesBounced.Inc()
}

func New(registry metric.Registry) (Metrics, error) {
	factory := metric.NewWithRegistry("", registry)

	m := &metricsImpl{
		txMetrics: newTxMetrics(factory),
		numMessagesSent: factory.NewCounter(
			"messages_sent",
			"Number of cross chain messages sent",
		),
		numMessagesReceived: factory.NewCounter(
			"messages_received",
			"Number of cross chain messages applied on receipt",
		),
		numMessagesBounced: factory.NewCounter(
			"messages_bounced",
			"Number of tracked cross chain messages that bounced back",
		),
	}

	interceptor, err := utilmetric.NewAPIInterceptor(registry)
	if err != nil {
		return nil, err
	}
	m.APIInterceptor = interceptor
	return m, nil
}
