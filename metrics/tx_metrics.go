// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"github.com/luxfi/metric"

	"github.com/luxfi/nftvm/txs"
)

const txLabel = "tx"

var (
	_ txs.Visitor = (*txMetrics)(nil)

	txLabels = []string{txLabel}
)

type txMetrics struct {
	numTxs metric.CounterVec
}

func newTxMetrics(factory metric.Metrics) *txMetrics {
	return &txMetrics{
		numTxs: factory.NewCounterVec(
			"txs_accepted",
			"number of operations accepted",
			txLabels,
		),
	}
}

func (m *txMetrics) MintTx(*txs.MintTx) error {
	m.numTxs.With(metric.Labels{
		txLabel: "mint",
	}).Inc()
	return nil
}

func (m *txMetrics) TransferTx(*txs.TransferTx) error {
	m.numTxs.With(metric.Labels{
		txLabel: "transfer",
	}).Inc()
	return nil
}

func (m *txMetrics) ClaimTx(*txs.ClaimTx) error {
	m.numTxs.With(metric.Labels{
		txLabel: "claim",
	}).Inc()
	return nil
}

func (m *txMetrics) ListForSaleTx(*txs.ListForSaleTx) error {
	m.numTxs.With(metric.Labels{
		txLabel: "list_for_sale",
	}).Inc()
	return nil
}
