// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package solver reaches the external exchange application that converts
// assets alongside a token transfer.
package solver

import (
	"github.com/luxfi/log"
)

// SwapRequest asks the exchange application to convert FromToken into
// ToToken and credit the proceeds to DestinationAddress.
type SwapRequest struct {
	FromToken          string `json:"fromToken"`
	ToToken            string `json:"toToken"`
	Amount             string `json:"amount"`
	DestinationAddress string `json:"destinationAddress"`
}

// Solver is the exchange application invoked alongside a transfer. The
// call is fire-and-forget: the transfer neither awaits nor rolls back on
// its outcome.
type Solver interface {
	RequestSwap(req *SwapRequest) error
}

var _ Solver = NoopSolver{}

// NoopSolver drops every swap request. Used when no exchange application
// is configured.
type NoopSolver struct {
	Log log.Logger
}

func (s NoopSolver) RequestSwap(req *SwapRequest) error {
	s.Log.Debug("dropping swap request",
		log.String("fromToken", req.FromToken),
		log.String("toToken", req.ToToken),
		log.String("amount", req.Amount),
		log.String("destinationAddress", req.DestinationAddress),
	)
	return nil
}
