// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package solver

import (
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
)

var _ Solver = LoggingSolver{}

// LoggingSolver records every swap request against the configured
// exchange application id. The in-process network carries no exchange
// application, so a configured solver id resolves to this stand-in.
type LoggingSolver struct {
	SolverID ids.ID
	Log      log.Logger
}

func (s LoggingSolver) RequestSwap(req *SwapRequest) error {
	s.Log.Info("requesting swap",
		log.Stringer("solverID", s.SolverID),
		log.String("fromToken", req.FromToken),
		log.String("toToken", req.ToToken),
		log.String("amount", req.Amount),
		log.String("destinationAddress", req.DestinationAddress),
	)
	return nil
}
