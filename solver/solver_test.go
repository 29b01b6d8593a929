// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package solver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"
)

// Swap requests are fire-and-forget: neither stand-in may surface an
// error back into the transfer.
func TestSolversAcceptRequests(t *testing.T) {
	require := require.New(t)

	req := &SwapRequest{
		FromToken:          "ETH",
		ToToken:            "LUX",
		Amount:             "0.05",
		DestinationAddress: "0xowner",
	}

	noop := NoopSolver{Log: log.NoLog{}}
	require.NoError(noop.RequestSwap(req))

	logging := LoggingSolver{
		SolverID: ids.GenerateTestID(),
		Log:      log.NoLog{},
	}
	require.NoError(logging.RequestSwap(req))
}
