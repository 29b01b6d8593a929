// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package executor applies operations and inbound messages to the token
// ledger.
package executor

import (
	consensusctx "github.com/luxfi/consensus/context"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/luxfi/nftvm/blob"
	"github.com/luxfi/nftvm/config"
	"github.com/luxfi/nftvm/solver"
)

// Backend carries the fixed collaborators shared by every execution
// unit on a chain.
type Backend struct {
	Ctx *consensusctx.Context
	// AppID identifies this application instance; it salts token ids.
	AppID  ids.ID
	Config *config.Config
	Blobs  blob.Store
	Solver solver.Solver
	Log    log.Logger
}
