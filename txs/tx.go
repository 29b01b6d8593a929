// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package txs defines the mutating operations accepted by the token
// ledger.
package txs

import (
	"errors"

	consensusctx "github.com/luxfi/consensus/context"
)

var (
	ErrNilTx = errors.New("nil tx")

	errEmptyTokenID = errors.New("empty token id")
)

// UnsignedTx is an operation submitted to the chain's execution slot.
type UnsignedTx interface {
	// Attempts to verify this operation without any provided state.
	SyntacticVerify(ctx *consensusctx.Context) error

	// Visit calls [visitor] with this operation's concrete type
	Visit(visitor Visitor) error
}
