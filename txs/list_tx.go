// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	consensusctx "github.com/luxfi/consensus/context"
	"github.com/luxfi/ids"
)

var _ UnsignedTx = (*ListForSaleTx)(nil)

// ListForSaleTx puts a token back on sale and refreshes its
// foreign-chain owner display field. Ownership and indices are
// untouched.
type ListForSaleTx struct {
	TokenID    ids.ID `serialize:"true" json:"tokenID"`
	ChainOwner string `serialize:"true" json:"chainOwner"`
}

func (tx *ListForSaleTx) SyntacticVerify(*consensusctx.Context) error {
	switch {
	case tx == nil:
		return ErrNilTx
	case tx.TokenID == ids.Empty:
		return errEmptyTokenID
	default:
		return nil
	}
}

func (tx *ListForSaleTx) Visit(visitor Visitor) error {
	return visitor.ListForSaleTx(tx)
}
