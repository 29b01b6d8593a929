// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"fmt"

	consensusctx "github.com/luxfi/consensus/context"
	"github.com/luxfi/ids"

	"github.com/luxfi/nftvm/nft"
)

var _ UnsignedTx = (*ClaimTx)(nil)

// ClaimTx pulls a token held by an account on a possibly remote chain
// toward a target account. When the source account is remote the claim
// travels to the source chain as a message and resolves there.
type ClaimTx struct {
	SourceAccount nft.Account `serialize:"true" json:"sourceAccount"`
	TokenID       ids.ID      `serialize:"true" json:"tokenID"`
	TargetAccount nft.Account `serialize:"true" json:"targetAccount"`
}

func (tx *ClaimTx) SyntacticVerify(*consensusctx.Context) error {
	switch {
	case tx == nil:
		return ErrNilTx
	case tx.TokenID == ids.Empty:
		return errEmptyTokenID
	}

	if err := tx.SourceAccount.Verify(); err != nil {
		return fmt.Errorf("source account: %w", err)
	}
	if err := tx.TargetAccount.Verify(); err != nil {
		return fmt.Errorf("target account: %w", err)
	}
	return nil
}

func (tx *ClaimTx) Visit(visitor Visitor) error {
	return visitor.ClaimTx(tx)
}
