// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"fmt"

	consensusctx "github.com/luxfi/consensus/context"
	"github.com/luxfi/ids"

	"github.com/luxfi/nftvm/nft"
)

var _ UnsignedTx = (*TransferTx)(nil)

// TransferTx moves a token from a locally owned account to a possibly
// remote account. A remote target puts the token in flight until the
// carrying message is applied or bounces back.
type TransferTx struct {
	SourceOwner   nft.Owner   `serialize:"true" json:"sourceOwner"`
	TokenID       ids.ID      `serialize:"true" json:"tokenID"`
	TargetAccount nft.Account `serialize:"true" json:"targetAccount"`
	// ChainOwner replaces the token's foreign-chain owner display field.
	ChainOwner string `serialize:"true" json:"chainOwner"`
	// BuyFromToken, ToToken and Amount describe the swap requested from
	// the exchange application alongside the transfer. The swap outcome
	// does not gate the transfer.
	BuyFromToken string `serialize:"true" json:"buyFromToken"`
	ToToken      string `serialize:"true" json:"toToken"`
	Amount       string `serialize:"true" json:"amount"`
}

func (tx *TransferTx) SyntacticVerify(*consensusctx.Context) error {
	switch {
	case tx == nil:
		return ErrNilTx
	case tx.TokenID == ids.Empty:
		return errEmptyTokenID
	}

	if err := tx.SourceOwner.Verify(); err != nil {
		return fmt.Errorf("source owner: %w", err)
	}
	if err := tx.TargetAccount.Verify(); err != nil {
		return fmt.Errorf("target account: %w", err)
	}
	return nil
}

func (tx *TransferTx) Visit(visitor Visitor) error {
	return visitor.TransferTx(tx)
}
