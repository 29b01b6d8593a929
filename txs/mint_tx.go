// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"errors"
	"fmt"

	consensusctx "github.com/luxfi/consensus/context"
	"github.com/luxfi/constants"
	"github.com/luxfi/ids"

	"github.com/luxfi/nftvm/nft"
)

const (
	MaxNameLen        = 128
	MaxDescriptionLen = constants.KiB
)

var (
	_ UnsignedTx = (*MintTx)(nil)

	errNameTooLong        = errors.New("name too long")
	errDescriptionTooLong = errors.New("description too long")
)

// MintTx creates a token on the local chain. The token id is derived
// from the mint-time facts and the chain's mint counter, so resubmitting
// the same mint yields a distinct token.
type MintTx struct {
	// Minter becomes both the minter and the initial owner of the token.
	Minter nft.Owner `serialize:"true" json:"minter"`
	Name   string    `serialize:"true" json:"name"`
	// BlobHash references the token's payload in the blob store. The
	// blob must exist before the mint executes.
	BlobHash ids.ID `serialize:"true" json:"blobHash"`
	// AssetSymbol and Price describe the foreign asset the token is
	// priced in.
	AssetSymbol string `serialize:"true" json:"assetSymbol"`
	Price       string `serialize:"true" json:"price"`
	// ExternalID cross-references a foreign chain's record of this
	// token.
	ExternalID  uint64 `serialize:"true" json:"externalID"`
	ChainMinter string `serialize:"true" json:"chainMinter"`
	ChainOwner  string `serialize:"true" json:"chainOwner"`
	Description string `serialize:"true" json:"description"`
}

func (tx *MintTx) SyntacticVerify(*consensusctx.Context) error {
	switch {
	case tx == nil:
		return ErrNilTx
	case tx.Name == "":
		return nft.ErrEmptyName
	case len(tx.Name) > MaxNameLen:
		return errNameTooLong
	case len(tx.Description) > MaxDescriptionLen:
		return errDescriptionTooLong
	case tx.BlobHash == ids.Empty:
		return nft.ErrEmptyBlobHash
	}

	if err := tx.Minter.Verify(); err != nil {
		return fmt.Errorf("minter: %w", err)
	}
	return nil
}

func (tx *MintTx) Visit(visitor Visitor) error {
	return visitor.MintTx(tx)
}
