// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package genesis defines the initial contents of a chain's token
// ledger.
package genesis

import (
	"errors"
	"fmt"

	"github.com/luxfi/ids"
	"github.com/luxfi/math/set"

	"github.com/luxfi/nftvm/nft"
)

var (
	errNilGenesis        = errors.New("nil genesis")
	errDuplicateTokenID  = errors.New("duplicate token id in genesis")
	errCounterBehindNFTs = errors.New("mint counter seed below pre-minted token count")
)

// Genesis lists the tokens present from boot and seeds the mint counter.
type Genesis struct {
	NFTs []*nft.NFT `serialize:"true" json:"nfts"`
	// Blobs are the content payloads the pre-minted tokens reference.
	// They are stored by hash, so order does not matter.
	Blobs [][]byte `serialize:"true" json:"blobs"`
	// NumMinted seeds the chain's mint counter. It must cover the
	// pre-minted tokens so later mints keep deriving fresh ids.
	NumMinted uint64 `serialize:"true" json:"numMinted"`
}

func (g *Genesis) Verify() error {
	if g == nil {
		return errNilGenesis
	}
	if g.NumMinted < uint64(len(g.NFTs)) {
		return errCounterBehindNFTs
	}

	seen := set.Set[ids.ID]{}
	for _, record := range g.NFTs {
		if err := record.Verify(); err != nil {
			return fmt.Errorf("genesis token: %w", err)
		}
		if seen.Contains(record.TokenID) {
			return fmt.Errorf("%w: %s", errDuplicateTokenID, record.TokenID)
		}
		seen.Add(record.TokenID)
	}
	return nil
}

// Parse returns the genesis encoded by [bytes].
func Parse(bytes []byte) (*Genesis, error) {
	genesis := &Genesis{}
	if _, err := Codec.Unmarshal(bytes, genesis); err != nil {
		return nil, err
	}
	return genesis, genesis.Verify()
}
