// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package nft

import (
	"github.com/luxfi/crypto/hash"
	"github.com/luxfi/ids"

	"github.com/luxfi/utils/wrappers"
)

// maxTokenIDPreimage bounds the packed preimage. Names, prices, and
// chain strings are short; 4 KiB leaves ample room.
const maxTokenIDPreimage = 4 * 1024

// ComputeTokenID derives the token id minted for the given inputs. The
// id is a 256-bit hash over the canonical packing of every input, so two
// chains deriving an id for identical inputs always agree, and two mints
// on one chain always differ because numMinted differs.
//
// numMinted must be the chain's mint counter value before it is
// incremented for this mint.
func ComputeTokenID(
	chainID ids.ID,
	applicationID ids.ID,
	name string,
	minter Owner,
	blobHash ids.ID,
	numMinted uint64,
	assetSymbol string,
	externalID uint64,
	price string,
	chainOwner string,
	chainMinter string,
) (ids.ID, error) {
	p := wrappers.Packer{MaxSize: maxTokenIDPreimage}
	p.PackFixedBytes(chainID[:])
	p.PackFixedBytes(applicationID[:])
	p.PackBytes([]byte(name))
	p.PackLong(uint64(len(name)))
	p.PackFixedBytes(minter.Bytes())
	p.PackFixedBytes(blobHash[:])
	p.PackLong(numMinted)
	p.PackBytes([]byte(assetSymbol))
	p.PackLong(externalID)
	p.PackBytes([]byte(price))
	p.PackBytes([]byte(chainOwner))
	p.PackBytes([]byte(chainMinter))
	if err := p.Err; err != nil {
		return ids.Empty, err
	}
	return hash.ComputeHash256Array(p.Bytes), nil
}
