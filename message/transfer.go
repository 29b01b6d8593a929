// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package message

import (
	"github.com/luxfi/nftvm/nft"
)

var _ Message = (*Transfer)(nil)

// Transfer carries a token record to the target account's chain. The
// record still names the pre-send owner: the receiving chain rewrites
// ownership on a normal delivery and keeps it on a bounce, which
// restores the token to its pre-send owner back on the sending chain.
//
// Payload is the content blob the record references. It travels with
// the token so the receiving chain can serve the content without a
// separate fetch.
type Transfer struct {
	message

	NFT           nft.NFT     `serialize:"true" json:"nft"`
	Payload       []byte      `serialize:"true" json:"payload"`
	TargetAccount nft.Account `serialize:"true" json:"targetAccount"`
}
