// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package message

import (
	"github.com/luxfi/ids"

	"github.com/luxfi/nftvm/nft"
)

var _ Message = (*Claim)(nil)

// Claim asks the chain holding the token to run the transfer protocol
// toward the target account. The claimer's authentication travels in the
// delivery envelope, not in the payload.
type Claim struct {
	message

	SourceAccount nft.Account `serialize:"true" json:"sourceAccount"`
	TokenID       ids.ID      `serialize:"true" json:"tokenID"`
	TargetAccount nft.Account `serialize:"true" json:"targetAccount"`
}
