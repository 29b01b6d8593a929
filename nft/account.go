// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package nft

import (
	"errors"

	"github.com/luxfi/ids"
)

var ErrEmptyChain = errors.New("account chain is empty")

// Account is an owner qualified by the chain it lives on.
type Account struct {
	Chain ids.ID `serialize:"true" json:"chain"`
	Owner Owner  `serialize:"true" json:"owner"`
}

func (a Account) Verify() error {
	if a.Chain == ids.Empty {
		return ErrEmptyChain
	}
	return a.Owner.Verify()
}

func (a Account) Equals(other Account) bool {
	return a.Chain == other.Chain && a.Owner.Equals(other.Owner)
}

func (a Account) String() string {
	return a.Chain.String() + ":" + a.Owner.String()
}
