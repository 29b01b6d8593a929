// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package nftvm

import (
	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/luxfi/nftvm/config"
)

// Name of this VM.
const Name = "nftvm"

// VMID is the unique identifier of the token ledger VM. It also salts
// token ids for deployments that do not configure their own appID.
var VMID = ids.ID{'n', 'f', 't', 'v', 'm'}

// Factory creates new token ledger instances.
type Factory struct {
	config.Config
}

func (f *Factory) New(log.Logger) (interface{}, error) {
	return &VM{Config: f.Config}, nil
}
