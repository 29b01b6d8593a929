// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"math"

	"github.com/luxfi/codec"
	"github.com/luxfi/codec/linearcodec"
)

const codecVersion = 0

// c serializes token records for storage. Records are plain structs, so
// no type registration is required.
var c codec.Manager

func init() {
	c = codec.NewManager(math.MaxInt)
	lc := linearcodec.NewDefault()
	if err := c.RegisterCodec(codecVersion, lc); err != nil {
		panic(err)
	}
}
