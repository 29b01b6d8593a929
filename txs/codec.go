// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"errors"

	"github.com/luxfi/codec"
	"github.com/luxfi/codec/linearcodec"
	"github.com/luxfi/constants"
)

const (
	CodecVersion = 0

	maxTxSize = 512 * constants.KiB
)

// Codec does serialization and deserialization of operations
var Codec codec.Manager

func init() {
	Codec = codec.NewManager(maxTxSize)
	lc := linearcodec.NewDefault()

	err := errors.Join(
		lc.RegisterType(&MintTx{}),
		lc.RegisterType(&TransferTx{}),
		lc.RegisterType(&ClaimTx{}),
		lc.RegisterType(&ListForSaleTx{}),
		Codec.RegisterCodec(CodecVersion, lc),
	)
	if err != nil {
		panic(err)
	}
}

// Parse returns the operation encoded by [bytes].
func Parse(bytes []byte) (UnsignedTx, error) {
	var tx UnsignedTx
	if _, err := Codec.Unmarshal(bytes, &tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// Bytes returns the canonical encoding of [tx].
func Bytes(tx UnsignedTx) ([]byte, error) {
	return Codec.Marshal(CodecVersion, &tx)
}
