// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

// Allow the vm to execute custom logic against the underlying operation
// types.
type Visitor interface {
	MintTx(*MintTx) error
	TransferTx(*TransferTx) error
	ClaimTx(*ClaimTx) error
	ListForSaleTx(*ListForSaleTx) error
}
