// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	"errors"
	"fmt"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/luxfi/nftvm/message"
	"github.com/luxfi/nftvm/nft"
	"github.com/luxfi/nftvm/solver"
	"github.com/luxfi/nftvm/state"
	"github.com/luxfi/nftvm/txs"
)

var (
	_ txs.Visitor = (*Executor)(nil)

	// ErrNotOwner marks an operation whose declared source owner does
	// not hold the token.
	ErrNotOwner = errors.New("not the token owner")
)

// Executor applies one operation to the chain's ledger. Outbound
// messages produced by the operation land in Outbox; the caller ships
// them only if the whole unit commits.
type Executor struct {
	*Backend
	State  state.Chain
	Auth   Authenticator
	Outbox *message.Outbox

	// MintedID is populated during execution of a mint.
	MintedID ids.ID
}

func (e *Executor) MintTx(tx *txs.MintTx) error {
	if err := e.Auth.Authorize(tx.Minter); err != nil {
		return err
	}
	if err := e.Blobs.AssertExists(tx.BlobHash); err != nil {
		return err
	}

	// The pre-increment counter salts the id, so re-minting identical
	// facts yields a fresh token.
	numMinted, err := e.State.GetNumMinted()
	if err != nil {
		return err
	}
	tokenID, err := nft.ComputeTokenID(
		e.Ctx.ChainID,
		e.AppID,
		tx.Name,
		tx.Minter,
		tx.BlobHash,
		numMinted,
		tx.AssetSymbol,
		tx.ExternalID,
		tx.Price,
		tx.ChainOwner,
		tx.ChainMinter,
	)
	if err != nil {
		return err
	}

	record := &nft.NFT{
		TokenID:     tokenID,
		Owner:       tx.Minter,
		Name:        tx.Name,
		Minter:      tx.Minter,
		BlobHash:    tx.BlobHash,
		Status:      nft.StatusOnSale,
		AssetSymbol: tx.AssetSymbol,
		ExternalID:  tx.ExternalID,
		Price:       tx.Price,
		ChainOwner:  tx.ChainOwner,
		ChainMinter: tx.ChainMinter,
		Description: tx.Description,
	}
	if err := e.State.PutNFT(record); err != nil {
		return err
	}
	if err := e.State.SetNumMinted(numMinted + 1); err != nil {
		return err
	}

	e.MintedID = tokenID
	return nil
}

func (e *Executor) ListForSaleTx(tx *txs.ListForSaleTx) error {
	record, err := e.State.GetNFT(tx.TokenID)
	if err != nil {
		return err
	}
	if err := e.Auth.Authorize(record.Owner); err != nil {
		return err
	}

	record.Status = nft.StatusOnSale
	record.ChainOwner = tx.ChainOwner
	return e.State.PutNFT(record)
}

func (e *Executor) TransferTx(tx *txs.TransferTx) error {
	if err := e.Auth.Authorize(tx.SourceOwner); err != nil {
		return err
	}

	record, err := e.State.GetNFT(tx.TokenID)
	if err != nil {
		return err
	}
	if !record.Owner.Equals(tx.SourceOwner) {
		return fmt.Errorf("%w: token %s is held by %s", ErrNotOwner, tx.TokenID, record.Owner)
	}

	record.ChainOwner = tx.ChainOwner

	// The swap settles the purchase price out of band. Its outcome does
	// not gate the transfer.
	e.requestSwap(tx)

	return e.transfer(record, tx.TargetAccount)
}

func (e *Executor) ClaimTx(tx *txs.ClaimTx) error {
	if err := e.Auth.Authorize(tx.SourceAccount.Owner); err != nil {
		return err
	}

	if tx.SourceAccount.Chain == e.Ctx.ChainID {
		record, err := e.State.GetNFT(tx.TokenID)
		if err != nil {
			return err
		}
		if !record.Owner.Equals(tx.SourceAccount.Owner) {
			return fmt.Errorf("%w: token %s is held by %s", ErrNotOwner, tx.TokenID, record.Owner)
		}
		return e.transfer(record, tx.TargetAccount)
	}

	// The token lives on the source chain. The claim travels there with
	// the claimer's authentication in the envelope and resolves into a
	// transfer on arrival.
	msg := &message.Claim{
		SourceAccount: tx.SourceAccount,
		TokenID:       tx.TokenID,
		TargetAccount: tx.TargetAccount,
	}
	if _, err := message.Build(msg); err != nil {
		return err
	}
	e.Outbox.Push(&message.Outbound{
		Destination:   tx.SourceAccount.Chain,
		Authenticated: true,
		Signer:        e.Auth.Signer,
		HasSigner:     e.Auth.HasSigner,
		Caller:        e.Auth.Caller,
		HasCaller:     e.Auth.HasCaller,
		Message:       msg,
	})
	return nil
}

// transfer moves record to target. The token leaves this chain's ledger
// first and is marked sold; a local target reinserts it under the new
// owner in the same unit, a remote target puts it in flight inside a
// tracked message.
func (e *Executor) transfer(record *nft.NFT, target nft.Account) error {
	if err := e.State.DeleteNFT(record.TokenID); err != nil {
		return err
	}
	record.Status = nft.StatusSold

	if target.Chain == e.Ctx.ChainID {
		record.Owner = target.Owner
		return e.State.PutNFT(record)
	}

	// The content blob ships with the record so the receiving chain can
	// serve it.
	payload, err := e.Blobs.Get(record.BlobHash)
	if err != nil {
		return err
	}

	// The record still names the sender's owner. The receiving chain
	// rewrites ownership on delivery, or keeps it if the message comes
	// back as a bounce.
	msg := &message.Transfer{
		NFT:           *record,
		Payload:       payload,
		TargetAccount: target,
	}
	if _, err := message.Build(msg); err != nil {
		return err
	}
	e.Outbox.Push(&message.Outbound{
		Destination: target.Chain,
		Tracked:     true,
		Message:     msg,
	})
	return nil
}

func (e *Executor) requestSwap(tx *txs.TransferTx) {
	if e.Config.SolverID == ids.Empty {
		return
	}
	err := e.Solver.RequestSwap(&solver.SwapRequest{
		FromToken:          tx.BuyFromToken,
		ToToken:            tx.ToToken,
		Amount:             tx.Amount,
		DestinationAddress: tx.ChainOwner,
	})
	if err != nil {
		e.Log.Warn("swap request failed",
			log.Stringer("solverID", e.Config.SolverID),
			log.Stringer("tokenID", tx.TokenID),
			log.Err(err),
		)
	}
}
