// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	"errors"
	"fmt"

	"github.com/luxfi/log"

	"github.com/luxfi/nftvm/blob"
	"github.com/luxfi/nftvm/message"
	"github.com/luxfi/nftvm/state"
)

var (
	errUnexpectedMessage = errors.New("unexpected message type")
	errWrongPayload      = errors.New("payload does not hash to the record's blob hash")
)

// MessageHandler applies one delivered message to the chain's ledger.
// The delivery facts distinguish a normal delivery from one of this
// chain's own tracked messages bouncing back.
type MessageHandler struct {
	*Backend
	State   state.Chain
	Inbound *message.Inbound
	Outbox  *message.Outbox
}

func (h *MessageHandler) Handle() error {
	switch msg := h.Inbound.Message.(type) {
	case *message.Transfer:
		return h.handleTransfer(msg)
	case *message.Claim:
		return h.handleClaim(msg)
	default:
		return fmt.Errorf("%w: %T", errUnexpectedMessage, msg)
	}
}

// handleTransfer lands a token on this chain. On a normal delivery the
// target account takes ownership. On a bounce the record is reinserted
// untouched, restoring the pre-send owner; the sold status from the
// failed send is kept.
func (h *MessageHandler) handleTransfer(msg *message.Transfer) error {
	record := msg.NFT

	// The payload is content addressed, so matching the record's hash
	// proves it is the blob the record references.
	if blob.Hash(msg.Payload) != record.BlobHash {
		return fmt.Errorf("%w: token %s", errWrongPayload, record.TokenID)
	}
	if _, err := h.Blobs.Put(msg.Payload); err != nil {
		return err
	}

	if h.Inbound.Bouncing {
		h.Log.Warn("transfer bounced, restoring token",
			log.Stringer("tokenID", record.TokenID),
			log.Stringer("owner", record.Owner),
			log.Stringer("targetChain", h.Inbound.SourceChain),
		)
	} else {
		record.Owner = msg.TargetAccount.Owner
	}
	return h.State.PutNFT(&record)
}

// handleClaim resolves a claim against a token held on this chain by
// running the transfer protocol toward the claim's target, which may
// send the token back out as a transfer message.
func (h *MessageHandler) handleClaim(msg *message.Claim) error {
	if h.Inbound.Bouncing {
		// A claim carries no token, so a bounced claim leaves nothing to
		// restore. The pull simply never happened.
		h.Log.Warn("dropping bounced claim",
			log.Stringer("tokenID", msg.TokenID),
			log.Stringer("sourceChain", h.Inbound.SourceChain),
		)
		return nil
	}

	auth := Authenticator{
		Signer:    h.Inbound.Signer,
		HasSigner: h.Inbound.HasSigner,
		Caller:    h.Inbound.Caller,
		HasCaller: h.Inbound.HasCaller,
	}
	if err := auth.Authorize(msg.SourceAccount.Owner); err != nil {
		return err
	}

	record, err := h.State.GetNFT(msg.TokenID)
	if err != nil {
		return err
	}
	if !record.Owner.Equals(msg.SourceAccount.Owner) {
		return fmt.Errorf("%w: token %s is held by %s", ErrNotOwner, msg.TokenID, record.Owner)
	}

	executor := &Executor{
		Backend: h.Backend,
		State:   h.State,
		Auth:    auth,
		Outbox:  h.Outbox,
	}
	return executor.transfer(record, msg.TargetAccount)
}
