// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/database"
	"github.com/luxfi/ids"

	"github.com/luxfi/nftvm/blob"
	"github.com/luxfi/nftvm/message"
	"github.com/luxfi/nftvm/nft"
)

// inFlightNFT builds the record and payload a sending chain would put
// on the wire: already marked sold, still naming the sender as owner.
func inFlightNFT(sender nft.Owner, externalID uint64) (nft.NFT, []byte) {
	payload := []byte("artwork")
	return nft.NFT{
		TokenID:     ids.GenerateTestID(),
		Owner:       sender,
		Name:        "crystal",
		Minter:      sender,
		BlobHash:    blob.Hash(payload),
		Status:      nft.StatusSold,
		AssetSymbol: "ETH",
		ExternalID:  externalID,
		Price:       "0.05",
		ChainOwner:  "0xbuyer",
		ChainMinter: "0xminter",
	}, payload
}

func TestHandleTransfer(t *testing.T) {
	require := require.New(t)

	env := newTestEnv(t)
	sender := nft.NewUserOwner(ids.GenerateTestShortID())
	receiver := nft.NewUserOwner(ids.GenerateTestShortID())
	record, payload := inFlightNFT(sender, 7)

	msg := &message.Transfer{
		NFT:     record,
		Payload: payload,
		TargetAccount: nft.Account{
			Chain: env.chainID,
			Owner: receiver,
		},
	}
	_, err := message.Build(msg)
	require.NoError(err)

	handler := env.handler(&message.Inbound{
		SourceChain: ids.GenerateTestID(),
		Message:     msg,
	})
	require.NoError(handler.Handle())

	// Delivery hands the token to the target owner.
	stored, err := env.state.GetNFT(record.TokenID)
	require.NoError(err)
	require.True(stored.Owner.Equals(receiver))
	require.Equal(nft.StatusSold, stored.Status)

	owned, err := env.state.GetOwnedTokenIDs(receiver)
	require.NoError(err)
	require.Equal([]ids.ID{record.TokenID}, owned)

	mapped, err := env.state.GetTokenIDByExternalID(7)
	require.NoError(err)
	require.Equal(record.TokenID, mapped)

	// The content landed with the token.
	got, err := env.blobs.Get(record.BlobHash)
	require.NoError(err)
	require.Equal(payload, got)

	require.Zero(env.outbox.Len())
}

func TestHandleTransferWrongPayload(t *testing.T) {
	require := require.New(t)

	env := newTestEnv(t)
	sender := nft.NewUserOwner(ids.GenerateTestShortID())
	record, _ := inFlightNFT(sender, 7)

	msg := &message.Transfer{
		NFT:     record,
		Payload: []byte("not the artwork"),
		TargetAccount: nft.Account{
			Chain: env.chainID,
			Owner: sender,
		},
	}
	_, err := message.Build(msg)
	require.NoError(err)

	handler := env.handler(&message.Inbound{
		SourceChain: ids.GenerateTestID(),
		Message:     msg,
	})
	err = handler.Handle()
	require.ErrorIs(err, errWrongPayload)

	_, err = env.state.GetNFT(record.TokenID)
	require.ErrorIs(err, database.ErrNotFound)
}

func TestHandleTransferBounce(t *testing.T) {
	require := require.New(t)

	env := newTestEnv(t)
	sender := nft.NewUserOwner(ids.GenerateTestShortID())
	receiver := nft.NewUserOwner(ids.GenerateTestShortID())
	record, payload := inFlightNFT(sender, 7)

	msg := &message.Transfer{
		NFT:     record,
		Payload: payload,
		TargetAccount: nft.Account{
			Chain: ids.GenerateTestID(),
			Owner: receiver,
		},
	}
	_, err := message.Build(msg)
	require.NoError(err)

	handler := env.handler(&message.Inbound{
		SourceChain: ids.GenerateTestID(),
		Bouncing:    true,
		Message:     msg,
	})
	require.NoError(handler.Handle())

	// The bounce restores the token to the owner it left with.
	stored, err := env.state.GetNFT(record.TokenID)
	require.NoError(err)
	require.True(stored.Owner.Equals(sender))
	require.Equal(nft.StatusSold, stored.Status)

	owned, err := env.state.GetOwnedTokenIDs(sender)
	require.NoError(err)
	require.Equal([]ids.ID{record.TokenID}, owned)
}

func TestHandleTransferInvalidRecord(t *testing.T) {
	require := require.New(t)

	env := newTestEnv(t)
	sender := nft.NewUserOwner(ids.GenerateTestShortID())
	record, payload := inFlightNFT(sender, 7)
	record.Name = ""

	msg := &message.Transfer{
		NFT:     record,
		Payload: payload,
		TargetAccount: nft.Account{
			Chain: env.chainID,
			Owner: sender,
		},
	}
	_, err := message.Build(msg)
	require.NoError(err)

	handler := env.handler(&message.Inbound{
		SourceChain: ids.GenerateTestID(),
		Message:     msg,
	})
	err = handler.Handle()
	require.ErrorIs(err, nft.ErrEmptyName)

	_, err = env.state.GetNFT(record.TokenID)
	require.ErrorIs(err, database.ErrNotFound)
}

func TestHandleClaim(t *testing.T) {
	require := require.New(t)

	env := newTestEnv(t)
	holder := ids.GenerateTestShortID()
	claimerChain := ids.GenerateTestID()
	target := nft.Account{
		Chain: claimerChain,
		Owner: nft.NewUserOwner(holder),
	}
	tokenID := env.mint(t, holder, 7)

	msg := &message.Claim{
		SourceAccount: nft.Account{
			Chain: env.chainID,
			Owner: nft.NewUserOwner(holder),
		},
		TokenID:       tokenID,
		TargetAccount: target,
	}
	_, err := message.Build(msg)
	require.NoError(err)

	handler := env.handler(&message.Inbound{
		SourceChain: claimerChain,
		Signer:      holder,
		HasSigner:   true,
		Message:     msg,
	})
	require.NoError(handler.Handle())

	// The claim resolves into an outbound transfer toward the claimer.
	_, err = env.state.GetNFT(tokenID)
	require.ErrorIs(err, database.ErrNotFound)

	outbound := env.outbox.Drain()
	require.Len(outbound, 1)
	require.Equal(claimerChain, outbound[0].Destination)
	require.True(outbound[0].Tracked)

	transfer, ok := outbound[0].Message.(*message.Transfer)
	require.True(ok)
	require.Equal(tokenID, transfer.NFT.TokenID)
	require.True(transfer.NFT.Owner.Equals(nft.NewUserOwner(holder)))
	require.Equal(nft.StatusSold, transfer.NFT.Status)
	require.Equal([]byte("artwork"), transfer.Payload)
	require.Equal(target, transfer.TargetAccount)
}

func TestHandleClaimLocalTarget(t *testing.T) {
	require := require.New(t)

	env := newTestEnv(t)
	holder := ids.GenerateTestShortID()
	receiver := nft.NewUserOwner(ids.GenerateTestShortID())
	tokenID := env.mint(t, holder, 7)

	// A claim whose target is the holding chain settles without any
	// further messaging.
	msg := &message.Claim{
		SourceAccount: nft.Account{
			Chain: env.chainID,
			Owner: nft.NewUserOwner(holder),
		},
		TokenID: tokenID,
		TargetAccount: nft.Account{
			Chain: env.chainID,
			Owner: receiver,
		},
	}
	_, err := message.Build(msg)
	require.NoError(err)

	handler := env.handler(&message.Inbound{
		SourceChain: ids.GenerateTestID(),
		Signer:      holder,
		HasSigner:   true,
		Message:     msg,
	})
	require.NoError(handler.Handle())

	stored, err := env.state.GetNFT(tokenID)
	require.NoError(err)
	require.True(stored.Owner.Equals(receiver))
	require.Zero(env.outbox.Len())
}

func TestHandleClaimWrongSigner(t *testing.T) {
	require := require.New(t)

	env := newTestEnv(t)
	holder := ids.GenerateTestShortID()
	tokenID := env.mint(t, holder, 7)

	msg := &message.Claim{
		SourceAccount: nft.Account{
			Chain: env.chainID,
			Owner: nft.NewUserOwner(holder),
		},
		TokenID: tokenID,
		TargetAccount: nft.Account{
			Chain: ids.GenerateTestID(),
			Owner: nft.NewUserOwner(holder),
		},
	}
	_, err := message.Build(msg)
	require.NoError(err)

	handler := env.handler(&message.Inbound{
		SourceChain: ids.GenerateTestID(),
		Signer:      ids.GenerateTestShortID(),
		HasSigner:   true,
		Message:     msg,
	})
	err = handler.Handle()
	require.ErrorIs(err, ErrUnauthorized)

	// The token stays put.
	stored, err := env.state.GetNFT(tokenID)
	require.NoError(err)
	require.True(stored.Owner.Equals(nft.NewUserOwner(holder)))
}

func TestHandleClaimNotOwner(t *testing.T) {
	require := require.New(t)

	env := newTestEnv(t)
	holder := ids.GenerateTestShortID()
	claimer := ids.GenerateTestShortID()
	tokenID := env.mint(t, holder, 7)

	// The claimer authenticates fine but does not own the token here.
	msg := &message.Claim{
		SourceAccount: nft.Account{
			Chain: env.chainID,
			Owner: nft.NewUserOwner(claimer),
		},
		TokenID: tokenID,
		TargetAccount: nft.Account{
			Chain: ids.GenerateTestID(),
			Owner: nft.NewUserOwner(claimer),
		},
	}
	_, err := message.Build(msg)
	require.NoError(err)

	handler := env.handler(&message.Inbound{
		SourceChain: ids.GenerateTestID(),
		Signer:      claimer,
		HasSigner:   true,
		Message:     msg,
	})
	err = handler.Handle()
	require.ErrorIs(err, ErrNotOwner)
}

func TestHandleClaimMissingToken(t *testing.T) {
	require := require.New(t)

	env := newTestEnv(t)
	claimer := ids.GenerateTestShortID()

	msg := &message.Claim{
		SourceAccount: nft.Account{
			Chain: env.chainID,
			Owner: nft.NewUserOwner(claimer),
		},
		TokenID: ids.GenerateTestID(),
		TargetAccount: nft.Account{
			Chain: ids.GenerateTestID(),
			Owner: nft.NewUserOwner(claimer),
		},
	}
	_, err := message.Build(msg)
	require.NoError(err)

	handler := env.handler(&message.Inbound{
		SourceChain: ids.GenerateTestID(),
		Signer:      claimer,
		HasSigner:   true,
		Message:     msg,
	})
	err = handler.Handle()
	require.ErrorIs(err, database.ErrNotFound)
}

func TestHandleClaimBounce(t *testing.T) {
	require := require.New(t)

	env := newTestEnv(t)
	holder := ids.GenerateTestShortID()
	tokenID := env.mint(t, holder, 7)

	msg := &message.Claim{
		SourceAccount: nft.Account{
			Chain: ids.GenerateTestID(),
			Owner: nft.NewUserOwner(holder),
		},
		TokenID: tokenID,
		TargetAccount: nft.Account{
			Chain: env.chainID,
			Owner: nft.NewUserOwner(holder),
		},
	}
	_, err := message.Build(msg)
	require.NoError(err)

	// A bounced claim carries no token, so there is nothing to restore.
	handler := env.handler(&message.Inbound{
		SourceChain: ids.GenerateTestID(),
		Bouncing:    true,
		Message:     msg,
	})
	require.NoError(handler.Handle())
	require.Zero(env.outbox.Len())

	stored, err := env.state.GetNFT(tokenID)
	require.NoError(err)
	require.True(stored.Owner.Equals(nft.NewUserOwner(holder)))
}
