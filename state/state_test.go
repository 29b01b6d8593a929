// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/database"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/ids"
	"github.com/luxfi/metric"

	"github.com/luxfi/nftvm/nft"
)

const testCacheSize = 64

func newTestState(t *testing.T, db database.Database) State {
	require := require.New(t)

	s, err := New(db, testCacheSize, metric.NewRegistry())
	require.NoError(err)
	return s
}

func newTestNFT(owner nft.Owner, externalID uint64) *nft.NFT {
	return &nft.NFT{
		TokenID:     ids.GenerateTestID(),
		Owner:       owner,
		Name:        "crystal",
		Minter:      owner,
		BlobHash:    ids.GenerateTestID(),
		Status:      nft.StatusOnSale,
		AssetSymbol: "ETH",
		ExternalID:  externalID,
		Price:       "0.05",
		ChainOwner:  "0xowner",
		ChainMinter: "0xminter",
		Description: "a test token",
	}
}

func TestGetNFTMissing(t *testing.T) {
	require := require.New(t)

	s := newTestState(t, memdb.New())

	tokenID := ids.GenerateTestID()
	_, err := s.GetNFT(tokenID)
	require.ErrorIs(err, database.ErrNotFound)

	// Second lookup hits the negative cache entry.
	_, err = s.GetNFT(tokenID)
	require.ErrorIs(err, database.ErrNotFound)
}

func TestPutGetNFT(t *testing.T) {
	require := require.New(t)

	s := newTestState(t, memdb.New())

	owner := nft.NewUserOwner(ids.GenerateTestShortID())
	record := newTestNFT(owner, 7)
	require.NoError(s.PutNFT(record))

	got, err := s.GetNFT(record.TokenID)
	require.NoError(err)
	require.Equal(record, got)

	// The returned record is a copy. Mutating it must not leak into the
	// stored state.
	got.Name = "mutated"
	again, err := s.GetNFT(record.TokenID)
	require.NoError(err)
	require.Equal("crystal", again.Name)

	tokenID, err := s.GetTokenIDByExternalID(7)
	require.NoError(err)
	require.Equal(record.TokenID, tokenID)

	owned, err := s.GetOwnedTokenIDs(owner)
	require.NoError(err)
	require.Equal([]ids.ID{record.TokenID}, owned)
}

func TestPutNFTInvalid(t *testing.T) {
	require := require.New(t)

	s := newTestState(t, memdb.New())

	record := newTestNFT(nft.NewUserOwner(ids.GenerateTestShortID()), 1)
	record.Name = ""
	err := s.PutNFT(record)
	require.ErrorIs(err, nft.ErrEmptyName)
}

func TestDeleteNFT(t *testing.T) {
	require := require.New(t)

	s := newTestState(t, memdb.New())

	owner := nft.NewUserOwner(ids.GenerateTestShortID())
	record := newTestNFT(owner, 3)
	require.NoError(s.PutNFT(record))

	require.NoError(s.DeleteNFT(record.TokenID))

	_, err := s.GetNFT(record.TokenID)
	require.ErrorIs(err, database.ErrNotFound)

	owned, err := s.GetOwnedTokenIDs(owner)
	require.NoError(err)
	require.Empty(owned)

	_, err = s.GetTokenIDByExternalID(3)
	require.ErrorIs(err, database.ErrNotFound)

	err = s.DeleteNFT(record.TokenID)
	require.ErrorIs(err, database.ErrNotFound)
}

func TestPutNFTRepairsOwnerIndex(t *testing.T) {
	require := require.New(t)

	s := newTestState(t, memdb.New())

	seller := nft.NewUserOwner(ids.GenerateTestShortID())
	buyer := nft.NewUserOwner(ids.GenerateTestShortID())

	record := newTestNFT(seller, 11)
	require.NoError(s.PutNFT(record))

	record.Owner = buyer
	require.NoError(s.PutNFT(record))

	sellerOwned, err := s.GetOwnedTokenIDs(seller)
	require.NoError(err)
	require.Empty(sellerOwned)

	buyerOwned, err := s.GetOwnedTokenIDs(buyer)
	require.NoError(err)
	require.Equal([]ids.ID{record.TokenID}, buyerOwned)

	got, err := s.GetNFT(record.TokenID)
	require.NoError(err)
	require.True(got.Owner.Equals(buyer))
}

func TestExternalIDLastWriterWins(t *testing.T) {
	require := require.New(t)

	s := newTestState(t, memdb.New())

	owner := nft.NewUserOwner(ids.GenerateTestShortID())
	first := newTestNFT(owner, 7)
	second := newTestNFT(owner, 7)

	require.NoError(s.PutNFT(first))
	require.NoError(s.PutNFT(second))

	tokenID, err := s.GetTokenIDByExternalID(7)
	require.NoError(err)
	require.Equal(second.TokenID, tokenID)

	// Dropping the shadowed token must not disturb the surviving row.
	require.NoError(s.DeleteNFT(first.TokenID))

	tokenID, err = s.GetTokenIDByExternalID(7)
	require.NoError(err)
	require.Equal(second.TokenID, tokenID)

	require.NoError(s.DeleteNFT(second.TokenID))
	_, err = s.GetTokenIDByExternalID(7)
	require.ErrorIs(err, database.ErrNotFound)
}

func TestOwnedTokenIDsMultipleOwners(t *testing.T) {
	require := require.New(t)

	s := newTestState(t, memdb.New())

	alice := nft.NewUserOwner(ids.GenerateTestShortID())
	bob := nft.NewApplicationOwner(ids.GenerateTestID())

	aliceFirst := newTestNFT(alice, 1)
	aliceSecond := newTestNFT(alice, 2)
	bobOnly := newTestNFT(bob, 3)

	require.NoError(s.PutNFT(aliceFirst))
	require.NoError(s.PutNFT(aliceSecond))
	require.NoError(s.PutNFT(bobOnly))

	aliceOwned, err := s.GetOwnedTokenIDs(alice)
	require.NoError(err)
	require.ElementsMatch([]ids.ID{aliceFirst.TokenID, aliceSecond.TokenID}, aliceOwned)

	bobOwned, err := s.GetOwnedTokenIDs(bob)
	require.NoError(err)
	require.Equal([]ids.ID{bobOnly.TokenID}, bobOwned)

	owned, err := s.GetAllOwned()
	require.NoError(err)
	require.Len(owned, 2)

	total := 0
	for _, group := range owned {
		total += len(group.TokenIDs)
		for _, tokenID := range group.TokenIDs {
			record, err := s.GetNFT(tokenID)
			require.NoError(err)
			require.True(record.Owner.Equals(group.Owner))
		}
	}
	require.Equal(3, total)

	records, err := s.GetAllNFTs()
	require.NoError(err)
	require.Len(records, 3)
}

func TestNumMinted(t *testing.T) {
	require := require.New(t)

	s := newTestState(t, memdb.New())

	count, err := s.GetNumMinted()
	require.NoError(err)
	require.Zero(count)

	require.NoError(s.SetNumMinted(3))

	count, err = s.GetNumMinted()
	require.NoError(err)
	require.Equal(uint64(3), count)
}

func TestInitialized(t *testing.T) {
	require := require.New(t)

	s := newTestState(t, memdb.New())

	initialized, err := s.IsInitialized()
	require.NoError(err)
	require.False(initialized)

	require.NoError(s.SetInitialized())

	initialized, err = s.IsInitialized()
	require.NoError(err)
	require.True(initialized)
}

func TestAbortDiscardsChanges(t *testing.T) {
	require := require.New(t)

	s := newTestState(t, memdb.New())

	record := newTestNFT(nft.NewUserOwner(ids.GenerateTestShortID()), 5)
	require.NoError(s.PutNFT(record))

	s.Abort()

	_, err := s.GetNFT(record.TokenID)
	require.ErrorIs(err, database.ErrNotFound)

	_, err = s.GetTokenIDByExternalID(5)
	require.ErrorIs(err, database.ErrNotFound)
}

func TestCommitPersists(t *testing.T) {
	require := require.New(t)

	db := memdb.New()
	s := newTestState(t, db)

	record := newTestNFT(nft.NewUserOwner(ids.GenerateTestShortID()), 9)
	require.NoError(s.PutNFT(record))
	require.NoError(s.SetNumMinted(1))
	require.NoError(s.Commit())

	// An abort after commit must not roll back committed state.
	s.Abort()

	got, err := s.GetNFT(record.TokenID)
	require.NoError(err)
	require.Equal(record, got)

	// A fresh state over the same database sees the committed rows.
	reopened := newTestState(t, db)
	got, err = reopened.GetNFT(record.TokenID)
	require.NoError(err)
	require.Equal(record, got)

	count, err := reopened.GetNumMinted()
	require.NoError(err)
	require.Equal(uint64(1), count)
}
