// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package state owns the persistent token ledger of a single chain: the
// token records, the owner index, the external id index, and the mint
// counter.
package state

import (
	"bytes"
	"fmt"

	"github.com/luxfi/cache"
	"github.com/luxfi/cache/lru"
	"github.com/luxfi/cache/metercacher"
	"github.com/luxfi/database"
	"github.com/luxfi/database/prefixdb"
	"github.com/luxfi/database/versiondb"
	"github.com/luxfi/ids"
	"github.com/luxfi/metric"

	"github.com/luxfi/nftvm/nft"
)

var (
	_ State = (*state)(nil)

	NFTPrefix        = []byte("nft")
	OwnerIndexPrefix = []byte("ownerIndex")
	ExternalIDPrefix = []byte("externalID")
	SingletonPrefix  = []byte("singleton")

	NumMintedKey   = []byte("numMinted")
	InitializedKey = []byte("initialized")
)

// Chain is the mutable ledger surface available while executing a single
// operation or inbound message. The index rows follow the token record:
// PutNFT and DeleteNFT keep the owner index and the external id index
// consistent with the record they store or drop.
type Chain interface {
	// GetNFT returns the token record stored under tokenID, or
	// database.ErrNotFound if the token does not reside on this chain.
	// The returned record is a copy; mutations are not visible until
	// PutNFT.
	GetNFT(tokenID ids.ID) (*nft.NFT, error)

	// PutNFT stores the record and indexes it under its owner and its
	// external id, repairing both indices if either field changed.
	PutNFT(record *nft.NFT) error

	// DeleteNFT drops the record and its index rows. Returns
	// database.ErrNotFound if the token is not on this chain.
	DeleteNFT(tokenID ids.ID) error

	// GetTokenIDByExternalID resolves a foreign-system numeric id to the
	// token currently indexed under it.
	GetTokenIDByExternalID(externalID uint64) (ids.ID, error)

	GetNumMinted() (uint64, error)
	SetNumMinted(count uint64) error
}

// OwnedTokens groups the token ids held by a single owner.
type OwnedTokens struct {
	Owner    nft.Owner
	TokenIDs []ids.ID
}

// State adds the read surface and the commit lifecycle on top of Chain.
// Mutations accumulate in memory until Commit makes them durable as one
// atomic batch; Abort discards them. Callers serialize access.
type State interface {
	Chain

	// GetOwnedTokenIDs returns the ids of every token whose record names
	// owner, in byte order.
	GetOwnedTokenIDs(owner nft.Owner) ([]ids.ID, error)

	// GetAllOwned returns the full owner index grouped by owner.
	GetAllOwned() ([]OwnedTokens, error)

	// GetAllNFTs returns every token record on this chain.
	GetAllNFTs() ([]*nft.NFT, error)

	IsInitialized() (bool, error)
	SetInitialized() error

	Commit() error
	Abort()
	Close() error
}

/*
 * VersionDB
 * |-. nft
 * | '-- tokenID -> serialized token record
 * |-. ownerIndex
 * | '-- owner bytes + tokenID -> nil
 * |-. externalID
 * | '-- packed external id -> tokenID
 * '-. singleton
 *   |-- numMintedKey -> uint64
 *   '-- initializedKey -> nil
 */
type state struct {
	baseDB *versiondb.Database

	// nftCache caches tokenID -> record. A nil entry records a missing
	// token. Entries never alias records held by callers.
	nftCache cache.Cacher[ids.ID, *nft.NFT]

	nftDB        database.Database
	ownerIndexDB database.Database
	externalIDDB database.Database
	singletonDB  database.Database
}

func New(db database.Database, cacheSize int, registry metric.Registry) (State, error) {
	nftCache, err := metercacher.New[ids.ID, *nft.NFT](
		"nft_cache",
		registry,
		lru.NewCache[ids.ID, *nft.NFT](cacheSize),
	)
	if err != nil {
		return nil, err
	}

	baseDB := versiondb.New(db)
	return &state{
		baseDB:       baseDB,
		nftCache:     nftCache,
		nftDB:        prefixdb.New(NFTPrefix, baseDB),
		ownerIndexDB: prefixdb.New(OwnerIndexPrefix, baseDB),
		externalIDDB: prefixdb.New(ExternalIDPrefix, baseDB),
		singletonDB:  prefixdb.New(SingletonPrefix, baseDB),
	}, nil
}

func (s *state) GetNFT(tokenID ids.ID) (*nft.NFT, error) {
	if record, cached := s.nftCache.Get(tokenID); cached {
		if record == nil {
			return nil, database.ErrNotFound
		}
		cp := *record
		return &cp, nil
	}

	recordBytes, err := s.nftDB.Get(tokenID[:])
	if err == database.ErrNotFound {
		s.nftCache.Put(tokenID, nil)
		return nil, database.ErrNotFound
	} else if err != nil {
		return nil, err
	}

	record := &nft.NFT{}
	if _, err := c.Unmarshal(recordBytes, record); err != nil {
		return nil, fmt.Errorf("failed to deserialize token %s: %w", tokenID, err)
	}

	s.nftCache.Put(tokenID, record)
	cp := *record
	return &cp, nil
}

func (s *state) PutNFT(record *nft.NFT) error {
	if err := record.Verify(); err != nil {
		return err
	}

	prev, err := s.GetNFT(record.TokenID)
	if err != nil && err != database.ErrNotFound {
		return err
	}

	recordBytes, err := c.Marshal(codecVersion, record)
	if err != nil {
		return fmt.Errorf("failed to serialize token %s: %w", record.TokenID, err)
	}
	if err := s.nftDB.Put(record.TokenID[:], recordBytes); err != nil {
		return err
	}

	if prev != nil && !prev.Owner.Equals(record.Owner) {
		if err := s.ownerIndexDB.Delete(ownerIndexKey(prev.Owner, prev.TokenID)); err != nil {
			return err
		}
	}
	if err := s.ownerIndexDB.Put(ownerIndexKey(record.Owner, record.TokenID), nil); err != nil {
		return err
	}

	if prev != nil && prev.ExternalID != record.ExternalID {
		if err := s.deleteExternalID(prev.ExternalID, prev.TokenID); err != nil {
			return err
		}
	}
	// Last writer wins when two tokens share an external id.
	if err := database.PutID(s.externalIDDB, database.PackUInt64(record.ExternalID), record.TokenID); err != nil {
		return err
	}

	cp := *record
	s.nftCache.Put(record.TokenID, &cp)
	return nil
}

func (s *state) DeleteNFT(tokenID ids.ID) error {
	record, err := s.GetNFT(tokenID)
	if err != nil {
		return err
	}

	if err := s.nftDB.Delete(tokenID[:]); err != nil {
		return err
	}
	if err := s.ownerIndexDB.Delete(ownerIndexKey(record.Owner, tokenID)); err != nil {
		return err
	}
	if err := s.deleteExternalID(record.ExternalID, tokenID); err != nil {
		return err
	}

	s.nftCache.Put(tokenID, nil)
	return nil
}

// deleteExternalID drops the external id row only while it still points
// at tokenID. A later mint may have overwritten the row.
func (s *state) deleteExternalID(externalID uint64, tokenID ids.ID) error {
	key := database.PackUInt64(externalID)
	mapped, err := database.GetID(s.externalIDDB, key)
	if err == database.ErrNotFound {
		return nil
	} else if err != nil {
		return err
	}
	if mapped != tokenID {
		return nil
	}
	return s.externalIDDB.Delete(key)
}

func (s *state) GetTokenIDByExternalID(externalID uint64) (ids.ID, error) {
	return database.GetID(s.externalIDDB, database.PackUInt64(externalID))
}

func (s *state) GetOwnedTokenIDs(owner nft.Owner) ([]ids.ID, error) {
	ownerBytes := owner.Bytes()
	iter := s.ownerIndexDB.NewIteratorWithPrefix(ownerBytes)
	defer iter.Release()

	var tokenIDs []ids.ID
	for iter.Next() {
		tokenID, err := tokenIDFromIndexKey(iter.Key())
		if err != nil {
			return nil, err
		}
		tokenIDs = append(tokenIDs, tokenID)
	}
	return tokenIDs, iter.Error()
}

func (s *state) GetAllOwned() ([]OwnedTokens, error) {
	iter := s.ownerIndexDB.NewIterator()
	defer iter.Release()

	var (
		owned        []OwnedTokens
		currentOwner []byte
	)
	for iter.Next() {
		key := iter.Key()
		tokenID, err := tokenIDFromIndexKey(key)
		if err != nil {
			return nil, err
		}

		// Rows are sorted by owner bytes, so each owner's rows are
		// consecutive.
		ownerBytes := key[:len(key)-ids.IDLen]
		if currentOwner == nil || !bytes.Equal(ownerBytes, currentOwner) {
			owner, err := nft.ParseOwnerBytes(ownerBytes)
			if err != nil {
				return nil, fmt.Errorf("failed to parse owner index key: %w", err)
			}
			owned = append(owned, OwnedTokens{Owner: owner})
			currentOwner = append([]byte(nil), ownerBytes...)
		}
		last := &owned[len(owned)-1]
		last.TokenIDs = append(last.TokenIDs, tokenID)
	}
	return owned, iter.Error()
}

func (s *state) GetAllNFTs() ([]*nft.NFT, error) {
	iter := s.nftDB.NewIterator()
	defer iter.Release()

	var records []*nft.NFT
	for iter.Next() {
		record := &nft.NFT{}
		if _, err := c.Unmarshal(iter.Value(), record); err != nil {
			return nil, fmt.Errorf("failed to deserialize token: %w", err)
		}
		records = append(records, record)
	}
	return records, iter.Error()
}

func (s *state) GetNumMinted() (uint64, error) {
	count, err := database.GetUInt64(s.singletonDB, NumMintedKey)
	if err == database.ErrNotFound {
		return 0, nil
	}
	return count, err
}

func (s *state) SetNumMinted(count uint64) error {
	return database.PutUInt64(s.singletonDB, NumMintedKey, count)
}

func (s *state) IsInitialized() (bool, error) {
	return s.singletonDB.Has(InitializedKey)
}

func (s *state) SetInitialized() error {
	return s.singletonDB.Put(InitializedKey, nil)
}

func (s *state) Commit() error {
	defer s.baseDB.Abort()
	batch, err := s.baseDB.CommitBatch()
	if err != nil {
		return err
	}
	return batch.Write()
}

func (s *state) Abort() {
	s.baseDB.Abort()
	// Cached records may reflect the discarded writes.
	s.nftCache.Flush()
}

func (s *state) Close() error {
	return s.baseDB.Close()
}

func ownerIndexKey(owner nft.Owner, tokenID ids.ID) []byte {
	ownerBytes := owner.Bytes()
	key := make([]byte, len(ownerBytes)+ids.IDLen)
	copy(key, ownerBytes)
	copy(key[len(ownerBytes):], tokenID[:])
	return key
}

func tokenIDFromIndexKey(key []byte) (ids.ID, error) {
	if len(key) <= ids.IDLen {
		return ids.Empty, fmt.Errorf("owner index key too short: %d bytes", len(key))
	}
	return ids.ToID(key[len(key)-ids.IDLen:])
}
