// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package blob stores the immutable content-addressed payloads
// referenced by token records.
package blob

import (
	"errors"
	"fmt"

	"github.com/luxfi/crypto/hash"
	"github.com/luxfi/database"
	"github.com/luxfi/ids"
)

var (
	_ Store = (*store)(nil)

	ErrBlobNotFound = errors.New("blob not found")
)

// Hash returns the content hash payload would be stored under.
func Hash(payload []byte) ids.ID {
	return hash.ComputeHash256Array(payload)
}

// Store holds payloads addressed by the hash of their content. Payloads
// are immutable: storing the same bytes twice yields the same hash and
// overwrites the row with identical content.
type Store interface {
	// Put stores payload and returns its content hash.
	Put(payload []byte) (ids.ID, error)

	// AssertExists fails with ErrBlobNotFound if no payload is stored
	// under blobHash. Mints require the referenced payload to exist.
	AssertExists(blobHash ids.ID) error

	// Get returns the payload stored under blobHash.
	Get(blobHash ids.ID) ([]byte, error)
}

type store struct {
	db database.Database
}

func NewStore(db database.Database) Store {
	return &store{db: db}
}

func (s *store) Put(payload []byte) (ids.ID, error) {
	blobHash := Hash(payload)
	return blobHash, s.db.Put(blobHash[:], payload)
}

func (s *store) AssertExists(blobHash ids.ID) error {
	has, err := s.db.Has(blobHash[:])
	if err != nil {
		return err
	}
	if !has {
		return fmt.Errorf("%w: %s", ErrBlobNotFound, blobHash)
	}
	return nil
}

func (s *store) Get(blobHash ids.ID) ([]byte, error) {
	payload, err := s.db.Get(blobHash[:])
	if err == database.ErrNotFound {
		return nil, fmt.Errorf("%w: %s", ErrBlobNotFound, blobHash)
	}
	return payload, err
}
