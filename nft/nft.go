// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package nft

import (
	"errors"
	"fmt"

	"github.com/luxfi/ids"
)

// Status is the sale state of a token on its current chain. Every
// transfer marks the token sold; relisting is an explicit operation.
type Status uint8

const (
	// StatusSold marks a token whose most recent transfer completed.
	StatusSold Status = iota
	// StatusOnSale marks a token listed for sale.
	StatusOnSale
)

var (
	ErrUnknownStatus = errors.New("unknown token status")
	ErrEmptyName     = errors.New("token name is empty")
	ErrEmptyBlobHash = errors.New("token blob hash is empty")
)

func (s Status) Verify() error {
	switch s {
	case StatusSold, StatusOnSale:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnknownStatus, uint8(s))
	}
}

func (s Status) String() string {
	switch s {
	case StatusSold:
		return "sold"
	case StatusOnSale:
		return "onSale"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// MarshalJSON renders the status by name rather than numeric value.
func (s Status) MarshalJSON() ([]byte, error) {
	if err := s.Verify(); err != nil {
		return nil, err
	}
	return []byte(`"` + s.String() + `"`), nil
}

func (s *Status) UnmarshalJSON(b []byte) error {
	switch string(b) {
	case `"sold"`:
		*s = StatusSold
	case `"onSale"`:
		*s = StatusOnSale
	case "null":
	default:
		return fmt.Errorf("%w: %s", ErrUnknownStatus, string(b))
	}
	return nil
}

// NFT is the full token record. The record carries its own token id and
// travels whole across chains: a cross-chain transfer serializes the
// record into the message and the receiving chain stores it unchanged
// except for ownership.
type NFT struct {
	TokenID     ids.ID `serialize:"true" json:"tokenID"`
	Owner       Owner  `serialize:"true" json:"owner"`
	Name        string `serialize:"true" json:"name"`
	Minter      Owner  `serialize:"true" json:"minter"`
	BlobHash    ids.ID `serialize:"true" json:"blobHash"`
	Status      Status `serialize:"true" json:"status"`
	AssetSymbol string `serialize:"true" json:"assetSymbol"`
	ExternalID  uint64 `serialize:"true" json:"externalID"`
	Price       string `serialize:"true" json:"price"`
	ChainOwner  string `serialize:"true" json:"chainOwner"`
	ChainMinter string `serialize:"true" json:"chainMinter"`
	Description string `serialize:"true" json:"description"`
}

func (n *NFT) Verify() error {
	switch {
	case n == nil:
		return errNilNFT
	case n.TokenID == ids.Empty:
		return errEmptyTokenID
	case n.Name == "":
		return ErrEmptyName
	case n.BlobHash == ids.Empty:
		return ErrEmptyBlobHash
	}
	if err := n.Owner.Verify(); err != nil {
		return fmt.Errorf("token owner: %w", err)
	}
	if err := n.Minter.Verify(); err != nil {
		return fmt.Errorf("token minter: %w", err)
	}
	return n.Status.Verify()
}

var (
	errNilNFT       = errors.New("nil token record")
	errEmptyTokenID = errors.New("empty token id")
)
