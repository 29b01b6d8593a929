// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package nft defines the core types of the non-fungible token ledger:
// owners, accounts, token records, and deterministic token id derivation.
package nft

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/luxfi/ids"
)

// OwnerKind tags the variant held by an Owner.
type OwnerKind byte

const (
	// OwnerKindUser is an owner controlled by a user key.
	OwnerKindUser OwnerKind = iota + 1
	// OwnerKindApplication is an owner controlled by another application
	// on the same chain network.
	OwnerKindApplication
)

var (
	ErrUnknownOwnerKind  = errors.New("unknown owner kind")
	ErrEmptyOwner        = errors.New("owner is empty")
	ErrWrongOwnerVariant = errors.New("owner variant does not match kind")

	errShortOwnerKey = errors.New("owner key too short")
)

func (k OwnerKind) String() string {
	switch k {
	case OwnerKindUser:
		return "user"
	case OwnerKindApplication:
		return "application"
	default:
		return fmt.Sprintf("unknown(%d)", byte(k))
	}
}

// Owner is a tagged union: exactly one of User or App is set, selected
// by Kind. Owners are value types and are safe to copy and compare.
type Owner struct {
	Kind OwnerKind   `serialize:"true" json:"kind"`
	User ids.ShortID `serialize:"true" json:"user"`
	App  ids.ID      `serialize:"true" json:"app"`
}

// NewUserOwner returns an Owner controlled by the given user address.
func NewUserOwner(addr ids.ShortID) Owner {
	return Owner{
		Kind: OwnerKindUser,
		User: addr,
	}
}

// NewApplicationOwner returns an Owner controlled by the given application.
func NewApplicationOwner(appID ids.ID) Owner {
	return Owner{
		Kind: OwnerKindApplication,
		App:  appID,
	}
}

func (o Owner) Verify() error {
	switch o.Kind {
	case OwnerKindUser:
		if o.User == ids.ShortEmpty {
			return ErrEmptyOwner
		}
		if o.App != ids.Empty {
			return ErrWrongOwnerVariant
		}
		return nil
	case OwnerKindApplication:
		if o.App == ids.Empty {
			return ErrEmptyOwner
		}
		if o.User != ids.ShortEmpty {
			return ErrWrongOwnerVariant
		}
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnknownOwnerKind, byte(o.Kind))
	}
}

// Bytes returns the canonical key form of the owner: the kind byte
// followed by the variant's address bytes. Keys of distinct owners never
// collide because the kind byte separates the variants and each variant
// has a fixed width.
func (o Owner) Bytes() []byte {
	switch o.Kind {
	case OwnerKindUser:
		key := make([]byte, 0, 1+len(o.User))
		key = append(key, byte(o.Kind))
		return append(key, o.User.Bytes()...)
	case OwnerKindApplication:
		key := make([]byte, 0, 1+len(o.App))
		key = append(key, byte(o.Kind))
		return append(key, o.App[:]...)
	default:
		return []byte{byte(o.Kind)}
	}
}

// ParseOwnerBytes inverts Owner.Bytes.
func ParseOwnerBytes(key []byte) (Owner, error) {
	if len(key) < 1 {
		return Owner{}, errShortOwnerKey
	}
	kind := OwnerKind(key[0])
	switch kind {
	case OwnerKindUser:
		addr, err := ids.ToShortID(key[1:])
		if err != nil {
			return Owner{}, err
		}
		return NewUserOwner(addr), nil
	case OwnerKindApplication:
		appID, err := ids.ToID(key[1:])
		if err != nil {
			return Owner{}, err
		}
		return NewApplicationOwner(appID), nil
	default:
		return Owner{}, fmt.Errorf("%w: %d", ErrUnknownOwnerKind, key[0])
	}
}

// Equals returns true if both owners reference the same entity.
func (o Owner) Equals(other Owner) bool {
	return o.Kind == other.Kind && o.User == other.User && o.App == other.App
}

// Compare returns -1, 0, or 1 based on the canonical key ordering.
func (o Owner) Compare(other Owner) int {
	return bytes.Compare(o.Bytes(), other.Bytes())
}

func (o Owner) String() string {
	switch o.Kind {
	case OwnerKindUser:
		return "user-" + o.User.String()
	case OwnerKindApplication:
		return "app-" + o.App.String()
	default:
		return o.Kind.String()
	}
}

type ownerJSON struct {
	Kind    string `json:"kind"`
	Address string `json:"address,omitempty"`
	AppID   string `json:"appID,omitempty"`
}

// MarshalJSON renders the owner with its variant in human readable form.
func (o Owner) MarshalJSON() ([]byte, error) {
	out := ownerJSON{Kind: o.Kind.String()}
	switch o.Kind {
	case OwnerKindUser:
		out.Address = o.User.String()
	case OwnerKindApplication:
		out.AppID = o.App.String()
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownOwnerKind, byte(o.Kind))
	}
	return json.Marshal(out)
}

func (o *Owner) UnmarshalJSON(b []byte) error {
	var in ownerJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	switch in.Kind {
	case "user":
		addr, err := ids.ShortFromString(in.Address)
		if err != nil {
			return fmt.Errorf("parsing owner address: %w", err)
		}
		*o = NewUserOwner(addr)
	case "application":
		appID, err := ids.FromString(in.AppID)
		if err != nil {
			return fmt.Errorf("parsing owner application id: %w", err)
		}
		*o = NewApplicationOwner(appID)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOwnerKind, in.Kind)
	}
	return nil
}
