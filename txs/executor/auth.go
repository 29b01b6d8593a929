// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	"errors"
	"fmt"

	"github.com/luxfi/ids"

	"github.com/luxfi/nftvm/nft"
)

// ErrUnauthorized marks an operation whose claimed owner does not match
// the invoking identity. Nothing is mutated after this error.
var ErrUnauthorized = errors.New("unauthorized")

// Authenticator carries the identity facts of the current execution
// unit as supplied by the scheduler: the signing user of an operation,
// the calling application of an inter-application call, or the forwarded
// facts of an authenticated message.
type Authenticator struct {
	Signer    ids.ShortID
	HasSigner bool
	Caller    ids.ID
	HasCaller bool
}

// SignedBy returns an Authenticator for an operation signed by addr.
func SignedBy(addr ids.ShortID) Authenticator {
	return Authenticator{
		Signer:    addr,
		HasSigner: true,
	}
}

// CalledBy returns an Authenticator for a call made by another
// application.
func CalledBy(appID ids.ID) Authenticator {
	return Authenticator{
		Caller:    appID,
		HasCaller: true,
	}
}

// Authorize succeeds iff the claimed owner matches the invoking identity
// under the owner's variant: a user owner must equal the authenticated
// signer, an application owner must equal the authenticated caller.
func (a Authenticator) Authorize(claimed nft.Owner) error {
	switch claimed.Kind {
	case nft.OwnerKindUser:
		if !a.HasSigner || a.Signer != claimed.User {
			return fmt.Errorf("%w: operation not signed by %s", ErrUnauthorized, claimed)
		}
		return nil
	case nft.OwnerKindApplication:
		if !a.HasCaller || a.Caller != claimed.App {
			return fmt.Errorf("%w: operation not called by %s", ErrUnauthorized, claimed)
		}
		return nil
	default:
		return claimed.Verify()
	}
}
