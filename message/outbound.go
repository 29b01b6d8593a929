// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package message

import (
	"github.com/luxfi/ids"
)

// Outbound pairs a built message with its delivery requirements.
type Outbound struct {
	// Destination names the chain whose inbound handler receives the
	// message.
	Destination ids.ID
	// Tracked requests a bounce back to the sender if the destination
	// fails to apply the message.
	Tracked bool
	// Authenticated forwards the sender's authentication facts in the
	// delivery envelope so the destination can trust the embedded
	// accounts.
	Authenticated bool

	// Signer and Caller carry the issuing unit's authority when
	// Authenticated is set. The transport copies them into the delivery
	// envelope unchanged.
	Signer    ids.ShortID
	HasSigner bool
	Caller    ids.ID
	HasCaller bool

	Message Message
}

// Sender accepts the messages a committed unit queued. Enqueueing never
// fails; a delivery failure surfaces later as a bounce of the tracked
// message, not as an error here.
type Sender interface {
	Send(outbound *Outbound)
}

// Outbox collects the messages produced while executing one operation or
// one inbound message. The transport must only pick them up if the
// execution unit commits.
type Outbox struct {
	pending []*Outbound
}

// Push appends a message to the outbox.
func (o *Outbox) Push(msg *Outbound) {
	o.pending = append(o.pending, msg)
}

// Drain returns the collected messages in push order and empties the
// outbox.
func (o *Outbox) Drain() []*Outbound {
	pending := o.pending
	o.pending = nil
	return pending
}

// Len returns the number of collected messages.
func (o *Outbox) Len() int {
	return len(o.pending)
}

// Inbound is a delivered message together with the scheduler facts
// describing the delivery.
type Inbound struct {
	// SourceChain is the chain that sent the message.
	SourceChain ids.ID
	// Bouncing is true when the message is one of this chain's own
	// tracked messages returning after the destination failed to apply
	// it.
	Bouncing bool

	// Signer and Caller are the forwarded authentication facts of a
	// message sent with Authenticated set. The Has flags distinguish
	// absent facts from zero values.
	Signer    ids.ShortID
	HasSigner bool
	Caller    ids.ID
	HasCaller bool

	Message Message
}
