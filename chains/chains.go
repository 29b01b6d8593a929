// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package chains runs a set of token ledger chains in one process and
// carries the messages they exchange.
package chains

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/luxfi/database"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	consensusctx "github.com/luxfi/consensus/context"

	"github.com/luxfi/nftvm"
	"github.com/luxfi/nftvm/config"
	"github.com/luxfi/nftvm/message"
)

var (
	errEmptyChainID     = errors.New("chain id is empty")
	errChainExists      = errors.New("chain already exists")
	errUnknownChain     = errors.New("unknown chain")
	errUnexpectedVMType = errors.New("factory built an unexpected vm type")

	_ message.Sender = (*Chain)(nil)
)

// ChainParameters defines the chain being created.
type ChainParameters struct {
	// The ID of the chain being created.
	ID ids.ID
	// The genesis state of this chain's ledger.
	GenesisData []byte
	// Config customizes the chain's VM.
	Config config.Config
	// DB the chain persists to. An in-memory database is used when nil.
	DB database.Database
	// Metrics receives the chain's metric registries. Optional.
	Metrics interface{}
}

// Chain is one token ledger attached to a Network.
type Chain struct {
	ID ids.ID
	VM *nftvm.VM

	network *Network
}

// Send queues outbound for delivery to its destination chain. Delivery
// happens when the network is drained, never inline, so the sending
// unit commits before the destination runs.
func (c *Chain) Send(outbound *message.Outbound) {
	c.network.enqueue(&envelope{
		source:      c.ID,
		destination: outbound.Destination,
		outbound:    outbound,
	})
}

// envelope is a queued message together with its routing facts.
type envelope struct {
	source      ids.ID
	destination ids.ID
	bouncing    bool
	outbound    *message.Outbound
}

// Network manages the chains running in this process. Chains exchange
// messages through a shared FIFO queue, so two messages between the
// same pair of chains are always handled in the order they were sent.
type Network struct {
	log       log.Logger
	networkID uint32

	lock   sync.Mutex
	chains map[ids.ID]*Chain
	queue  []*envelope
}

// NewNetwork returns a network with no chains.
func NewNetwork(log log.Logger, networkID uint32) *Network {
	return &Network{
		log:       log,
		networkID: networkID,
		chains:    make(map[ids.ID]*Chain),
	}
}

// CreateChain builds the chain described by params, initializes its VM,
// and attaches it to the network.
func (n *Network) CreateChain(params ChainParameters) (*Chain, error) {
	if params.ID == ids.Empty {
		return nil, errEmptyChainID
	}

	n.lock.Lock()
	defer n.lock.Unlock()

	if _, ok := n.chains[params.ID]; ok {
		return nil, fmt.Errorf("%w: %s", errChainExists, params.ID)
	}

	n.log.Info("creating chain",
		log.Stringer("chainID", params.ID),
	)

	db := params.DB
	if db == nil {
		db = memdb.New()
	}

	factory := nftvm.Factory{Config: params.Config}
	vmIntf, err := factory.New(n.log)
	if err != nil {
		return nil, err
	}
	vm, ok := vmIntf.(*nftvm.VM)
	if !ok {
		return nil, fmt.Errorf("%w: %T", errUnexpectedVMType, vmIntf)
	}

	chainCtx := &consensusctx.Context{
		NetworkID: n.networkID,
		ChainID:   params.ID,
		Log:       n.log,
		Metrics:   params.Metrics,
	}
	if err := vm.Initialize(
		context.Background(),
		chainCtx,
		db,
		params.GenesisData,
		nil,
		nil,
		nil,
		nil,
	); err != nil {
		return nil, fmt.Errorf("initializing chain %s: %w", params.ID, err)
	}

	chain := &Chain{
		ID:      params.ID,
		VM:      vm,
		network: n,
	}
	vm.SetSender(chain)

	n.chains[params.ID] = chain
	return chain, nil
}

// GetChain returns the chain running under chainID.
func (n *Network) GetChain(chainID ids.ID) (*Chain, bool) {
	n.lock.Lock()
	defer n.lock.Unlock()

	chain, ok := n.chains[chainID]
	return chain, ok
}

// PendingMessages returns how many messages are waiting for delivery.
func (n *Network) PendingMessages() int {
	n.lock.Lock()
	defer n.lock.Unlock()

	return len(n.queue)
}

func (n *Network) enqueue(env *envelope) {
	n.lock.Lock()
	defer n.lock.Unlock()

	n.queue = append(n.queue, env)
}

// DeliverNext pops the oldest queued message and hands it to its
// destination chain, reporting whether a message was handled. A tracked
// message whose delivery fails is queued again toward its sender as a
// bounce; any other failure drops the message.
func (n *Network) DeliverNext() bool {
	n.lock.Lock()
	if len(n.queue) == 0 {
		n.lock.Unlock()
		return false
	}
	env := n.queue[0]
	n.queue = n.queue[1:]
	destination := n.chains[env.destination]
	n.lock.Unlock()

	err := errUnknownChain
	if destination != nil {
		inbound := &message.Inbound{
			SourceChain: env.source,
			Bouncing:    env.bouncing,
			Message:     env.outbound.Message,
		}
		if env.outbound.Authenticated {
			inbound.Signer = env.outbound.Signer
			inbound.HasSigner = env.outbound.HasSigner
			inbound.Caller = env.outbound.Caller
			inbound.HasCaller = env.outbound.HasCaller
		}
		err = destination.VM.ReceiveMessage(inbound)
	}

	switch {
	case err == nil:
	case env.bouncing:
		// The sender rejected its own returned message. There is no
		// further compensation to run.
		n.log.Warn("dropping failed bounce",
			log.Stringer("sourceChain", env.source),
			log.Stringer("destinationChain", env.destination),
			log.Err(err),
		)
	case env.outbound.Tracked:
		n.log.Debug("bouncing rejected message",
			log.Stringer("sourceChain", env.source),
			log.Stringer("destinationChain", env.destination),
			log.Err(err),
		)
		n.enqueue(&envelope{
			source:      env.destination,
			destination: env.source,
			bouncing:    true,
			outbound:    env.outbound,
		})
	default:
		n.log.Warn("dropping rejected message",
			log.Stringer("sourceChain", env.source),
			log.Stringer("destinationChain", env.destination),
			log.Err(err),
		)
	}
	return true
}

// Drain delivers queued messages, including the ones those deliveries
// queue in turn, until the network is quiet. It returns the number of
// messages handled.
func (n *Network) Drain() int {
	handled := 0
	for n.DeliverNext() {
		handled++
	}
	return handled
}

// Shutdown stops every chain on the network.
func (n *Network) Shutdown(ctx context.Context) error {
	n.lock.Lock()
	defer n.lock.Unlock()

	var errs []error
	for _, chain := range n.chains {
		errs = append(errs, chain.VM.Shutdown(ctx))
	}
	return errors.Join(errs...)
}
