// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package nftvm implements a non-fungible token ledger that runs as one
// chain of a multi-chain network. Tokens are minted against content
// blobs, traded locally, and moved between chains with asynchronous
// messages that bounce back, rather than vanish, when delivery fails.
package nftvm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/rpc/v2"
	"github.com/luxfi/log"
	"github.com/luxfi/metric"

	consensusctx "github.com/luxfi/consensus/context"
	core "github.com/luxfi/consensus/core"
	"github.com/luxfi/database"
	"github.com/luxfi/database/prefixdb"
	"github.com/luxfi/ids"
	"github.com/luxfi/version"
	"github.com/luxfi/warp"

	"github.com/luxfi/nftvm/blob"
	"github.com/luxfi/nftvm/config"
	"github.com/luxfi/nftvm/genesis"
	"github.com/luxfi/nftvm/message"
	"github.com/luxfi/nftvm/metrics"
	"github.com/luxfi/nftvm/solver"
	"github.com/luxfi/nftvm/state"
	"github.com/luxfi/nftvm/txs"
	"github.com/luxfi/nftvm/utils/json"

	txexecutor "github.com/luxfi/nftvm/txs/executor"
)

var (
	Version = &version.Semantic{
		Major: 1,
		Minor: 0,
		Patch: 0,
	}

	blobDBPrefix = []byte("blob")

	errInvalidLogType = errors.New("invalid logger type")
	errNoTransport    = errors.New("cross-chain messaging is not configured")
)

// VM is the token ledger of a single chain. Operations execute as
// atomic units: either every state write and queued message of a unit
// takes effect, or none do.
type VM struct {
	Config config.Config

	chainContext *consensusctx.Context
	db           database.Database
	log          log.Logger

	state   state.State
	blobs   blob.Store
	backend *txexecutor.Backend
	metrics metrics.Metrics

	// sender carries committed units' messages toward other chains. A
	// chain with no sender refuses units that queue messages.
	sender message.Sender

	// lock serializes units against each other and against API reads.
	lock sync.Mutex
}

func (vm *VM) Initialize(
	_ context.Context,
	chainContext *consensusctx.Context,
	db database.Database,
	genesisBytes []byte,
	_ []byte,
	configBytes []byte,
	_ []*core.Fx,
	_ warp.Sender,
) error {
	logger, ok := chainContext.Log.(log.Logger)
	if !ok {
		return errInvalidLogType
	}
	logger.Info("initializing token ledger",
		log.Stringer("version", Version),
		log.Stringer("chainID", chainContext.ChainID),
	)

	if len(configBytes) > 0 {
		cfg, err := config.Parse(configBytes)
		if err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}
		vm.Config = cfg
	} else if vm.Config == (config.Config{}) {
		vm.Config = config.DefaultConfig
	}

	registry := metric.NewRegistry()
	if chainMetrics, ok := chainContext.Metrics.(interface {
		Register(string, interface{}) error
	}); ok {
		if err := chainMetrics.Register("nftvm", registry); err != nil {
			return err
		}
	}

	var err error
	vm.metrics, err = metrics.New(registry)
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}

	vm.state, err = state.New(db, vm.Config.NFTCacheSize, registry)
	if err != nil {
		return fmt.Errorf("failed to initialize state: %w", err)
	}

	vm.chainContext = chainContext
	vm.db = db
	vm.log = logger
	vm.blobs = blob.NewStore(prefixdb.New(blobDBPrefix, db))

	appID := vm.Config.AppID
	if appID == ids.Empty {
		appID = VMID
	}
	var vmSolver solver.Solver = solver.NoopSolver{Log: logger}
	if vm.Config.SolverID != ids.Empty {
		vmSolver = solver.LoggingSolver{
			SolverID: vm.Config.SolverID,
			Log:      logger,
		}
	}
	vm.backend = &txexecutor.Backend{
		Ctx:    chainContext,
		AppID:  appID,
		Config: &vm.Config,
		Blobs:  vm.blobs,
		Solver: vmSolver,
		Log:    logger,
	}

	if err := vm.initGenesis(genesisBytes); err != nil {
		return fmt.Errorf("failed to initialize genesis state: %w", err)
	}

	numMinted, err := vm.state.GetNumMinted()
	if err != nil {
		return err
	}
	logger.Info("initialized token ledger",
		log.Uint64("numMinted", numMinted),
	)
	return nil
}

// initGenesis seeds the ledger exactly once. Later restarts see the
// initialized marker and leave the stored tokens untouched.
func (vm *VM) initGenesis(genesisBytes []byte) error {
	initialized, err := vm.state.IsInitialized()
	if err != nil {
		return err
	}
	if initialized {
		return nil
	}

	if len(genesisBytes) > 0 {
		g, err := genesis.Parse(genesisBytes)
		if err != nil {
			vm.state.Abort()
			return err
		}
		for _, payload := range g.Blobs {
			if _, err := vm.blobs.Put(payload); err != nil {
				vm.state.Abort()
				return err
			}
		}
		for _, record := range g.NFTs {
			if err := vm.state.PutNFT(record); err != nil {
				vm.state.Abort()
				return err
			}
		}
		if err := vm.state.SetNumMinted(g.NumMinted); err != nil {
			vm.state.Abort()
			return err
		}
	}

	if err := vm.state.SetInitialized(); err != nil {
		vm.state.Abort()
		return err
	}
	if err := vm.state.Commit(); err != nil {
		vm.state.Abort()
		return err
	}
	return nil
}

// SetSender connects the chain to a cross-chain transport. Until a
// sender is set, units that queue messages fail without committing.
func (vm *VM) SetSender(sender message.Sender) {
	vm.lock.Lock()
	defer vm.lock.Unlock()
	vm.sender = sender
}

// ExecuteTx runs one signed operation as an atomic unit: either every
// state write lands and every queued message reaches the transport, or
// the ledger is untouched.
func (vm *VM) ExecuteTx(signer ids.ShortID, tx txs.UnsignedTx) error {
	_, err := vm.issueTx(txexecutor.SignedBy(signer), tx)
	return err
}

func (vm *VM) issueTx(auth txexecutor.Authenticator, tx txs.UnsignedTx) (*txexecutor.Executor, error) {
	if err := tx.SyntacticVerify(vm.chainContext); err != nil {
		return nil, err
	}

	vm.lock.Lock()
	defer vm.lock.Unlock()

	outbox := &message.Outbox{}
	executor := &txexecutor.Executor{
		Backend: vm.backend,
		State:   vm.state,
		Auth:    auth,
		Outbox:  outbox,
	}
	if err := tx.Visit(executor); err != nil {
		vm.state.Abort()
		return nil, err
	}
	if outbox.Len() > 0 && vm.sender == nil {
		vm.state.Abort()
		return nil, errNoTransport
	}
	if err := vm.state.Commit(); err != nil {
		vm.state.Abort()
		return nil, err
	}

	if err := vm.metrics.MarkTxAccepted(tx); err != nil {
		return nil, err
	}
	vm.send(outbox)
	return executor, nil
}

// ReceiveMessage applies one inbound cross-chain message as an atomic
// unit. A returned error means the unit left no trace here; a tracked
// message that fails this way is owed a bounce by the transport.
func (vm *VM) ReceiveMessage(inbound *message.Inbound) error {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	outbox := &message.Outbox{}
	handler := &txexecutor.MessageHandler{
		Backend: vm.backend,
		State:   vm.state,
		Inbound: inbound,
		Outbox:  outbox,
	}
	if err := handler.Handle(); err != nil {
		vm.state.Abort()
		return err
	}
	if outbox.Len() > 0 && vm.sender == nil {
		vm.state.Abort()
		return errNoTransport
	}
	if err := vm.state.Commit(); err != nil {
		vm.state.Abort()
		return err
	}

	vm.metrics.IncMessageReceived()
	if inbound.Bouncing {
		vm.metrics.IncMessageBounced()
	}
	vm.send(outbox)
	return nil
}

func (vm *VM) send(outbox *message.Outbox) {
	for _, outbound := range outbox.Drain() {
		vm.metrics.IncMessageSent()
		vm.sender.Send(outbound)
	}
}

func (vm *VM) SetState(context.Context, uint32) error {
	return nil
}

func (vm *VM) Shutdown(context.Context) error {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	if vm.state == nil {
		return nil
	}
	vm.log.Info("shutting down token ledger")

	return errors.Join(
		vm.state.Close(),
		vm.db.Close(),
	)
}

func (*VM) Version(context.Context) (string, error) {
	return Version.String(), nil
}

// Health reports the ledger figures surfaced by the node health API.
type Health struct {
	NumMinted uint64 `json:"numMinted"`
}

func (vm *VM) HealthCheck(context.Context) (interface{}, error) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	numMinted, err := vm.state.GetNumMinted()
	if err != nil {
		return nil, err
	}
	return &Health{NumMinted: numMinted}, nil
}

func (vm *VM) CreateHandlers(context.Context) (map[string]http.Handler, error) {
	if !vm.Config.APIEnabled {
		return nil, nil
	}

	server := rpc.NewServer()
	server.RegisterCodec(json.NewCodec(), "application/json")
	server.RegisterCodec(json.NewCodec(), "application/json;charset=UTF-8")
	server.RegisterInterceptFunc(vm.metrics.InterceptRequest)
	server.RegisterAfterFunc(vm.metrics.AfterRequest)
	// name this service "nft"
	if err := server.RegisterService(NewService(vm), "nft"); err != nil {
		return nil, err
	}
	return map[string]http.Handler{
		"": server,
	}, nil
}

func (vm *VM) Connected(context.Context, ids.NodeID, interface{}) error {
	return nil
}

func (vm *VM) Disconnected(context.Context, ids.NodeID) error {
	return nil
}

func (vm *VM) AppRequest(context.Context, ids.NodeID, uint32, time.Time, []byte) error {
	return nil
}

func (vm *VM) AppResponse(context.Context, ids.NodeID, uint32, []byte) error {
	return nil
}

func (vm *VM) AppRequestFailed(context.Context, ids.NodeID, uint32, *warp.Error) error {
	return nil
}

func (vm *VM) AppGossip(context.Context, ids.NodeID, []byte) error {
	return nil
}

func (vm *VM) CrossChainAppRequest(context.Context, ids.ID, uint32, time.Time, []byte) error {
	return nil
}

func (vm *VM) CrossChainAppResponse(context.Context, ids.ID, uint32, []byte) error {
	return nil
}

func (vm *VM) CrossChainAppRequestFailed(context.Context, ids.ID, uint32, *warp.Error) error {
	return nil
}
