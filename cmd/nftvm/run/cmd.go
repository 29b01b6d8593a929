// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package run boots a local network of token ledger chains and serves
// their APIs over HTTP.
package run

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/luxfi/crypto/hash"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/luxfi/metric"

	"github.com/luxfi/nftvm/chains"

	apimetrics "github.com/luxfi/nftvm/api/metrics"
)

const shutdownTimeout = 5 * time.Second

var errNotGatherer = errors.New("registered metrics are not a gatherer")

func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Runs a local network of token ledger chains",
		RunE:  runFunc,
	}
	AddFlags(cmd.Flags())
	return cmd
}

// chainMetrics adapts a chain's slice of the node gatherer to the
// registration surface its VM expects.
type chainMetrics struct {
	gatherer apimetrics.MultiGatherer
}

func (m *chainMetrics) Register(name string, reg interface{}) error {
	gatherer, ok := reg.(metric.Gatherer)
	if !ok {
		return fmt.Errorf("%w: %T", errNotGatherer, reg)
	}
	return m.gatherer.Register(name, gatherer)
}

func runFunc(cmd *cobra.Command, args []string) error {
	config, err := ParseFlags(cmd.Flags(), args)
	if err != nil {
		return err
	}

	logger := log.NewLogger("nftvm")
	// Every chain's metrics land in one corpus, told apart by a chain
	// label rather than a per-chain name prefix.
	gatherer := apimetrics.NewLabelGatherer("chain")
	network := chains.NewNetwork(logger, config.NetworkID)
	router := mux.NewRouter()

	for i := uint8(0); i < config.NumChains; i++ {
		chainID := ids.ID(hash.ComputeHash256Array([]byte(fmt.Sprintf("nftvm chain %d", i))))

		chainGatherer := apimetrics.NewPrefixGatherer()
		if err := gatherer.Register(chainID.String(), chainGatherer); err != nil {
			return err
		}
		chain, err := network.CreateChain(chains.ChainParameters{
			ID: chainID,
			Metrics: &chainMetrics{
				gatherer: chainGatherer,
			},
		})
		if err != nil {
			return err
		}

		handlers, err := chain.VM.CreateHandlers(context.Background())
		if err != nil {
			return err
		}
		for path, handler := range handlers {
			route := "/ext/bc/" + chainID.String() + path
			router.Handle(route, handler)
			logger.Info("serving chain API",
				log.Stringer("chainID", chainID),
				log.String("route", route),
			)
		}
	}
	router.Handle("/ext/metrics", apimetrics.NewHandler(gatherer))

	handler := cors.New(cors.Options{
		AllowedOrigins:   config.AllowedOrigins,
		AllowCredentials: true,
	}).Handler(router)
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Port),
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		logger.Info("serving HTTP API",
			log.String("address", server.Addr),
		)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		// The delivery pump stands in for the cross-chain transport:
		// committed messages sit queued until a tick hands them to
		// their destination chain.
		ticker := time.NewTicker(config.DeliveryPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				network.Drain()
			}
		}
	})
	eg.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return errors.Join(
			server.Shutdown(shutdownCtx),
			network.Shutdown(shutdownCtx),
		)
	})
	return eg.Wait()
}
