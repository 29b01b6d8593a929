// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config holds the runtime configuration of the token ledger VM.
package config

import (
	"encoding/json"
	"errors"

	"github.com/luxfi/ids"
)

var (
	DefaultConfig = Config{
		NFTCacheSize: 2048,
		APIEnabled:   true,
	}

	errNonPositiveCacheSize = errors.New("nftCacheSize must be positive")
)

type Config struct {
	// AppID distinguishes token ids minted by separate deployments of
	// this ledger. Empty falls back to the VM id.
	AppID ids.ID `json:"appID"`

	// SolverID names the exchange application asked to settle the swap
	// leg of a transfer. Empty disables swap requests.
	SolverID ids.ID `json:"solverID"`

	// NFTCacheSize bounds the number of token records cached in memory.
	NFTCacheSize int `json:"nftCacheSize"`

	// APIEnabled exposes the query and issue handlers over RPC.
	APIEnabled bool `json:"apiEnabled"`
}

func Parse(configBytes []byte) (Config, error) {
	if len(configBytes) == 0 {
		return DefaultConfig, nil
	}

	cfg := DefaultConfig
	if err := json.Unmarshal(configBytes, &cfg); err != nil {
		return cfg, err
	}
	if cfg.NFTCacheSize <= 0 {
		return cfg, errNonPositiveCacheSize
	}
	return cfg, nil
}
