// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/ids"
)

func TestParseEmpty(t *testing.T) {
	require := require.New(t)

	cfg, err := Parse(nil)
	require.NoError(err)
	require.Equal(DefaultConfig, cfg)
}

func TestParseOverrides(t *testing.T) {
	require := require.New(t)

	solverID := ids.GenerateTestID()
	cfg, err := Parse([]byte(`{"solverID":"` + solverID.String() + `","nftCacheSize":16}`))
	require.NoError(err)
	require.Equal(solverID, cfg.SolverID)
	require.Equal(16, cfg.NFTCacheSize)
	// Unset fields keep their defaults.
	require.Equal(DefaultConfig.APIEnabled, cfg.APIEnabled)
}

func TestParseInvalid(t *testing.T) {
	require := require.New(t)

	_, err := Parse([]byte(`{`))
	require.Error(err)

	_, err = Parse([]byte(`{"nftCacheSize":0}`))
	require.ErrorIs(err, errNonPositiveCacheSize)
}
