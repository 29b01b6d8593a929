// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/luxfi/nftvm/cmd/nftvm/metrics"
	"github.com/luxfi/nftvm/cmd/nftvm/run"
	"github.com/luxfi/nftvm/cmd/nftvm/version"
)

func main() {
	cmd := &cobra.Command{
		Use:   "nftvm",
		Short: "Runs a local network of token ledger chains",
	}
	cmd.AddCommand(
		metrics.Command(),
		run.Command(),
		version.Command(),
	)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
