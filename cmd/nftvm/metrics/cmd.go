// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metrics fetches and prints the metrics of a running node.
package metrics

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	apimetrics "github.com/luxfi/nftvm/api/metrics"
)

const URIKey = "uri"

func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Prints the metrics of a running node",
		RunE:  metricsFunc,
	}
	cmd.Flags().String(URIKey, "http://127.0.0.1:9750", "URI of the node to query")
	return cmd
}

func metricsFunc(cmd *cobra.Command, _ []string) error {
	uri, err := cmd.Flags().GetString(URIKey)
	if err != nil {
		return err
	}

	client := apimetrics.NewClient(uri)
	families, err := client.GetMetrics(cmd.Context())
	if err != nil {
		return err
	}

	names := make([]string, 0, len(families))
	for name := range families {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Printf("%s: %d samples\n", name, len(families[name].Metric))
	}
	return nil
}
