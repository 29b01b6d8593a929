// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package run

import (
	"time"

	"github.com/spf13/pflag"
)

const (
	PortKey           = "port"
	NumChainsKey      = "num-chains"
	NetworkIDKey      = "network-id"
	DeliveryPeriodKey = "delivery-period"
	AllowedOriginsKey = "allowed-origins"
)

func AddFlags(flags *pflag.FlagSet) {
	flags.Uint16(PortKey, 9750, "Port to serve the HTTP API on")
	flags.Uint8(NumChainsKey, 2, "Number of chains to run")
	flags.Uint32(NetworkIDKey, 1, "ID of the network the chains report belonging to")
	flags.Duration(DeliveryPeriodKey, 100*time.Millisecond, "How often queued cross-chain messages are delivered")
	flags.StringSlice(AllowedOriginsKey, []string{"*"}, "Origins allowed to access the HTTP API")
}

type Config struct {
	Port           uint16
	NumChains      uint8
	NetworkID      uint32
	DeliveryPeriod time.Duration
	AllowedOrigins []string
}

func ParseFlags(flags *pflag.FlagSet, args []string) (*Config, error) {
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	port, err := flags.GetUint16(PortKey)
	if err != nil {
		return nil, err
	}

	numChains, err := flags.GetUint8(NumChainsKey)
	if err != nil {
		return nil, err
	}

	networkID, err := flags.GetUint32(NetworkIDKey)
	if err != nil {
		return nil, err
	}

	deliveryPeriod, err := flags.GetDuration(DeliveryPeriodKey)
	if err != nil {
		return nil, err
	}

	allowedOrigins, err := flags.GetStringSlice(AllowedOriginsKey)
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:           port,
		NumChains:      numChains,
		NetworkID:      networkID,
		DeliveryPeriod: deliveryPeriod,
		AllowedOrigins: allowedOrigins,
	}, nil
}
