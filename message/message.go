// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package message defines the chain-to-chain wire payloads of the token
// ledger and the outbound queue that collects them during execution.
package message

import "errors"

var errUnexpectedCodecVersion = errors.New("unexpected codec version")

// Message is a payload delivered from one chain's ledger to another's.
type Message interface {
	// Note that when [initialize] is called, [bytes] will be set.
	initialize(bytes []byte)

	// Bytes returns the binary representation of this message.
	Bytes() []byte
}

type message []byte

func (m *message) initialize(bytes []byte) {
	*m = bytes
}

func (m *message) Bytes() []byte {
	return *m
}

// Parse attempts to convert bytes into a message.
func Parse(bytes []byte) (Message, error) {
	var msg Message
	version, err := c.Unmarshal(bytes, &msg)
	if err != nil {
		return nil, err
	}
	if version != codecVersion {
		return nil, errUnexpectedCodecVersion
	}
	msg.initialize(bytes)
	return msg, nil
}

// Build attempts to convert a message into bytes.
func Build(msg Message) ([]byte, error) {
	bytes, err := c.Marshal(codecVersion, &msg)
	if err != nil {
		return nil, err
	}
	msg.initialize(bytes)
	return bytes, nil
}
