// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metrics merges the metrics of independently registered
// components into gatherers that can be served as one corpus.
package metrics

import (
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/luxfi/metric"
)

// MultiGatherer extends the Gatherer interface by allowing additional
// gatherers to be registered.
type MultiGatherer interface {
	metric.Gatherer

	// Register adds the outputs of [gatherer] to the results of future calls
	// to Gather under the provided [name].
	Register(name string, gatherer metric.Gatherer) error

	// Deregister removes the outputs of the gatherer with [name] from the
	// results of future calls to Gather. Returns true if a gatherer with
	// [name] was found.
	Deregister(name string) bool
}

// multiGatherer concatenates the families of its gatherers without
// altering their names. Registered gatherers must not emit overlapping
// metric families; NewPrefixGatherer and NewLabelGatherer build on this
// base to make overlapping registrations safe.
type multiGatherer struct {
	lock      sync.RWMutex
	names     []string
	gatherers []metric.Gatherer
}

func (g *multiGatherer) Gather() ([]*metric.MetricFamily, error) {
	g.lock.RLock()
	defer g.lock.RUnlock()

	var allFamilies []*metric.MetricFamily
	for _, gatherer := range g.gatherers {
		families, err := gatherer.Gather()
		if err != nil {
			return allFamilies, err
		}
		allFamilies = append(allFamilies, families...)
	}

	sort.Slice(allFamilies, func(i, j int) bool {
		return allFamilies[i].GetName() < allFamilies[j].GetName()
	})

	return allFamilies, nil
}

func (g *multiGatherer) Register(name string, gatherer metric.Gatherer) error {
	g.lock.Lock()
	defer g.lock.Unlock()

	if slices.Contains(g.names, name) {
		return fmt.Errorf("gatherer with name %q already registered", name)
	}

	g.register(name, gatherer)
	return nil
}

// register appends without locking. Callers hold the write lock.
func (g *multiGatherer) register(name string, gatherer metric.Gatherer) {
	g.names = append(g.names, name)
	g.gatherers = append(g.gatherers, gatherer)
}

func (g *multiGatherer) Deregister(name string) bool {
	g.lock.Lock()
	defer g.lock.Unlock()

	index := slices.Index(g.names, name)
	if index == -1 {
		return false
	}

	g.names = append(g.names[:index], g.names[index+1:]...)
	g.gatherers = append(g.gatherers[:index], g.gatherers[index+1:]...)
	return true
}

// MakeAndRegister creates a fresh registry and registers it on
// [gatherer] under [name].
func MakeAndRegister(gatherer MultiGatherer, name string) (metric.Registry, error) {
	reg := metric.NewRegistry()
	if err := gatherer.Register(name, reg); err != nil {
		return nil, fmt.Errorf("couldn't register %q metrics: %w", name, err)
	}
	return reg, nil
}
