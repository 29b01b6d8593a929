// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/luxfi/metric"
	"google.golang.org/protobuf/proto"

	dto "github.com/prometheus/client_model/go"
)

var (
	_ MultiGatherer = (*labelGatherer)(nil)

	errDuplicateLabelValue = errors.New("duplicate label value")
	errReservedLabel       = errors.New("metric already uses the reserved label")
)

// NewLabelGatherer returns a new MultiGatherer that merges metrics by
// tagging them with a label. Registered gatherers may emit the same
// metric families; the label value registered with each gatherer keeps
// their samples apart.
func NewLabelGatherer(labelName string) MultiGatherer {
	return &labelGatherer{
		labelName: labelName,
	}
}

type labelGatherer struct {
	multiGatherer

	labelName string
}

func (g *labelGatherer) Register(labelValue string, gatherer metric.Gatherer) error {
	g.lock.Lock()
	defer g.lock.Unlock()

	if slices.Contains(g.names, labelValue) {
		return fmt.Errorf("%w: %s=%q",
			errDuplicateLabelValue,
			g.labelName,
			labelValue,
		)
	}

	g.register(
		labelValue,
		&labeledGatherer{
			label: &dto.LabelPair{
				Name:  proto.String(g.labelName),
				Value: proto.String(labelValue),
			},
			gatherer: gatherer,
		},
	)
	return nil
}

// Gather merges equally named families from the registered gatherers
// into one family, so the served corpus never repeats a family name.
func (g *labelGatherer) Gather() ([]*metric.MetricFamily, error) {
	g.lock.RLock()
	defer g.lock.RUnlock()

	merged := make(map[string]*metric.MetricFamily)
	var names []string
	for _, gatherer := range g.gatherers {
		families, err := gatherer.Gather()
		if err != nil {
			return nil, err
		}
		for _, family := range families {
			name := family.GetName()
			existing, ok := merged[name]
			if !ok {
				merged[name] = family
				names = append(names, name)
				continue
			}
			existing.Metric = append(existing.Metric, family.Metric...)
		}
	}

	slices.Sort(names)
	result := make([]*metric.MetricFamily, len(names))
	for i, name := range names {
		result[i] = merged[name]
	}
	return result, nil
}

type labeledGatherer struct {
	label    *dto.LabelPair
	gatherer metric.Gatherer
}

func (g *labeledGatherer) Gather() ([]*metric.MetricFamily, error) {
	families, err := g.gatherer.Gather()
	if err != nil {
		return nil, err
	}

	for _, family := range families {
		for _, m := range family.Metric {
			for _, pair := range m.Label {
				if pair.GetName() == g.label.GetName() {
					return nil, fmt.Errorf("%w %q: %s",
						errReservedLabel,
						g.label.GetName(),
						family.GetName(),
					)
				}
			}
			m.Label = append(m.Label, g.label)
			slices.SortFunc(m.Label, func(a, b *dto.LabelPair) int {
				return strings.Compare(a.GetName(), b.GetName())
			})
		}
	}
	return families, nil
}
