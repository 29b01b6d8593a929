// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"testing"

	"github.com/luxfi/metric"
	"github.com/stretchr/testify/require"
)

func TestPrefixGathererGather(t *testing.T) {
	require := require.New(t)

	gatherer := NewPrefixGatherer()

	tgA := &testGatherer{
		mfs: []*metric.MetricFamily{counterFamily("counter")},
	}
	require.NoError(gatherer.Register("a", tgA))

	tgB := &testGatherer{
		mfs: []*metric.MetricFamily{counterFamily("counter")},
	}
	require.NoError(gatherer.Register("b", tgB))

	mfs, err := gatherer.Gather()
	require.NoError(err)
	require.Len(mfs, 2)
	require.Equal("a_counter", mfs[0].GetName())
	require.Equal("b_counter", mfs[1].GetName())
}

func TestPrefixGathererEmptyName(t *testing.T) {
	require := require.New(t)

	gatherer := NewPrefixGatherer()

	tg := &testGatherer{
		mfs: []*metric.MetricFamily{counterFamily("")},
	}
	require.NoError(gatherer.Register("hello", tg))

	mfs, err := gatherer.Gather()
	require.NoError(err)
	require.Len(mfs, 1)
	require.Equal("hello", mfs[0].GetName())
}

func TestPrefixGathererRegister(t *testing.T) {
	tests := []struct {
		name        string
		prefixes    []string
		prefix      string
		expectedErr error
	}{
		{
			name:        "first registration",
			prefixes:    nil,
			prefix:      "first",
			expectedErr: nil,
		},
		{
			name:        "second registration",
			prefixes:    []string{"first"},
			prefix:      "second",
			expectedErr: nil,
		},
		{
			name:        "conflicts with previous registration",
			prefixes:    []string{"first"},
			prefix:      "first",
			expectedErr: errOverlappingNamespaces,
		},
		{
			name:        "conflicts across a namespace boundary",
			prefixes:    []string{"first"},
			prefix:      "first_second",
			expectedErr: errOverlappingNamespaces,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			gatherer := NewPrefixGatherer()
			for _, prefix := range test.prefixes {
				require.NoError(gatherer.Register(prefix, &testGatherer{}))
			}

			err := gatherer.Register(test.prefix, &testGatherer{})
			require.ErrorIs(err, test.expectedErr)
		})
	}
}

func TestEitherIsPrefix(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected bool
	}{
		{
			name:     "empty strings",
			a:        "",
			b:        "",
			expected: true,
		},
		{
			name:     "an empty string",
			a:        "",
			b:        "hello",
			expected: true,
		},
		{
			name:     "same strings",
			a:        "x",
			b:        "x",
			expected: true,
		},
		{
			name:     "different strings",
			a:        "x",
			b:        "y",
			expected: false,
		},
		{
			name:     "splits namespace",
			a:        "hello",
			b:        "hello_world",
			expected: true,
		},
		{
			name:     "is prefix before separator",
			a:        "hello",
			b:        "helloworld",
			expected: false,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			require.Equal(test.expected, eitherIsPrefix(test.a, test.b))
			require.Equal(test.expected, eitherIsPrefix(test.b, test.a))
		})
	}
}
