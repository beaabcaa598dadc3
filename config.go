// Copyright (c) 2024 OpenBao a Series of LF Projects, LLC
// SPDX-License-Identifier: MPL-2.0

package bptree

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
)

const (
	// DefaultOrder is the default branching factor: the maximum number of
	// entries per leaf and children per internal node.
	DefaultOrder = 32

	// MinOrder is the smallest branching factor for which the split and
	// merge invariants hold.
	MinOrder = 3
)

type config struct {
	order  int
	logger hclog.Logger
}

func defaultConfig() config {
	return config{
		order:  DefaultOrder,
		logger: hclog.NewNullLogger(),
	}
}

// Option configures a Map at construction time.
type Option func(*config)

// WithOrder sets the branching factor. Order bounds node fan-out: every
// leaf holds at most order entries and every internal node at most order
// children. Construction panics if order is less than MinOrder.
func WithOrder(order int) Option {
	return func(c *config) {
		c.order = order
	}
}

// WithLogger sets the logger used for structural trace events (splits,
// borrows, merges, root changes). The default discards everything.
func WithLogger(logger hclog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func buildConfig(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.order < MinOrder {
		panic(fmt.Sprintf("bptree: order must be at least %d, got %d", MinOrder, cfg.order))
	}
	return cfg
}
