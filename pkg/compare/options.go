// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package compare

import (
	"github.com/go-logr/logr"
	"github.com/wrgl/sheetmerge/pkg/pbar"
)

type Option func(c *Comparer)

// WithMaxRows rejects tables with more than n rows on either side. Zero means
// no limit.
func WithMaxRows(n int) Option {
	return func(c *Comparer) {
		c.maxRows = n
	}
}

// WithTableFilter only compares tables whose name matches one of the glob
// patterns.
func WithTableFilter(patterns ...string) Option {
	return func(c *Comparer) {
		c.patterns = append(c.patterns, patterns...)
	}
}

// WithWorkers caps the number of tables compared at the same time.
func WithWorkers(n int) Option {
	return func(c *Comparer) {
		c.workers = n
	}
}

func WithLogger(logger logr.Logger) Option {
	return func(c *Comparer) {
		c.logger = logger
	}
}

// WithProgressBar reports one increment per compared table.
func WithProgressBar(bar pbar.Bar) Option {
	return func(c *Comparer) {
		c.bar = bar
	}
}
