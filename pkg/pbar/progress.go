// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package pbar

import (
	"io"
	"sync"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// Container renders bars to out. A quiet container hands out no-op bars.
type Container struct {
	mu    sync.Mutex
	p     *mpb.Progress
	out   io.Writer
	quiet bool
}

func NewContainer(out io.Writer, quiet bool) *Container {
	return &Container{
		out:   out,
		quiet: quiet,
	}
}

func (c *Container) ensureProgress() *mpb.Progress {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.p == nil {
		c.p = mpb.New(mpb.WithOutput(c.out))
	}
	return c.p
}

// NewBar adds a bar. A total of zero or less makes the bar grow with every
// increment.
func (c *Container) NewBar(total int64, name string) Bar {
	if c.quiet {
		return &noopBar{}
	}
	return &bar{b: c.addBar(total, name), total: total}
}

func (c *Container) addBar(total int64, name string) *mpb.Bar {
	options := []mpb.BarOption{
		mpb.PrependDecorators(
			decor.Name(name, decor.WC{W: len(name) + 1}),
			decor.CountersNoUnit("%d / %d"),
		),
		mpb.BarRemoveOnComplete(),
	}
	if total > 0 {
		options = append(options,
			mpb.AppendDecorators(decor.Percentage(decor.WC{W: 5}), decor.Elapsed(decor.ET_STYLE_GO)),
		)
	} else {
		options = append(options,
			mpb.AppendDecorators(decor.Elapsed(decor.ET_STYLE_GO)),
		)
	}
	b := c.ensureProgress().New(total,
		mpb.BarStyle().Lbound("[").Filler("=").Tip(">").Padding(" ").Rbound("]"),
		options...,
	)
	b.EnableTriggerComplete()
	return b
}

// Wait blocks until every bar is done or aborted.
func (c *Container) Wait() {
	c.mu.Lock()
	p := c.p
	c.p = nil
	c.mu.Unlock()
	if p == nil {
		return
	}
	p.Wait()
}

func (c *Container) OverrideQuiet(quiet bool) (restore func()) {
	orig := c.quiet
	c.quiet = quiet
	return func() {
		c.quiet = orig
	}
}
