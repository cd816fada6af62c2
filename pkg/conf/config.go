// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package conf

import (
	"fmt"
	"runtime"
	"time"
	"unicode/utf8"
)

const (
	DefaultWatchDebounce Duration = Duration(200 * time.Millisecond)
)

type Compare struct {
	// MaxRows is the largest number of rows a table can have on either side
	// before comparison is refused. Alignment is quadratic so very large tables
	// take a long time. 0 means no limit.
	MaxRows int `yaml:"maxRows,omitempty" json:"maxRows,omitempty"`

	// Workers is the number of tables compared concurrently. Defaults to the
	// number of CPUs.
	Workers int `yaml:"workers,omitempty" json:"workers,omitempty"`

	// Tables are glob patterns of table names to compare. Other tables are
	// copied from source during merge. See https://github.com/gobwas/glob for
	// supported format.
	Tables []string `yaml:"tables,omitempty" json:"tables,omitempty"`

	// Delimiter is the field delimiter of CSV files, a single character.
	Delimiter string `yaml:"delimiter,omitempty" json:"delimiter,omitempty"`

	// InferTypes, when set to `true`, reads CSV cells that look like numbers or
	// booleans as such. XLSX cells always keep their stored type.
	InferTypes *bool `yaml:"inferTypes,omitempty" json:"inferTypes,omitempty"`
}

type Merge struct {
	// Output is the default output path of `sheetmerge merge`.
	Output string `yaml:"output,omitempty" json:"output,omitempty"`
}

type Diff struct {
	// WatchDebounce is how long `sheetmerge diff --watch` waits after a file
	// event before comparing again. This is a string in the format "1.5s".
	WatchDebounce *Duration `yaml:"watchDebounce,omitempty" json:"watchDebounce,omitempty"`
}

type Config struct {
	Compare *Compare `yaml:"compare,omitempty" json:"compare,omitempty"`
	Merge   *Merge   `yaml:"merge,omitempty" json:"merge,omitempty"`
	Diff    *Diff    `yaml:"diff,omitempty" json:"diff,omitempty"`
}

func (c *Config) MaxRows() int {
	if c.Compare != nil {
		return c.Compare.MaxRows
	}
	return 0
}

func (c *Config) Workers() int {
	if c.Compare != nil && c.Compare.Workers > 0 {
		return c.Compare.Workers
	}
	return runtime.NumCPU()
}

func (c *Config) TablePatterns() []string {
	if c.Compare != nil {
		return c.Compare.Tables
	}
	return nil
}

// Delimiter returns the configured CSV delimiter or zero when unset.
func (c *Config) Delimiter() (rune, error) {
	if c.Compare == nil || c.Compare.Delimiter == "" {
		return 0, nil
	}
	s := c.Compare.Delimiter
	if s == `\t` {
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	return r, nil
}

func (c *Config) InferTypes() bool {
	if c.Compare != nil && c.Compare.InferTypes != nil {
		return *c.Compare.InferTypes
	}
	return false
}

func (c *Config) MergeOutput() string {
	if c.Merge != nil {
		return c.Merge.Output
	}
	return ""
}

func (c *Config) WatchDebounce() time.Duration {
	if c.Diff != nil && c.Diff.WatchDebounce != nil {
		return c.Diff.WatchDebounce.Std()
	}
	return DefaultWatchDebounce.Std()
}
