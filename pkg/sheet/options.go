// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package sheet

type options struct {
	delimiter rune
	infer     bool
}

type Option func(o *options)

// WithDelimiter sets the field delimiter of CSV files. Zero keeps the default
// which is a comma, or a tab for .tsv files.
func WithDelimiter(r rune) Option {
	return func(o *options) {
		o.delimiter = r
	}
}

// WithTypeInference makes CSV cells that look like numbers or booleans typed
// instead of strings.
func WithTypeInference(infer bool) Option {
	return func(o *options) {
		o.infer = infer
	}
}

func buildOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
