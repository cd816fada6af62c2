// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package utils

import (
	"fmt"
	"strings"
)

type Example struct {
	Comment string
	Line    string
}

func CombineExamples(sl []Example) string {
	lines := make([]string, len(sl))
	for i, ex := range sl {
		lines[i] = fmt.Sprintf("  # %s\n  %s", ex.Comment, ex.Line)
	}
	return strings.Join(lines, "\n\n")
}
