// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

// Command sheetgen writes a mutated copy of a workbook, to be compared with
// the original when trying out or benchmarking sheetmerge.
package main

import (
	"fmt"
	"os"
)

func main() {
	cmd := newRootCmd()
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "sheetgen: %v\n", err)
		os.Exit(1)
	}
}
