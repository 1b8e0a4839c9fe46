// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"github.com/ignproj/ignition-coder/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
