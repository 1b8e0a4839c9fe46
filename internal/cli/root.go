// SPDX-License-Identifier: Apache-2.0

// Package cli wires the disassemble, assemble, and serve commands.
package cli

import "github.com/spf13/cobra"

const version = "0.2.0"

// NewRootCommand builds the ignition-coder command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "ignition-coder",
		Short:        "Decode and encode Fedora CoreOS Ignition configuration files",
		Version:      version,
		SilenceUsage: true,
	}
	root.AddCommand(
		newDisassembleCommand(),
		newAssembleCommand(),
		newServeCommand(),
	)
	return root
}
