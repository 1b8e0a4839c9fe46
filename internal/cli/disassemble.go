// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ignproj/ignition-coder/internal/document"
	"github.com/ignproj/ignition-coder/internal/schema"
	"github.com/ignproj/ignition-coder/internal/transform"
)

func newDisassembleCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:     "disassemble <config-file> <target-dir>",
		Aliases: []string{"decode", "d", "div"},
		Short:   "Decode a config file, extracting embedded file contents",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDisassemble(cmd, args[0], args[1], format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "document format (json or yaml); auto-detected if omitted")
	return cmd
}

func runDisassemble(cmd *cobra.Command, inputPath, targetDir, format string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading input file %s: %w", inputPath, err)
	}

	reg := document.DefaultRegistry()
	c, err := selectCodec(reg, format, inputPath, data)
	if err != nil {
		return err
	}
	doc, err := c.Decode(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", inputPath, err)
	}

	_, warnings, err := schema.Validate(doc)
	if err != nil {
		return err
	}
	printWarnings(cmd, warnings)

	count, err := transform.NewExtractor(targetDir).Extract(doc)
	if err != nil {
		return err
	}

	out, err := c.Encode(doc, false)
	if err != nil {
		return err
	}
	outPath := filepath.Join(targetDir, "decoded"+c.Extensions()[0])
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nDecoding complete! Extracted %d file(s) to %s\n", count, targetDir)
	fmt.Fprintf(cmd.OutOrStdout(), "Modified config saved as: %s\n", outPath)
	return nil
}

func selectCodec(reg *document.Registry, format, name string, data []byte) (document.Codec, error) {
	if format != "" {
		return reg.ByName(format)
	}
	return reg.Select(name, data)
}

func printWarnings(cmd *cobra.Command, warnings []string) {
	for _, w := range warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
	}
}
