// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/ignproj/ignition-coder/internal/tool"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run an MCP server exposing the disassemble and assemble tools over stdio",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))

	server := mcp.NewServer(&mcp.Implementation{Name: "ignition-coder", Version: version}, nil)
	mcp.AddTool(server, tool.MetadataDisassembleConfig, tool.DisassembleConfig)
	mcp.AddTool(server, tool.MetadataAssembleConfig, tool.AssembleConfig)

	log.Info("starting MCP server on stdio")
	err := server.Run(cmd.Context(), &mcp.StdioTransport{})
	if err != nil {
		log.Error("server stopped", "error", err)
	}
	return err
}
