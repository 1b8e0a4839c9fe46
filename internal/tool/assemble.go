// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ignproj/ignition-coder/internal/transform"
)

// MetadataAssembleConfig describes the assemble_config tool.
var MetadataAssembleConfig = &mcp.Tool{
	Name: "assemble_config",
	Description: "Encode a placeholder-bearing Ignition configuration document back into its " +
		"self-contained form, reading each referenced content file from a source directory " +
		"and inlining it as an encoded string. Returns the assembled document. " +
		"Supported document formats: json (Ignition .ign), yaml.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"content", "source_dir"},
		"properties": map[string]interface{}{
			"content": map[string]interface{}{
				"type":        "string",
				"description": "Raw content of the placeholder-bearing config document",
			},
			"format": map[string]interface{}{
				"type":        "string",
				"description": "Format hint for the document. One of: json, yaml. If omitted, auto-detection is used.",
				"enum":        []string{"json", "yaml"},
			},
			"source_dir": map[string]interface{}{
				"type":        "string",
				"description": "Directory containing the extracted file contents",
			},
			"compact": map[string]interface{}{
				"type":        "boolean",
				"description": "Serialize the output in a compact format",
			},
			"strip_defaults": map[string]interface{}{
				"type":        "boolean",
				"description": "Suppress fields that have default values",
			},
		},
	},
}

// InputAssembleConfig is the input for the AssembleConfig tool.
type InputAssembleConfig struct {
	Content       string `json:"content"`
	Format        string `json:"format"`
	SourceDir     string `json:"source_dir"`
	Compact       bool   `json:"compact"`
	StripDefaults bool   `json:"strip_defaults"`
}

// OutputAssembleConfig is the output for the AssembleConfig tool.
type OutputAssembleConfig struct {
	// Document is the assembled config document with inline content.
	Document string `json:"document"`
	// Embedded is the number of content fields converted.
	Embedded int `json:"embedded"`
	// Warnings are non-fatal schema warnings.
	Warnings []string `json:"warnings,omitempty"`
}

// AssembleConfig inlines the external content referenced by the provided
// document's placeholders and returns the self-contained form.
func AssembleConfig(ctx context.Context, _ *mcp.CallToolRequest, input InputAssembleConfig) (*mcp.CallToolResult, OutputAssembleConfig, error) {
	if input.Content == "" {
		return nil, OutputAssembleConfig{}, fmt.Errorf("content is required")
	}
	if input.SourceDir == "" {
		return nil, OutputAssembleConfig{}, fmt.Errorf("source_dir is required")
	}

	c, doc, warnings, err := decodeDocument(input.Content, input.Format)
	if err != nil {
		return nil, OutputAssembleConfig{}, err
	}

	count, err := transform.NewEmbedder(input.SourceDir).Embed(doc)
	if err != nil {
		return nil, OutputAssembleConfig{}, err
	}

	if input.StripDefaults {
		doc.StripDefaults()
	}
	out, err := c.Encode(doc, input.Compact)
	if err != nil {
		return nil, OutputAssembleConfig{}, err
	}

	return nil, OutputAssembleConfig{
		Document: string(out),
		Embedded: count,
		Warnings: warnings,
	}, nil
}
