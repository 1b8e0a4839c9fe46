// SPDX-License-Identifier: Apache-2.0

// Package tool exposes the disassemble and assemble operations as MCP tools.
// The document travels as text in both directions; only the extracted
// content files touch the filesystem, under the root the caller names.
package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ignproj/ignition-coder/internal/document"
	"github.com/ignproj/ignition-coder/internal/schema"
	"github.com/ignproj/ignition-coder/internal/transform"
)

// MetadataDisassembleConfig describes the disassemble_config tool.
var MetadataDisassembleConfig = &mcp.Tool{
	Name: "disassemble_config",
	Description: "Decode an Ignition configuration document, extracting embedded file contents " +
		"to a target directory and rewriting each content field to a placeholder that " +
		"references the extracted file. Returns the rewritten document. " +
		"Supported document formats: json (Ignition .ign), yaml.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"content", "target_dir"},
		"properties": map[string]interface{}{
			"content": map[string]interface{}{
				"type":        "string",
				"description": "Raw content of the config document",
			},
			"format": map[string]interface{}{
				"type":        "string",
				"description": "Format hint for the document. One of: json, yaml. If omitted, auto-detection is used.",
				"enum":        []string{"json", "yaml"},
			},
			"target_dir": map[string]interface{}{
				"type":        "string",
				"description": "Directory to place the extracted file contents in",
			},
		},
	},
}

// InputDisassembleConfig is the input for the DisassembleConfig tool.
type InputDisassembleConfig struct {
	Content   string `json:"content"`
	Format    string `json:"format"`
	TargetDir string `json:"target_dir"`
}

// OutputDisassembleConfig is the output for the DisassembleConfig tool.
type OutputDisassembleConfig struct {
	// Document is the rewritten config document with placeholder fields.
	Document string `json:"document"`
	// Extracted is the number of content fields converted.
	Extracted int `json:"extracted"`
	// Warnings are non-fatal schema warnings.
	Warnings []string `json:"warnings,omitempty"`
}

// DisassembleConfig extracts embedded content from the provided document and
// returns the placeholder-bearing form.
func DisassembleConfig(ctx context.Context, _ *mcp.CallToolRequest, input InputDisassembleConfig) (*mcp.CallToolResult, OutputDisassembleConfig, error) {
	if input.Content == "" {
		return nil, OutputDisassembleConfig{}, fmt.Errorf("content is required")
	}
	if input.TargetDir == "" {
		return nil, OutputDisassembleConfig{}, fmt.Errorf("target_dir is required")
	}

	c, doc, warnings, err := decodeDocument(input.Content, input.Format)
	if err != nil {
		return nil, OutputDisassembleConfig{}, err
	}

	count, err := transform.NewExtractor(input.TargetDir).Extract(doc)
	if err != nil {
		return nil, OutputDisassembleConfig{}, err
	}

	out, err := c.Encode(doc, false)
	if err != nil {
		return nil, OutputDisassembleConfig{}, err
	}

	return nil, OutputDisassembleConfig{
		Document:  string(out),
		Extracted: count,
		Warnings:  warnings,
	}, nil
}

// decodeDocument selects a codec, decodes the document, and validates it
// against the config schema.
func decodeDocument(content, format string) (document.Codec, *document.Node, []string, error) {
	reg := document.DefaultRegistry()
	var (
		c   document.Codec
		err error
	)
	if format != "" {
		c, err = reg.ByName(format)
	} else {
		c, err = reg.Select("", []byte(content))
	}
	if err != nil {
		return nil, nil, nil, err
	}
	doc, err := c.Decode([]byte(content))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("parsing document: %w", err)
	}
	_, warnings, err := schema.Validate(doc)
	if err != nil {
		return nil, nil, nil, err
	}
	return c, doc, warnings, nil
}
