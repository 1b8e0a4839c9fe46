// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `{
  "ignition": {"version": "3.4.0"},
  "storage": {"files": [{
    "path": "/etc/test",
    "contents": {"source": "data:;base64,dGVzdCBjb250ZW50"}
  }]}
}`

func TestDisassembleConfig(t *testing.T) {
	ctx := context.Background()
	req := &mcp.CallToolRequest{}

	tests := []struct {
		name           string
		input          func(t *testing.T) InputDisassembleConfig
		wantErr        bool
		errContains    string
		validateOutput func(t *testing.T, targetDir string, output OutputDisassembleConfig)
	}{
		{
			name: "empty content returns error",
			input: func(t *testing.T) InputDisassembleConfig {
				return InputDisassembleConfig{TargetDir: t.TempDir()}
			},
			wantErr:     true,
			errContains: "content is required",
		},
		{
			name: "missing target_dir returns error",
			input: func(t *testing.T) InputDisassembleConfig {
				return InputDisassembleConfig{Content: sampleConfig}
			},
			wantErr:     true,
			errContains: "target_dir is required",
		},
		{
			name: "ignition config extracts embedded content",
			input: func(t *testing.T) InputDisassembleConfig {
				return InputDisassembleConfig{Content: sampleConfig, TargetDir: t.TempDir()}
			},
			validateOutput: func(t *testing.T, targetDir string, output OutputDisassembleConfig) {
				assert.Equal(t, 1, output.Extracted)
				assert.Contains(t, output.Document, "data:;base64-placeholder,etc/test")

				data, err := os.ReadFile(filepath.Join(targetDir, "etc", "test"))
				require.NoError(t, err)
				assert.Equal(t, "test content", string(data))
			},
		},
		{
			name: "explicit json format hint",
			input: func(t *testing.T) InputDisassembleConfig {
				return InputDisassembleConfig{Content: sampleConfig, Format: "json", TargetDir: t.TempDir()}
			},
			validateOutput: func(t *testing.T, _ string, output OutputDisassembleConfig) {
				assert.Equal(t, 1, output.Extracted)
			},
		},
		{
			name: "unsupported format returns error",
			input: func(t *testing.T) InputDisassembleConfig {
				return InputDisassembleConfig{Content: sampleConfig, Format: "toml", TargetDir: t.TempDir()}
			},
			wantErr:     true,
			errContains: "unsupported document format",
		},
		{
			name: "unsupported version returns error",
			input: func(t *testing.T) InputDisassembleConfig {
				return InputDisassembleConfig{Content: `{"ignition":{"version":"2.2.0"}}`, TargetDir: t.TempDir()}
			},
			wantErr:     true,
			errContains: "unsupported config version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tt.input(t)
			_, output, err := DisassembleConfig(ctx, req, input)

			if tt.wantErr {
				require.Error(t, err)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}

			require.NoError(t, err)
			if tt.validateOutput != nil {
				tt.validateOutput(t, input.TargetDir, output)
			}
		})
	}
}

func TestAssembleConfig(t *testing.T) {
	ctx := context.Background()
	req := &mcp.CallToolRequest{}

	t.Run("empty content returns error", func(t *testing.T) {
		_, _, err := AssembleConfig(ctx, req, InputAssembleConfig{SourceDir: t.TempDir()})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "content is required")
	})

	t.Run("missing source_dir returns error", func(t *testing.T) {
		_, _, err := AssembleConfig(ctx, req, InputAssembleConfig{Content: sampleConfig})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "source_dir is required")
	})

	t.Run("round trip through both tools", func(t *testing.T) {
		dir := t.TempDir()

		_, disassembled, err := DisassembleConfig(ctx, req, InputDisassembleConfig{
			Content:   sampleConfig,
			TargetDir: dir,
		})
		require.NoError(t, err)
		require.Equal(t, 1, disassembled.Extracted)

		_, assembled, err := AssembleConfig(ctx, req, InputAssembleConfig{
			Content:   disassembled.Document,
			SourceDir: dir,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, assembled.Embedded)
		assert.Contains(t, assembled.Document, "data:;base64,dGVzdCBjb250ZW50")
	})

	t.Run("missing external content is an error", func(t *testing.T) {
		content := `{
  "ignition": {"version": "3.4.0"},
  "storage": {"files": [{
    "path": "/etc/test",
    "contents": {"source": "data:;base64-placeholder,etc/test"}
  }]}
}`
		_, _, err := AssembleConfig(ctx, req, InputAssembleConfig{
			Content:   content,
			SourceDir: t.TempDir(),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}
