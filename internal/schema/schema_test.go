// SPDX-License-Identifier: Apache-2.0

package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignproj/ignition-coder/internal/document"
	"github.com/ignproj/ignition-coder/internal/schema"
)

func mustDecode(t *testing.T, src string) *document.Node {
	t.Helper()
	doc, err := document.DecodeJSON([]byte(src))
	require.NoError(t, err)
	return doc
}

func TestValidate_SupportedVersions(t *testing.T) {
	tests := []struct {
		version string
		want    schema.Version
	}{
		{version: "3.0.0", want: schema.V3_0},
		{version: "3.1.0", want: schema.V3_1},
		{version: "3.2.0", want: schema.V3_2},
		{version: "3.3.0", want: schema.V3_3},
		{version: "3.4.0", want: schema.V3_4},
		{version: "3.5.0", want: schema.V3_5},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			doc := mustDecode(t, `{"ignition":{"version":"`+tt.version+`"}}`)
			cfg, warnings, err := schema.Validate(doc)
			require.NoError(t, err)
			assert.Empty(t, warnings)
			assert.Equal(t, tt.want, cfg.Version)
			assert.Equal(t, tt.version, cfg.VersionString)
			assert.Same(t, doc, cfg.Document, "the config shares the document tree")
		})
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name        string
		doc         string
		errContains string
	}{
		{
			name:        "missing ignition section",
			doc:         `{"storage":{}}`,
			errContains: "missing ignition section",
		},
		{
			name:        "missing version",
			doc:         `{"ignition":{}}`,
			errContains: "missing ignition.version",
		},
		{
			name:        "version is not a string",
			doc:         `{"ignition":{"version":3}}`,
			errContains: "must be a string",
		},
		{
			name:        "unsupported 2.x version",
			doc:         `{"ignition":{"version":"2.3.0"}}`,
			errContains: `unsupported config version "2.3.0"`,
		},
		{
			name:        "unsupported future version",
			doc:         `{"ignition":{"version":"3.6.0"}}`,
			errContains: `unsupported config version "3.6.0"`,
		},
		{
			name:        "document is not an object",
			doc:         `[1,2,3]`,
			errContains: "must be an object",
		},
		{
			name:        "file without a path",
			doc:         `{"ignition":{"version":"3.4.0"},"storage":{"files":[{"contents":{"source":"data:,x"}}]}}`,
			errContains: "does not conform to schema",
		},
		{
			name:        "relative file path",
			doc:         `{"ignition":{"version":"3.4.0"},"storage":{"files":[{"path":"etc/test"}]}}`,
			errContains: "does not conform to schema",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustDecode(t, tt.doc)
			_, _, err := schema.Validate(doc)
			require.Error(t, err)
			var parseErr *schema.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestValidate_WellFormedConfig(t *testing.T) {
	doc := mustDecode(t, `{
		"ignition": {"version": "3.4.0"},
		"storage": {"files": [{
			"path": "/etc/test",
			"mode": 420,
			"contents": {"source": "data:;base64,dGVzdCBjb250ZW50"}
		}]},
		"systemd": {"units": [{"name": "example.service", "enabled": true}]},
		"passwd": {"users": [{"name": "core"}]},
		"kernelArguments": {"shouldExist": ["quiet"]}
	}`)

	cfg, warnings, err := schema.Validate(doc)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, schema.V3_4, cfg.Version)
}

func TestValidate_UnrecognizedSectionWarns(t *testing.T) {
	doc := mustDecode(t, `{
		"ignition": {"version": "3.4.0"},
		"networkd": {"units": []}
	}`)

	_, warnings, err := schema.Validate(doc)
	require.NoError(t, err, "warnings never abort parsing")
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], `unrecognized section "networkd"`)
}

func TestValidate_KernelArgumentsPerVersion(t *testing.T) {
	// kernelArguments is a 3.3+ section; older versions warn about it.
	doc := mustDecode(t, `{
		"ignition": {"version": "3.2.0"},
		"kernelArguments": {"shouldExist": ["quiet"]}
	}`)
	_, warnings, err := schema.Validate(doc)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "3.2")
	assert.Contains(t, warnings[0], "kernelArguments")

	doc = mustDecode(t, `{
		"ignition": {"version": "3.3.0"},
		"kernelArguments": {"shouldExist": ["quiet"]}
	}`)
	_, warnings, err = schema.Validate(doc)
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestVersion_String(t *testing.T) {
	assert.Equal(t, "3.0", schema.V3_0.String())
	assert.Equal(t, "3.5", schema.V3_5.String())
}
