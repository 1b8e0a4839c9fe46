// SPDX-License-Identifier: Apache-2.0

package document

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

// Codec converts between a serialized config document and the Node tree.
type Codec interface {
	// Name is the format name accepted as an explicit hint ("json", "yaml").
	Name() string
	// Extensions lists the file extensions this codec claims, preferred
	// first. The first entry names rewritten documents on disk.
	Extensions() []string
	CanHandle(name string, data []byte) bool
	Decode(data []byte) (*Node, error)
	Encode(n *Node, compact bool) ([]byte, error)
}

// Registry selects a Codec for a document by explicit hint, file name, or
// content sniffing.
type Registry struct {
	codecs []Codec
}

// NewRegistry creates a Registry with the provided codecs. Order matters:
// the first codec that can handle a document wins.
func NewRegistry(codecs ...Codec) *Registry {
	return &Registry{codecs: codecs}
}

// DefaultRegistry returns a Registry with the JSON and YAML codecs.
func DefaultRegistry() *Registry {
	return NewRegistry(NewJSONCodec(), NewYAMLCodec())
}

// ByName returns the codec registered under the given format name.
func (r *Registry) ByName(format string) (Codec, error) {
	for _, c := range r.codecs {
		if strings.EqualFold(c.Name(), format) {
			return c, nil
		}
	}
	return nil, fmt.Errorf("unsupported document format %q", format)
}

// Select returns the first registered codec that can handle the document.
func (r *Registry) Select(name string, data []byte) (Codec, error) {
	for _, c := range r.codecs {
		if c.CanHandle(name, data) {
			return c, nil
		}
	}
	return nil, fmt.Errorf("unsupported document format: no codec found for %q", name)
}

// Extensions returns every extension claimed by a registered codec.
func (r *Registry) Extensions() []string {
	var exts []string
	for _, c := range r.codecs {
		exts = append(exts, c.Extensions()...)
	}
	return exts
}

// JSONCodec handles Ignition-style JSON documents (.ign, .json).
type JSONCodec struct{}

func NewJSONCodec() *JSONCodec { return &JSONCodec{} }

func (c *JSONCodec) Name() string { return "json" }
func (c *JSONCodec) Extensions() []string { return []string{".ign", ".json"} }

func (c *JSONCodec) CanHandle(name string, data []byte) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ign", ".json":
		return true
	}
	return bytes.HasPrefix(bytes.TrimSpace(data), []byte("{"))
}

func (c *JSONCodec) Decode(data []byte) (*Node, error) {
	return DecodeJSON(data)
}

func (c *JSONCodec) Encode(n *Node, compact bool) ([]byte, error) {
	return EncodeJSON(n, !compact)
}

// YAMLCodec handles YAML-serialized config documents (.yaml, .yml). YAML
// output has no compact variant; the flag is ignored.
type YAMLCodec struct{}

func NewYAMLCodec() *YAMLCodec { return &YAMLCodec{} }

func (c *YAMLCodec) Name() string { return "yaml" }
func (c *YAMLCodec) Extensions() []string { return []string{".yaml", ".yml"} }

func (c *YAMLCodec) CanHandle(name string, data []byte) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return true
	}
	content := strings.TrimSpace(string(data))
	if content == "" || strings.HasPrefix(content, "{") {
		return false
	}
	return strings.Contains(strings.SplitN(content, "\n", 2)[0], ":")
}

func (c *YAMLCodec) Decode(data []byte) (*Node, error) {
	return DecodeYAML(data)
}

func (c *YAMLCodec) Encode(n *Node, _ bool) ([]byte, error) {
	return EncodeYAML(n)
}
