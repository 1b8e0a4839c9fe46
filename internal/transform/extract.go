// SPDX-License-Identifier: Apache-2.0

// Package transform implements the bidirectional tree transform between
// inline content fields and externally stored content referenced by
// placeholders. The Extractor walks a document depth-first, writes each
// inline content occurrence to a location under its root derived from the
// logical path in force, and rewrites the field to a placeholder; the
// Embedder is the inverse. One Extractor or Embedder value serves exactly
// one operation.
package transform

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"

	"github.com/ignproj/ignition-coder/internal/codec"
	"github.com/ignproj/ignition-coder/internal/document"
)

// noIndex marks a content field that is a lone object member rather than a
// content-bearing array element.
const noIndex = -1

// Extractor converts inline content fields to externally stored content
// under its root directory. The counter is per-operation state: it counts
// converted fields for progress reporting and names fields that have no
// logical path.
type Extractor struct {
	root  string
	count int
}

// NewExtractor creates an Extractor writing under root.
func NewExtractor(root string) *Extractor {
	return &Extractor{root: root}
}

// Extract walks doc depth-first, extracting every inline content field and
// rewriting it to a placeholder. It returns the number of fields converted.
// The first failure aborts the operation; files already written stay on
// disk, but the failing field itself is never rewritten, so the document is
// never observed half-converted.
func (e *Extractor) Extract(doc *document.Node) (int, error) {
	if err := os.MkdirAll(e.root, 0o755); err != nil {
		return e.count, fmt.Errorf("creating output root %s: %w", e.root, err)
	}
	if err := e.walk(doc, ""); err != nil {
		return e.count, err
	}
	return e.count, nil
}

func (e *Extractor) walk(n *document.Node, inherited string) error {
	switch n.Kind() {
	case document.KindObject:
		current := trackPath(n, inherited)
		// When one object holds several content-bearing arrays, they all
		// compete for the same logical path; qualifying each location with
		// the field name keeps them apart.
		qualify := countContentArrays(n) > 1
		for _, m := range n.Members() {
			switch {
			case m.Key == sourceKey && m.Value.Kind() == document.KindString:
				if err := e.convert(m.Value, current, noIndex, ""); err != nil {
					return err
				}
			case isContentArray(m.Value):
				qualifier := ""
				if qualify {
					qualifier = m.Key
				}
				if err := e.walkContentArray(m.Value, current, qualifier); err != nil {
					return err
				}
			default:
				if err := e.walk(m.Value, current); err != nil {
					return err
				}
			}
		}
	case document.KindArray:
		for _, el := range n.Elems() {
			if err := e.walk(el, inherited); err != nil {
				return err
			}
		}
	}
	return nil
}

// walkContentArray converts the direct content field of each element with
// its position as index, then walks the element's remaining members.
func (e *Extractor) walkContentArray(arr *document.Node, logical, qualifier string) error {
	for i, el := range arr.Elems() {
		current := trackPath(el, logical)
		for _, m := range el.Members() {
			if m.Key == sourceKey && m.Value.Kind() == document.KindString {
				if err := e.convert(m.Value, current, i, qualifier); err != nil {
					return err
				}
				continue
			}
			if err := e.walk(m.Value, current); err != nil {
				return err
			}
		}
	}
	return nil
}

// convert handles one content field: decode, allocate a location, write the
// bytes, then rewrite the field. The write completes before the rewrite.
func (e *Extractor) convert(field *document.Node, logical string, index int, qualifier string) error {
	value, _ := field.AsString()
	decoded, ok, err := codec.DecodeInline(value)
	if err != nil {
		return &DecodeError{Path: logical, Err: err}
	}
	if !ok {
		// Not inline content: a placeholder, or a reference the tool does
		// not fetch. Left untouched.
		return nil
	}

	ref, err := e.allocate(logical, index, qualifier, decoded.MediaType)
	if err != nil {
		return err
	}
	dest := filepath.Join(e.root, filepath.FromSlash(ref))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("extracting %q: creating directory for %s: %w", logical, dest, err)
	}
	if err := os.WriteFile(dest, decoded.Data, 0o644); err != nil {
		return fmt.Errorf("extracting %q: writing %s: %w", logical, dest, err)
	}

	e.count++
	field.SetString(codec.EncodePlaceholder(decoded.MediaType, ref))
	return nil
}

// allocate derives the external content location for a field. Fields without
// a logical path get a counter-based synthesized name; array elements get
// their index as a trailing segment.
func (e *Extractor) allocate(logical string, index int, qualifier, mediaType string) (string, error) {
	if logical == "" {
		return fmt.Sprintf("unnamed-%d%s", e.count, extensionFor(mediaType)), nil
	}
	rel, err := sanitizeRef(logical)
	if err != nil {
		return "", err
	}
	if index == noIndex {
		return rel, nil
	}
	if qualifier != "" {
		return path.Join(rel, qualifier, strconv.Itoa(index)), nil
	}
	return path.Join(rel, strconv.Itoa(index)), nil
}

// isContentArray reports whether a node is an array whose elements are all
// objects carrying a direct content field. Such elements share the enclosing
// logical path and are told apart by position.
func isContentArray(n *document.Node) bool {
	elems := n.Elems()
	if n.Kind() != document.KindArray || len(elems) == 0 {
		return false
	}
	for _, el := range elems {
		src := el.Field(sourceKey)
		if src == nil {
			return false
		}
		if _, ok := src.AsString(); !ok {
			return false
		}
	}
	return true
}

func countContentArrays(n *document.Node) int {
	count := 0
	for _, m := range n.Members() {
		if isContentArray(m.Value) {
			count++
		}
	}
	return count
}
