// SPDX-License-Identifier: Apache-2.0

package transform

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ignproj/ignition-coder/internal/codec"
	"github.com/ignproj/ignition-coder/internal/document"
)

// Embedder converts placeholder content fields back to inline form by
// reading the referenced bytes under its files root. Placeholders are
// self-describing, so the walk needs no logical-path tracking: assembly
// works regardless of edits made elsewhere in the document since extraction.
type Embedder struct {
	root  string
	count int
}

// NewEmbedder creates an Embedder reading under root.
func NewEmbedder(root string) *Embedder {
	return &Embedder{root: root}
}

// Embed walks doc depth-first, loading the external content behind every
// placeholder field and rewriting it to inline form. It returns the number
// of fields converted. The first failure aborts the operation.
func (e *Embedder) Embed(doc *document.Node) (int, error) {
	if err := e.walk(doc); err != nil {
		return e.count, err
	}
	return e.count, nil
}

func (e *Embedder) walk(n *document.Node) error {
	switch n.Kind() {
	case document.KindObject:
		for _, m := range n.Members() {
			if m.Key == sourceKey && m.Value.Kind() == document.KindString {
				if err := e.convert(m.Value); err != nil {
					return err
				}
				continue
			}
			if err := e.walk(m.Value); err != nil {
				return err
			}
		}
	case document.KindArray:
		for _, el := range n.Elems() {
			if err := e.walk(el); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Embedder) convert(field *document.Node) error {
	value, _ := field.AsString()
	mediaType, ref, ok := codec.DecodePlaceholder(value)
	if !ok {
		return nil
	}

	rel, err := sanitizeRef(ref)
	if err != nil {
		return err
	}
	src := filepath.Join(e.root, filepath.FromSlash(rel))
	data, err := os.ReadFile(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &MissingContentError{Ref: ref, Err: err}
		}
		return fmt.Errorf("embedding %q: reading %s: %w", ref, src, err)
	}

	e.count++
	field.SetString(codec.EncodeInline(data, mediaType))
	return nil
}
