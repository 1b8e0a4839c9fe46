// SPDX-License-Identifier: Apache-2.0

package transform

import (
	"strings"

	"github.com/ignproj/ignition-coder/internal/document"
)

// sourceKey is the object key holding embeddable content.
const sourceKey = "source"

// trackPath returns the logical path in force at a node: the node's own
// explicit path declaration if it has one, otherwise the path inherited from
// the nearest ancestor that declared one.
func trackPath(n *document.Node, inherited string) string {
	if p := n.Field("path"); p != nil {
		if s, ok := p.AsString(); ok {
			return s
		}
	}
	return inherited
}

// sanitizeRef turns a logical path or placeholder reference into a location
// relative to the operation root: one leading separator is stripped, and any
// parent-directory segment rejects the reference outright.
func sanitizeRef(ref string) (string, error) {
	rel := strings.TrimPrefix(ref, "/")
	for _, seg := range strings.Split(rel, "/") {
		if seg == ".." {
			return "", &PathEscapeError{Ref: ref}
		}
	}
	return rel, nil
}

// extensions maps media types to the file extension used for synthesized
// names. Lookup ignores parameters such as charset.
var extensions = map[string]string{
	"text/plain":             ".txt",
	"application/json":       ".json",
	"application/yaml":       ".yaml",
	"application/x-yaml":     ".yaml",
	"text/yaml":              ".yaml",
	"text/x-yaml":            ".yaml",
	"application/xml":        ".xml",
	"text/xml":               ".xml",
	"text/html":              ".html",
	"application/javascript": ".js",
	"text/javascript":        ".js",
	"text/css":               ".css",
}

const genericExtension = ".bin"

// extensionFor returns the extension for a media type. The empty media type
// means text/plain per the data-URL default; unknown types fall back to a
// generic extension.
func extensionFor(mediaType string) string {
	mt := mediaType
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	mt = strings.ToLower(strings.TrimSpace(mt))
	if mt == "" {
		mt = "text/plain"
	}
	if ext, ok := extensions[mt]; ok {
		return ext
	}
	return genericExtension
}
