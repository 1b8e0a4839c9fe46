// SPDX-License-Identifier: Apache-2.0

// Package codec converts a single content field value between its inline
// data-URL form and the placeholder form that references externally stored
// content. All functions are pure: no I/O, no mutation of arguments.
//
// Inline form:      data:<media-type>;base64,<encoded-bytes>
// Placeholder form: data:<media-type>;base64-placeholder,<external-ref>
//
// The media type is carried verbatim in both directions, including the empty
// string, so a round trip reproduces the original value byte for byte.
package codec

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
)

const (
	scheme            = "data:"
	base64Marker      = ";base64"
	placeholderMarker = ";base64-placeholder"
)

// Decoded holds the payload of a successfully decoded inline content value.
type Decoded struct {
	Data      []byte
	MediaType string
}

// DecodeInline decodes an inline content value. It returns ok=false when the
// value is not inline content (no data-URL scheme, or already a
// placeholder); such values are left for the caller to skip. A value that
// carries the scheme but has a malformed body is an error.
func DecodeInline(value string) (Decoded, bool, error) {
	if !strings.HasPrefix(value, scheme) {
		return Decoded{}, false, nil
	}
	rest := value[len(scheme):]
	comma := strings.IndexByte(rest, ',')
	if comma < 0 {
		return Decoded{}, false, fmt.Errorf("data URL missing %q separator", ",")
	}
	header, body := rest[:comma], rest[comma+1:]
	if strings.HasSuffix(header, placeholderMarker) {
		// Placeholders are syntactically data URLs but are not inline content.
		return Decoded{}, false, nil
	}
	if mediaType, ok := strings.CutSuffix(header, base64Marker); ok {
		data, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return Decoded{}, false, fmt.Errorf("invalid base64 payload: %w", err)
		}
		return Decoded{Data: data, MediaType: mediaType}, true, nil
	}
	// No encoding indicator: the body is percent-encoded.
	data, err := url.PathUnescape(body)
	if err != nil {
		return Decoded{}, false, fmt.Errorf("invalid percent-encoded payload: %w", err)
	}
	return Decoded{Data: []byte(data), MediaType: header}, true, nil
}

// EncodeInline builds the inline form for the given bytes and media type.
func EncodeInline(data []byte, mediaType string) string {
	return scheme + mediaType + base64Marker + "," + base64.StdEncoding.EncodeToString(data)
}

// DecodePlaceholder decodes a placeholder value into its media type and
// external reference. It returns ok=false for any value that is not a
// placeholder, inline content included.
func DecodePlaceholder(value string) (mediaType, ref string, ok bool) {
	if !strings.HasPrefix(value, scheme) {
		return "", "", false
	}
	rest := value[len(scheme):]
	comma := strings.IndexByte(rest, ',')
	if comma < 0 {
		return "", "", false
	}
	mediaType, ok = strings.CutSuffix(rest[:comma], placeholderMarker)
	if !ok {
		return "", "", false
	}
	return mediaType, rest[comma+1:], true
}

// EncodePlaceholder builds the placeholder form. The result is
// self-describing: reconstructing the inline value later needs nothing
// beyond the placeholder itself and the bytes at ref.
func EncodePlaceholder(mediaType, ref string) string {
	return scheme + mediaType + placeholderMarker + "," + ref
}
