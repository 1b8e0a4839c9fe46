// SPDX-License-Identifier: Apache-2.0

package transform

import "fmt"

// DecodeError reports a malformed inline content value, with the logical
// path that was in force at the field.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding content at %q: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// PathEscapeError reports a logical path or placeholder reference that would
// resolve outside the operation root.
type PathEscapeError struct {
	Ref string
}

func (e *PathEscapeError) Error() string {
	return fmt.Sprintf("reference %q escapes the operation root", e.Ref)
}

// MissingContentError reports a placeholder whose external content does not
// exist under the files root.
type MissingContentError struct {
	Ref string
	Err error
}

func (e *MissingContentError) Error() string {
	return fmt.Sprintf("external content %q not found", e.Ref)
}

func (e *MissingContentError) Unwrap() error { return e.Err }
