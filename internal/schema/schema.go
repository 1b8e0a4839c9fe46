// SPDX-License-Identifier: Apache-2.0

// Package schema validates a parsed config document against the Ignition
// config schema and dispatches by config version. Validation is structural:
// each supported version family shares one CUE schema, with the per-version
// section layout driving warnings for sections a version does not define.
// Warnings never abort parsing; they are surfaced to the caller.
package schema

import (
	"fmt"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"

	"github.com/ignproj/ignition-coder/internal/document"
)

// Version identifies a supported config version family.
type Version uint8

const (
	V3_0 Version = iota
	V3_1
	V3_2
	V3_3
	V3_4
	V3_5
)

// String returns the major.minor form of the version family.
func (v Version) String() string {
	return [...]string{"3.0", "3.1", "3.2", "3.3", "3.4", "3.5"}[v]
}

// sections lists the top-level sections each version family defines.
// kernelArguments arrived in 3.3.
var sections = map[Version][]string{
	V3_0: {"ignition", "storage", "systemd", "passwd"},
	V3_1: {"ignition", "storage", "systemd", "passwd"},
	V3_2: {"ignition", "storage", "systemd", "passwd"},
	V3_3: {"ignition", "storage", "systemd", "passwd", "kernelArguments"},
	V3_4: {"ignition", "storage", "systemd", "passwd", "kernelArguments"},
	V3_5: {"ignition", "storage", "systemd", "passwd", "kernelArguments"},
}

// Config is a validated, version-dispatched document ready for the walkers.
type Config struct {
	Version Version
	// VersionString is the full declared version, e.g. "3.4.0".
	VersionString string
	Document      *document.Node
}

// ParseError reports a malformed document or an unsupported config version.
type ParseError struct {
	Msg string
	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *ParseError) Unwrap() error { return e.Err }

var (
	compileOnce sync.Once
	schemaValue cue.Value
)

func compiledSchema() cue.Value {
	compileOnce.Do(func() {
		schemaValue = cuecontext.New().CompileString(schemaSource)
	})
	return schemaValue
}

// Validate checks the document against the config schema and resolves its
// version. The returned Config shares the document tree with the caller; the
// warnings list sections the declared version does not define.
func Validate(doc *document.Node) (*Config, []string, error) {
	if doc == nil || doc.Kind() != document.KindObject {
		return nil, nil, &ParseError{Msg: "config document must be an object"}
	}

	ign := doc.Field("ignition")
	if ign == nil {
		return nil, nil, &ParseError{Msg: "missing ignition section"}
	}
	verNode := ign.Field("version")
	if verNode == nil {
		return nil, nil, &ParseError{Msg: "missing ignition.version"}
	}
	verStr, ok := verNode.AsString()
	if !ok {
		return nil, nil, &ParseError{Msg: "ignition.version must be a string"}
	}
	version, ok := versionFor(verStr)
	if !ok {
		return nil, nil, &ParseError{Msg: fmt.Sprintf("unsupported config version %q", verStr)}
	}

	if err := validateCUE(doc); err != nil {
		return nil, nil, &ParseError{Msg: "config does not conform to schema", Err: err}
	}

	var warnings []string
	known := sections[version]
	for _, m := range doc.Members() {
		if !containsString(known, m.Key) {
			warnings = append(warnings, fmt.Sprintf("config version %s: unrecognized section %q", version, m.Key))
		}
	}

	return &Config{Version: version, VersionString: verStr, Document: doc}, warnings, nil
}

func versionFor(s string) (Version, bool) {
	for v := V3_0; v <= V3_5; v++ {
		prefix := v.String()
		if s == prefix || strings.HasPrefix(s, prefix+".") {
			return v, true
		}
	}
	return 0, false
}

func validateCUE(doc *document.Node) error {
	data, err := document.EncodeJSON(doc, false)
	if err != nil {
		return err
	}
	expr, err := cuejson.Extract("config", data)
	if err != nil {
		return err
	}
	sch := compiledSchema()
	if err := sch.Err(); err != nil {
		return err
	}
	unified := sch.Context().BuildExpr(expr).Unify(sch)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%s", strings.TrimSpace(cueerrors.Details(err, nil)))
	}
	return nil
}

func containsString(list []string, s string) bool {
	for _, el := range list {
		if el == s {
			return true
		}
	}
	return false
}
