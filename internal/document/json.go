// SPDX-License-Identifier: Apache-2.0

package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// DecodeJSON parses JSON into a Node tree, preserving object key order and
// numeric literals verbatim.
func DecodeJSON(data []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	n, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	return n, nil
}

func decodeValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t.String())
		}
	case string:
		return String(t), nil
	case json.Number:
		return Number(t.String()), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null(), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeObject(dec *json.Decoder) (*Node, error) {
	var members []Member
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string: %v", keyTok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		members = append(members, Member{Key: key, Value: val})
	}
	if _, err := dec.Token(); err != nil { // closing brace
		return nil, err
	}
	return Object(members...), nil
}

func decodeArray(dec *json.Decoder) (*Node, error) {
	var elems []*Node
	for dec.More() {
		el, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		elems = append(elems, el)
	}
	if _, err := dec.Token(); err != nil { // closing bracket
		return nil, err
	}
	return Array(elems...), nil
}

// EncodeJSON serializes the tree back to JSON, keeping object member order.
// With pretty set, output is 2-space indented.
func EncodeJSON(n *Node, pretty bool) ([]byte, error) {
	compact := appendJSON(nil, n)
	if !pretty {
		return compact, nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func appendJSON(buf []byte, n *Node) []byte {
	switch n.kind {
	case KindNull:
		return append(buf, "null"...)
	case KindBool:
		return strconv.AppendBool(buf, n.boolVal)
	case KindNumber:
		return append(buf, n.numVal...)
	case KindString:
		return appendJSONString(buf, n.strVal)
	case KindArray:
		buf = append(buf, '[')
		for i, el := range n.elems {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = appendJSON(buf, el)
		}
		return append(buf, ']')
	case KindObject:
		buf = append(buf, '{')
		for i, m := range n.members {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = appendJSONString(buf, m.Key)
			buf = append(buf, ':')
			buf = appendJSON(buf, m.Value)
		}
		return append(buf, '}')
	}
	return buf
}

// appendJSONString encodes s as a JSON string without HTML escaping.
func appendJSONString(buf []byte, s string) []byte {
	var sb bytes.Buffer
	enc := json.NewEncoder(&sb)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s) // encoding a string cannot fail
	b := sb.Bytes()
	return append(buf, b[:len(b)-1]...) // drop the trailing newline
}
