// SPDX-License-Identifier: Apache-2.0

package document

import (
	"fmt"
	"strconv"

	"github.com/goccy/go-yaml"
)

// DecodeYAML parses a YAML document into a Node tree. Mapping key order is
// preserved via goccy's ordered-map decoding.
func DecodeYAML(data []byte) (*Node, error) {
	var v interface{}
	if err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("unmarshaling YAML: %w", err)
	}
	return fromYAMLValue(v)
}

func fromYAMLValue(v interface{}) (*Node, error) {
	switch t := v.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case int:
		return Number(strconv.FormatInt(int64(t), 10)), nil
	case int64:
		return Number(strconv.FormatInt(t, 10)), nil
	case uint64:
		return Number(strconv.FormatUint(t, 10)), nil
	case float64:
		return Number(strconv.FormatFloat(t, 'g', -1, 64)), nil
	case []interface{}:
		elems := make([]*Node, 0, len(t))
		for _, el := range t {
			n, err := fromYAMLValue(el)
			if err != nil {
				return nil, err
			}
			elems = append(elems, n)
		}
		return Array(elems...), nil
	case yaml.MapSlice:
		members := make([]Member, 0, len(t))
		for _, item := range t {
			key, ok := item.Key.(string)
			if !ok {
				key = fmt.Sprintf("%v", item.Key)
			}
			n, err := fromYAMLValue(item.Value)
			if err != nil {
				return nil, err
			}
			members = append(members, Member{Key: key, Value: n})
		}
		return Object(members...), nil
	default:
		return nil, fmt.Errorf("unsupported YAML value of type %T", v)
	}
}

// EncodeYAML serializes the tree to YAML, keeping mapping key order.
func EncodeYAML(n *Node) ([]byte, error) {
	v, err := toYAMLValue(n)
	if err != nil {
		return nil, err
	}
	out, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshaling YAML: %w", err)
	}
	return out, nil
}

func toYAMLValue(n *Node) (interface{}, error) {
	switch n.kind {
	case KindNull:
		return nil, nil
	case KindBool:
		return n.boolVal, nil
	case KindString:
		return n.strVal, nil
	case KindNumber:
		if i, err := strconv.ParseInt(n.numVal, 10, 64); err == nil {
			return i, nil
		}
		if u, err := strconv.ParseUint(n.numVal, 10, 64); err == nil {
			return u, nil
		}
		f, err := strconv.ParseFloat(n.numVal, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid numeric literal %q", n.numVal)
		}
		return f, nil
	case KindArray:
		elems := make([]interface{}, 0, len(n.elems))
		for _, el := range n.elems {
			v, err := toYAMLValue(el)
			if err != nil {
				return nil, err
			}
			elems = append(elems, v)
		}
		return elems, nil
	case KindObject:
		ms := make(yaml.MapSlice, 0, len(n.members))
		for _, m := range n.members {
			v, err := toYAMLValue(m.Value)
			if err != nil {
				return nil, err
			}
			ms = append(ms, yaml.MapItem{Key: m.Key, Value: v})
		}
		return ms, nil
	}
	return nil, fmt.Errorf("unsupported node kind %s", n.kind)
}
