package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Mapping is an ordered string-keyed mapping node of a configuration tree.
// Key insertion order is preserved through decoding, merging, and marshaling.
// Values are scalars, []any sequences, or nested *Mapping nodes.
type Mapping struct {
	keys   []string
	values map[string]any
}

// NewMapping returns an empty mapping node.
func NewMapping() *Mapping {
	return &Mapping{values: make(map[string]any)}
}

// Len returns the number of keys in the mapping.
func (m *Mapping) Len() int {
	return len(m.keys)
}

// Keys returns a copy of the keys in insertion order.
func (m *Mapping) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Get returns the value stored under key and whether the key is present.
func (m *Mapping) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Set stores value under key. A new key is appended; an existing key keeps
// its original position.
func (m *Mapping) Set(key string, value any) {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Clone returns a deep copy of the mapping and every nested node.
func (m *Mapping) Clone() *Mapping {
	out := &Mapping{
		keys:   make([]string, len(m.keys)),
		values: make(map[string]any, len(m.keys)),
	}
	copy(out.keys, m.keys)
	for k, v := range m.values {
		out.values[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case *Mapping:
		return val.Clone()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

// UnmarshalYAML decodes a YAML mapping node, preserving key order. Duplicate
// keys keep their first position with the later value winning. An explicit
// null document decodes as an empty mapping.
func (m *Mapping) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*m = *NewMapping()
		return nil
	}
	decoded, err := decodeMapping(node)
	if err != nil {
		return err
	}
	*m = *decoded
	return nil
}

// MarshalYAML re-encodes the mapping as an order-preserving YAML node.
func (m *Mapping) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range m.keys {
		keyNode := &yaml.Node{}
		if err := keyNode.Encode(key); err != nil {
			return nil, err
		}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(m.values[key]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode, valueNode)
	}
	return node, nil
}

// MarshalJSON encodes the mapping as a JSON object in insertion order.
func (m *Mapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		valueJSON, err := json.Marshal(m.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(valueJSON)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func decodeNode(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return decodeNode(node.Content[0])
	case yaml.MappingNode:
		return decodeMapping(node)
	case yaml.SequenceNode:
		out := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			value, err := decodeNode(item)
			if err != nil {
				return nil, err
			}
			out = append(out, value)
		}
		return out, nil
	case yaml.AliasNode:
		return decodeNode(node.Alias)
	case yaml.ScalarNode:
		var value any
		if err := node.Decode(&value); err != nil {
			return nil, err
		}
		return value, nil
	default:
		return nil, fmt.Errorf("unsupported YAML node kind %d at line %d", node.Kind, node.Line)
	}
}

func decodeMapping(node *yaml.Node) (*Mapping, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected a mapping node at line %d, got kind %d", node.Line, node.Kind)
	}
	m := NewMapping()
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		var key string
		if err := keyNode.Decode(&key); err != nil {
			return nil, fmt.Errorf("mapping key at line %d: %w", keyNode.Line, err)
		}
		value, err := decodeNode(valueNode)
		if err != nil {
			return nil, err
		}
		m.Set(key, value)
	}
	return m, nil
}

// AsString coerces a scalar configuration value to a string.
func AsString(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case nil:
		return "", fmt.Errorf("value is null, not a string")
	case *Mapping:
		return "", fmt.Errorf("value is a mapping, not a string")
	case []any:
		return "", fmt.Errorf("value is a sequence, not a string")
	default:
		return fmt.Sprint(val), nil
	}
}

// AsStringSlice coerces a sequence of scalar values to strings, preserving
// the sequence order.
func AsStringSlice(v any) ([]string, error) {
	seq, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("value is %T, not a sequence", v)
	}
	out := make([]string, 0, len(seq))
	for i, item := range seq {
		s, err := AsString(item)
		if err != nil {
			return nil, fmt.Errorf("sequence element %d: %w", i, err)
		}
		out = append(out, s)
	}
	return out, nil
}
