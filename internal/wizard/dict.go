package wizard

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Dict is a string-keyed mapping that remembers insertion order and renders
// to YAML in that order. The assembler and composer use it everywhere the
// output ordering is part of the contract; plain maps would shuffle keys.
type Dict struct {
	keys   []string
	values map[string]interface{}
}

// NewDict returns an empty ordered mapping.
func NewDict() *Dict {
	return &Dict{values: map[string]interface{}{}}
}

// Set stores a value, keeping the key's first-insertion position.
func (d *Dict) Set(key string, value interface{}) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

// Get returns the value for key and whether it exists.
func (d *Dict) Get(key string) (interface{}, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Delete removes a key if present.
func (d *Dict) Delete(key string) {
	if _, ok := d.values[key]; !ok {
		return
	}
	delete(d.values, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (d *Dict) Keys() []string {
	return append([]string(nil), d.keys...)
}

// Len reports the number of stored keys.
func (d *Dict) Len() int {
	return len(d.keys)
}

// MarshalYAML renders the mapping as a block-style YAML node preserving
// insertion order. Nil values render as bare empty scalars rather than
// an explicit "null".
func (d *Dict) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range d.keys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
		valueNode, err := encodeValue(d.values[key])
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode, valueNode)
	}
	return node, nil
}

// FlowList renders as an inline YAML sequence, e.g. [a, b, c]. Used for
// short lists that read better on one line.
type FlowList []interface{}

// MarshalYAML renders the sequence in flow style.
func (l FlowList) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
	for _, item := range l {
		itemNode, err := encodeValue(item)
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content, itemNode)
	}
	return node, nil
}

func encodeValue(v interface{}) (*yaml.Node, error) {
	if v == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: ""}, nil
	}
	node := &yaml.Node{}
	if err := node.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode value %v: %w", v, err)
	}
	return node, nil
}

// SortedDict converts a plain nested mapping into a Dict with keys sorted
// alphabetically at every mapping level. List contents keep their order;
// only mappings are reordered.
func SortedDict(m map[string]interface{}) *Dict {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	d := NewDict()
	for _, k := range keys {
		d.Set(k, sortedValue(m[k]))
	}
	return d
}

func sortedValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		return SortedDict(t)
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, item := range t {
			out[i] = sortedValue(item)
		}
		return out
	default:
		return v
	}
}
