package catalog

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// omap is an insertion-ordered string-keyed map decoded from a YAML mapping.
// Plain Go maps lose the document order, which the catalog needs so that the
// options offered to the user come out in a stable, intentional order.
type omap[T any] struct {
	keys []string
	vals map[string]T
}

// UnmarshalYAML decodes a mapping node, preserving key order.
func (m *omap[T]) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("expected a mapping node, got %v", value.Kind)
	}
	m.keys = make([]string, 0, len(value.Content)/2)
	m.vals = make(map[string]T, len(value.Content)/2)
	for i := 0; i < len(value.Content); i += 2 {
		var key string
		if err := value.Content[i].Decode(&key); err != nil {
			return fmt.Errorf("invalid mapping key at line %d: %w", value.Content[i].Line, err)
		}
		if _, dup := m.vals[key]; dup {
			return fmt.Errorf("duplicate mapping key %q at line %d", key, value.Content[i].Line)
		}
		var val T
		if err := value.Content[i+1].Decode(&val); err != nil {
			return err
		}
		m.keys = append(m.keys, key)
		m.vals[key] = val
	}
	return nil
}

// Keys returns the keys in document order.
func (m *omap[T]) Keys() []string {
	return m.keys
}

// Get returns the value for a key.
func (m *omap[T]) Get(key string) (T, bool) {
	v, ok := m.vals[key]
	return v, ok
}

// Len returns the number of entries.
func (m *omap[T]) Len() int {
	return len(m.keys)
}
