package reader

import (
	"strconv"

	"gopkg.in/yaml.v3"
)

// mapEntry is one key/value pair of a YAML mapping, in document order.
type mapEntry struct {
	key  string
	node *yaml.Node
}

// mappingEntries flattens a mapping node into ordered key/value pairs.
// Non-mapping nodes yield nothing.
func mappingEntries(node *yaml.Node) []mapEntry {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	entries := make([]mapEntry, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		entries = append(entries, mapEntry{key: node.Content[i].Value, node: node.Content[i+1]})
	}
	return entries
}

// scalarValue returns a scalar node's string value, or "".
func scalarValue(node *yaml.Node) string {
	if node == nil || node.Kind != yaml.ScalarNode {
		return ""
	}
	return node.Value
}

// stringList reads a scalar or sequence node as a list of strings.
// A bare scalar is a single-element list.
func stringList(node *yaml.Node) []string {
	if node == nil {
		return nil
	}
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Value == "" {
			return nil
		}
		return []string{node.Value}
	case yaml.SequenceNode:
		values := make([]string, 0, len(node.Content))
		for _, child := range node.Content {
			values = append(values, scalarValue(child))
		}
		return values
	}
	return nil
}

func boolValue(node *yaml.Node, fallback bool) bool {
	value, err := strconv.ParseBool(scalarValue(node))
	if err != nil {
		return fallback
	}
	return value
}

func intValue(node *yaml.Node) int {
	value, err := strconv.Atoi(scalarValue(node))
	if err != nil {
		return 0
	}
	return value
}
