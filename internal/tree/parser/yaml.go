package parser

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-xmlform/pkg/tree"
)

// xml2js conventions: "$" holds attributes, "_" or "#text" holds character
// data, every other key is a named child holding an object, an array of
// objects, or a bare string.
const (
	attrsKey    = "$"
	textKey     = "_"
	altTextKey  = "#text"
	nullYAMLTag = "!!null"
)

func parseYAML(raw []byte, format tree.Format) (*tree.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%s parser: %w: %v", format, tree.ErrMalformed, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("%s parser: %w: document is empty", format, tree.ErrMalformed)
	}

	top := resolveAlias(doc.Content[0])
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s parser: %w: top level must be an object", format, tree.ErrMalformed)
	}

	// Unwrap the {"svg": {...}} envelope produced by xml2js.
	if len(top.Content) == 2 && top.Content[0].Value != attrsKey {
		if value := resolveAlias(top.Content[1]); value.Kind == yaml.MappingNode {
			return fromYAML(top.Content[0].Value, value), nil
		}
	}
	return fromYAML("", top), nil
}

func fromYAML(name string, value *yaml.Node) *tree.Node {
	value = resolveAlias(value)
	if value == nil {
		return nil
	}

	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == nullYAMLTag {
			return nil
		}
		return &tree.Node{Name: name, Text: value.Value}
	case yaml.SequenceNode:
		node := &tree.Node{Name: name}
		node.Slots = append(node.Slots, tree.Slot{Name: name, Many: sequence(name, value)})
		return node
	case yaml.MappingNode:
		return fromMapping(name, value)
	default:
		return nil
	}
}

func fromMapping(name string, value *yaml.Node) *tree.Node {
	node := &tree.Node{Name: name}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i].Value
		child := resolveAlias(value.Content[i+1])

		switch key {
		case attrsKey:
			node.Attrs = attributes(child)
		case textKey, altTextKey:
			if child.Kind == yaml.ScalarNode {
				node.Text = child.Value
			}
		default:
			if child.Kind == yaml.SequenceNode {
				node.Slots = append(node.Slots, tree.Slot{Name: key, Many: sequence(key, child)})
				continue
			}
			node.Slots = append(node.Slots, tree.Slot{Name: key, Node: fromYAML(key, child)})
		}
	}
	return node
}

func sequence(name string, value *yaml.Node) []*tree.Node {
	nodes := make([]*tree.Node, 0, len(value.Content))
	for _, item := range value.Content {
		nodes = append(nodes, fromYAML(name, item))
	}
	return nodes
}

func attributes(value *yaml.Node) map[string]string {
	if value == nil || value.Kind != yaml.MappingNode {
		return nil
	}
	attrs := make(map[string]string, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		v := resolveAlias(value.Content[i+1])
		if v == nil || v.Kind != yaml.ScalarNode {
			continue
		}
		attrs[value.Content[i].Value] = v.Value
	}
	return attrs
}

func resolveAlias(value *yaml.Node) *yaml.Node {
	for value != nil && value.Kind == yaml.AliasNode {
		value = value.Alias
	}
	return value
}
