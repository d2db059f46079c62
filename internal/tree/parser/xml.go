package parser

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/goliatone/go-xmlform/pkg/tree"
)

func parseXML(raw []byte, keepWhitespace bool) (*tree.Node, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, fmt.Errorf("xml parser: %w: %v", tree.ErrMalformed, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("xml parser: %w: document has no root element", tree.ErrMalformed)
	}
	return fromElement(root, keepWhitespace), nil
}

func fromElement(el *etree.Element, keepWhitespace bool) *tree.Node {
	node := &tree.Node{Name: el.Tag}
	if len(el.Attr) > 0 {
		node.Attrs = make(map[string]string, len(el.Attr))
		for _, attr := range el.Attr {
			key := attr.Key
			if attr.Space != "" {
				key = attr.Space + ":" + attr.Key
			}
			node.Attrs[key] = attr.Value
		}
	}

	text := el.Text()
	if !keepWhitespace {
		text = strings.TrimSpace(text)
	}
	node.Text = text

	for _, child := range el.ChildElements() {
		node.Append(fromElement(child, keepWhitespace))
	}
	return node
}
