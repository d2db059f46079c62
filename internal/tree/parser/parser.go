package parser

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-xmlform/pkg/document"
	"github.com/goliatone/go-xmlform/pkg/tree"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parser implements tree.Parser, dispatching to the XML or xml2js-shaped
// JSON/YAML decoders.
type Parser struct {
	options tree.ParserOptions
}

var _ tree.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options tree.ParserOptions) tree.Parser {
	if options.Format == "" {
		options.Format = tree.FormatAuto
	}
	return &Parser{options: options}
}

// Parse decodes the document payload into a tree rooted at the document
// element.
func (p *Parser) Parse(ctx context.Context, doc document.Document) (*tree.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := bytes.TrimPrefix(doc.Raw(), utf8BOM)
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errors.New("tree parser: document payload is empty")
	}

	format := p.options.Format
	if format == tree.FormatAuto {
		format = detectFormat(raw, doc.Extension())
	}

	switch format {
	case tree.FormatXML:
		return parseXML(raw, p.options.KeepWhitespace)
	case tree.FormatJSON, tree.FormatYAML:
		return parseYAML(raw, format)
	default:
		return nil, fmt.Errorf("tree parser: unsupported format %q", format)
	}
}

func detectFormat(raw []byte, ext string) tree.Format {
	trimmed := bytes.TrimSpace(raw)
	switch trimmed[0] {
	case '<':
		return tree.FormatXML
	case '{', '[':
		return tree.FormatJSON
	}
	switch ext {
	case ".json":
		return tree.FormatJSON
	case ".yaml", ".yml":
		return tree.FormatYAML
	default:
		return tree.FormatXML
	}
}
