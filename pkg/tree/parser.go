package tree

import (
	"context"
	"errors"

	"github.com/goliatone/go-xmlform/pkg/document"
)

// ErrMalformed marks documents that could not be parsed. Callers match it
// with errors.Is; the wrapping error carries the parser detail.
var ErrMalformed = errors.New("tree: malformed document")

// Format selects how a document payload is decoded.
type Format string

const (
	// FormatAuto sniffs the payload and falls back to the location extension.
	FormatAuto Format = "auto"
	// FormatXML decodes SVG/XML markup.
	FormatXML Format = "xml"
	// FormatJSON decodes an xml2js-shaped JSON object.
	FormatJSON Format = "json"
	// FormatYAML decodes the same shape expressed as YAML.
	FormatYAML Format = "yaml"
)

// ParseFormat validates a user supplied format name. Empty means auto.
func ParseFormat(raw string) (Format, bool) {
	switch Format(raw) {
	case "", FormatAuto:
		return FormatAuto, true
	case FormatXML, FormatJSON, FormatYAML:
		return Format(raw), true
	default:
		return "", false
	}
}

// Parser converts a Document into its tree representation.
type Parser interface {
	Parse(ctx context.Context, doc document.Document) (*Node, error)
}

// ParserOptions configures parser behaviour.
type ParserOptions struct {
	// Format pins the decoder; FormatAuto sniffs the payload.
	Format Format
	// KeepWhitespace retains leading/trailing whitespace in character data.
	KeepWhitespace bool
}

// ParserOption mutates ParserOptions.
type ParserOption func(*ParserOptions)

// WithFormat pins the decoder used by the parser.
func WithFormat(format Format) ParserOption {
	return func(opts *ParserOptions) {
		if format != "" {
			opts.Format = format
		}
	}
}

// WithKeepWhitespace disables trimming of character data.
func WithKeepWhitespace() ParserOption {
	return func(opts *ParserOptions) {
		opts.KeepWhitespace = true
	}
}

// NewParserOptions applies options over the defaults.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{Format: FormatAuto}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}
