package xmlform

import (
	internalLoader "github.com/goliatone/go-xmlform/internal/document/loader"
	internalParser "github.com/goliatone/go-xmlform/internal/tree/parser"
	"github.com/goliatone/go-xmlform/pkg/document"
	"github.com/goliatone/go-xmlform/pkg/extract"
	"github.com/goliatone/go-xmlform/pkg/tree"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...document.LoaderOption) document.Loader {
	cfg := document.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewParser constructs a parser backed by the internal implementation.
func NewParser(options ...tree.ParserOption) tree.Parser {
	cfg := tree.NewParserOptions(options...)
	return internalParser.New(cfg)
}

// NewExtractor constructs a field extractor.
func NewExtractor(options ...extract.Option) extract.Extractor {
	return extract.NewExtractor(options...)
}
