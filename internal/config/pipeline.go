package config

import (
	"go.uber.org/zap"

	internalLoader "github.com/goliatone/go-xmlform/internal/document/loader"
	internalParser "github.com/goliatone/go-xmlform/internal/tree/parser"
	"github.com/goliatone/go-xmlform/pkg/document"
	"github.com/goliatone/go-xmlform/pkg/extract"
	"github.com/goliatone/go-xmlform/pkg/orchestrator"
	"github.com/goliatone/go-xmlform/pkg/tree"
)

// Pipeline translates the settings into orchestrator options. An empty
// format falls back to InputFormat.
func (c *Config) Pipeline(logger *zap.Logger, format tree.Format) []orchestrator.Option {
	if logger == nil {
		logger = zap.NewNop()
	}
	if format == "" {
		format = c.Format()
	}

	loaderOpts := []document.LoaderOption{}
	if c.AllowHTTP {
		loaderOpts = append(loaderOpts, document.WithHTTPFallback(c.HTTPTimeout))
	}

	return []orchestrator.Option{
		orchestrator.WithLogger(logger),
		orchestrator.WithLoader(internalLoader.New(document.NewLoaderOptions(loaderOpts...))),
		orchestrator.WithParser(internalParser.New(tree.NewParserOptions(tree.WithFormat(format)))),
		orchestrator.WithExtractor(extract.NewExtractor(
			extract.WithLogger(logger),
			extract.WithTypeAttribute(c.TypeAttribute),
			extract.WithNameAttribute(c.NameAttribute),
		)),
		orchestrator.WithDefaultRenderer(c.Renderer),
	}
}
