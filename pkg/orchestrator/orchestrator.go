package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	internalLoader "github.com/goliatone/go-xmlform/internal/document/loader"
	internalParser "github.com/goliatone/go-xmlform/internal/tree/parser"
	"github.com/goliatone/go-xmlform/pkg/document"
	"github.com/goliatone/go-xmlform/pkg/extract"
	"github.com/goliatone/go-xmlform/pkg/form"
	"github.com/goliatone/go-xmlform/pkg/render"
	"github.com/goliatone/go-xmlform/pkg/renderers/html"
	"github.com/goliatone/go-xmlform/pkg/renderers/tui"
	"github.com/goliatone/go-xmlform/pkg/tree"
)

const defaultRendererName = "html"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom document loader.
func WithLoader(loader document.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom tree parser.
func WithParser(parser tree.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithExtractor injects a custom field extractor.
func WithExtractor(extractor extract.Extractor) Option {
	return func(o *Orchestrator) {
		o.extractor = extractor
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTransformer registers a Transformer that runs on extracted fields
// before they are returned or rendered.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithLogger routes pipeline diagnostics to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates the full pipeline from a source document to
// rendered output. Missing stages fall back to the built-in implementations.
type Orchestrator struct {
	loader          document.Loader
	parser          tree.Parser
	extractor       extract.Extractor
	registry        *render.Registry
	defaultRenderer string
	transformer     Transformer
	logger          *zap.Logger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one pipeline run.
type Request struct {
	// Source identifies where the document lives. Optional when Document is
	// supplied.
	Source document.Source

	// Document bypasses the loader when the caller already holds the payload.
	Document *document.Document

	// Renderer names the renderer to use; empty selects the default.
	Renderer string

	// RenderOptions carries title and prefill values for the renderer.
	RenderOptions render.RenderOptions

	// Subset keeps only the matching fields, applied after the transformer.
	Subset render.FieldSubset
}

// Extract loads, parses and extracts the fields declared by the requested
// document, applying the configured transformer.
func (o *Orchestrator) Extract(ctx context.Context, req Request) ([]form.Field, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}

	root, err := o.parser.Parse(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: parse document: %w", err)
	}

	fields := o.extractor.Extract(root)
	o.logger.Debug("fields extracted",
		zap.String("location", doc.Location()),
		zap.Int("fields", len(fields)),
	)

	if err := o.applyTransformer(ctx, &fields); err != nil {
		return nil, err
	}
	if !req.Subset.Empty() {
		fields = render.ApplySubset(fields, req.Subset)
		o.logger.Debug("fields filtered", zap.Int("fields", len(fields)))
	}
	return fields, nil
}

// Generate runs Extract and hands the fields to the selected renderer,
// returning its output (HTML for the default renderer).
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	fields, err := o.Extract(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, fields, req.RenderOptions)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	o.logger.Debug("form rendered",
		zap.String("renderer", renderer.Name()),
		zap.Int("bytes", len(output)),
	)
	return output, nil
}

// Registry exposes the renderer registry in use.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (document.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return document.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return document.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	o.logger.Debug("document loaded",
		zap.String("location", doc.Location()),
		zap.Int("bytes", len(doc.Raw())),
	)
	return doc, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyTransformer(ctx context.Context, fields *[]form.Field) error {
	if o.transformer == nil {
		return nil
	}
	if err := o.transformer.Transform(ctx, fields); err != nil {
		return fmt.Errorf("orchestrator: transform fields: %w", err)
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		o.loader = internalLoader.New(document.NewLoaderOptions())
	}
	if o.parser == nil {
		o.parser = internalParser.New(tree.NewParserOptions())
	}
	if o.extractor == nil {
		o.extractor = extract.NewExtractor(extract.WithLogger(o.logger))
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		htmlRenderer, err := html.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		o.registry.MustRegister(htmlRenderer)

		tuiRenderer, err := tui.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: tui renderer: %w", err)
			return
		}
		o.registry.MustRegister(tuiRenderer)
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}
