// Package xmlform extracts interactive form fields (character boxes, dates,
// radio lists, signatures) from annotated vector documents and renders them.
package xmlform

import (
	"context"

	"github.com/goliatone/go-xmlform/pkg/document"
	"github.com/goliatone/go-xmlform/pkg/form"
	"github.com/goliatone/go-xmlform/pkg/orchestrator"
	"github.com/goliatone/go-xmlform/pkg/render"
)

// Field aliases form.Field for callers that only import the root package.
type Field = form.Field

// Rect aliases form.Rect.
type Rect = form.Rect

// RenderOptions carries title and prefill values for renderers.
type RenderOptions = render.RenderOptions

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// ExtractFields loads source and returns the fields it declares in document
// order.
func ExtractFields(ctx context.Context, source document.Source, options ...orchestrator.Option) ([]form.Field, error) {
	return orchestrator.New(options...).Extract(ctx, orchestrator.Request{Source: source})
}

// ExtractFieldsFromBytes extracts fields from an in-memory document such as
// pasted markup.
func ExtractFieldsFromBytes(raw []byte, options ...orchestrator.Option) ([]form.Field, error) {
	doc, err := document.NewDocument(document.SourceFromBytes("", raw), raw)
	if err != nil {
		return nil, err
	}
	return orchestrator.New(options...).Extract(context.Background(), orchestrator.Request{Document: &doc})
}

// GenerateHTML loads source, extracts its fields and renders them with the
// HTML renderer.
func GenerateHTML(ctx context.Context, source document.Source, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Source:   source,
		Renderer: "html",
	})
}

// GenerateHTMLFromDocument renders a pre-loaded document, bypassing the
// loader stage.
func GenerateHTMLFromDocument(ctx context.Context, doc document.Document, opts RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Document:      &doc,
		Renderer:      "html",
		RenderOptions: opts,
	})
}
