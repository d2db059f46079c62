// Package extract turns a document tree into the ordered list of form fields
// it declares.
package extract

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-xmlform/internal/extract"
	"github.com/goliatone/go-xmlform/pkg/form"
	"github.com/goliatone/go-xmlform/pkg/tree"
)

// Default attribute names recognised on field-bearing nodes.
const (
	DefaultTypeAttribute = extract.DefaultTypeAttribute
	DefaultNameAttribute = extract.DefaultNameAttribute
)

// ProximityThreshold is the per-axis distance used when pairing radio options
// with nearby text.
const ProximityThreshold = extract.ProximityThreshold

// Extractor converts document trees into field descriptors.
type Extractor interface {
	Extract(root *tree.Node) []form.Field
}

// Option configures the extractor behaviour.
type Option func(*extractorOptions)

type extractorOptions struct {
	logger        *zap.Logger
	typeAttribute string
	nameAttribute string
}

// WithLogger routes diagnostic output (skipped field types) to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(opts *extractorOptions) {
		opts.logger = logger
	}
}

// WithTypeAttribute overrides the attribute that marks field-bearing nodes.
func WithTypeAttribute(name string) Option {
	return func(opts *extractorOptions) {
		opts.typeAttribute = name
	}
}

// WithNameAttribute overrides the attribute read as the field label.
func WithNameAttribute(name string) Option {
	return func(opts *extractorOptions) {
		opts.nameAttribute = name
	}
}

// NewExtractor returns an Extractor backed by the internal implementation.
func NewExtractor(options ...Option) Extractor {
	cfg := extractorOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	return extract.New(extract.Options{
		TypeAttribute: cfg.typeAttribute,
		NameAttribute: cfg.nameAttribute,
		Logger:        cfg.logger,
	})
}

// Fields extracts with the default configuration.
func Fields(root *tree.Node) []form.Field {
	return NewExtractor().Extract(root)
}

// AssociateLabel returns the label the radio-list heuristic assigns to rect
// given the candidate text nodes.
func AssociateLabel(rect *tree.Node, texts []*tree.Node) string {
	return extract.Associate(rect, texts)
}
