package extract

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-xmlform/pkg/form"
	"github.com/goliatone/go-xmlform/pkg/tree"
)

// rectBuilder turns the normalised rect and text children of a field node
// into labelled rects.
type rectBuilder func(rects, texts []*tree.Node) []form.Rect

// Extractor walks a document tree and collects field descriptors. It holds no
// per-call state and is safe for concurrent use.
type Extractor struct {
	opts     Options
	builders map[form.FieldType]rectBuilder
}

// New creates an Extractor with the supplied options.
func New(options Options) *Extractor {
	opts := defaultOptions()
	if options.TypeAttribute != "" {
		opts.TypeAttribute = options.TypeAttribute
	}
	if options.NameAttribute != "" {
		opts.NameAttribute = options.NameAttribute
	}
	if options.Logger != nil {
		opts.Logger = options.Logger
	}

	return &Extractor{
		opts: opts,
		builders: map[form.FieldType]rectBuilder{
			form.FieldTypeIso:              pairByIndex,
			form.FieldTypeDate:             pairByIndex,
			form.FieldTypeCursiveSignature: pairByIndex,
			form.FieldTypeRadioList:        pairByAssociation,
		},
	}
}

// Extract returns the fields found under root in pre-order, depth-first,
// left-to-right document order. It never fails: malformed attributes fall
// back to defaults.
func (e *Extractor) Extract(root *tree.Node) []form.Field {
	var fields []form.Field
	e.walk(root, &fields)
	return fields
}

func (e *Extractor) walk(node *tree.Node, fields *[]form.Field) {
	if node == nil {
		return
	}
	if field, ok := e.classify(node); ok {
		*fields = append(*fields, field)
	}
	for _, slot := range node.Slots {
		for _, child := range slot.Nodes() {
			e.walk(child, fields)
		}
	}
}

// classify reports whether node is field-bearing and, when it is, builds the
// field. Nodes without a type attribute or with an unknown type are not
// fields; their subtree is still walked by the caller.
func (e *Extractor) classify(node *tree.Node) (form.Field, bool) {
	raw, ok := node.Attr(e.opts.TypeAttribute)
	if !ok {
		return form.Field{}, false
	}
	fieldType, known := form.ParseFieldType(raw)
	if !known {
		e.opts.Logger.Debug("skipping unrecognised field type",
			zap.String("type", raw),
			zap.String("id", node.AttrValue(idAttribute, "")),
			zap.String("element", node.Name),
		)
		return form.Field{}, false
	}

	build, ok := e.builders[fieldType]
	if !ok {
		return form.Field{}, false
	}

	return form.Field{
		ID:    node.AttrValue(idAttribute, ""),
		Type:  fieldType,
		Label: node.AttrValue(e.opts.NameAttribute, ""),
		Rects: build(node.Children(rectTag), node.Children(textTag)),
	}, true
}

// pairByIndex labels rects[i] with the content of texts[i]; rects beyond the
// available texts stay unlabelled.
func pairByIndex(rects, texts []*tree.Node) []form.Rect {
	out := make([]form.Rect, 0, len(rects))
	for i, rect := range rects {
		r := rectGeometry(rect)
		if i < len(texts) {
			r.Label = tree.Content(texts[i])
		}
		out = append(out, r)
	}
	return out
}

func pairByAssociation(rects, texts []*tree.Node) []form.Rect {
	out := make([]form.Rect, 0, len(rects))
	for _, rect := range rects {
		r := rectGeometry(rect)
		r.Label = Associate(rect, texts)
		out = append(out, r)
	}
	return out
}
