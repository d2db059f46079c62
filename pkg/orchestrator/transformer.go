package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-xmlform/pkg/form"
)

// Transformer mutates extracted fields before they are returned or rendered.
// Implementations can relabel, reorder or drop fields.
type Transformer interface {
	Transform(ctx context.Context, fields *[]form.Field) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, fields *[]form.Field) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, fields *[]form.Field) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, fields)
}

// PresetTransformer applies declarative patches keyed by field key. The
// document is YAML (JSON is accepted too):
//
//	fields:
//	  dob:
//	    label: Date of birth
//	  consent:
//	    options: ["Yes", "No"]
//	  internal-note:
//	    exclude: true
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Fields map[string]fieldPatch `yaml:"fields"`
}

type fieldPatch struct {
	Label   string   `yaml:"label"`
	Options []string `yaml:"options"`
	Exclude bool     `yaml:"exclude"`
}

// NewPresetTransformer constructs a transformer from raw YAML or JSON bytes.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from fsys.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform applies the patches. Every patched key must match a field.
func (t *PresetTransformer) Transform(ctx context.Context, fields *[]form.Field) error {
	if fields == nil {
		return errors.New("preset transformer: fields are nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	matched := make(map[string]bool, len(t.document.Fields))
	kept := make([]form.Field, 0, len(*fields))
	for pos, field := range *fields {
		key := field.Key(pos)
		patch, ok := t.document.Fields[key]
		if !ok {
			kept = append(kept, field)
			continue
		}
		matched[key] = true
		if patch.Exclude {
			continue
		}
		kept = append(kept, applyFieldPatch(field, patch))
	}

	for key := range t.document.Fields {
		if !matched[key] {
			return fmt.Errorf("preset transformer: field %q not found", key)
		}
	}
	*fields = kept
	return nil
}

func applyFieldPatch(field form.Field, patch fieldPatch) form.Field {
	field = field.Clone()
	if strings.TrimSpace(patch.Label) != "" {
		field.Label = strings.TrimSpace(patch.Label)
	}
	for i, label := range patch.Options {
		if i >= len(field.Rects) {
			break
		}
		if label != "" {
			field.Rects[i].Label = label
		}
	}
	return field
}
