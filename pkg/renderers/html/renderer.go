// Package html renders extracted fields as a self-contained HTML form:
// single-character boxes with focus hand-off, date separators, radio groups
// and a signature canvas.
package html

import (
	"context"
	"fmt"
	stdhtml "html"
	"io/fs"
	"os"
	"strconv"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-xmlform/pkg/form"
	"github.com/goliatone/go-xmlform/pkg/render"
	rendertemplate "github.com/goliatone/go-xmlform/pkg/render/template"
	"github.com/goliatone/go-xmlform/pkg/render/template/pongo"
)

const formTemplate = "templates/form"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	policy           *bluemonday.Policy
	script           bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must provide templates/form.tpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithPolicy replaces the strict label sanitiser.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

// WithoutScript omits the inline focus and signature script.
func WithoutScript() Option {
	return func(cfg *config) {
		cfg.script = false
	}
}

type Renderer struct {
	templates rendertemplate.TemplateRenderer
	policy    *bluemonday.Policy
	script    bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		script:     true,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.policy == nil {
		cfg.policy = bluemonday.StrictPolicy()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(pongo.WithFS(cfg.templateFS))
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates: renderer,
		policy:    cfg.policy,
		script:    cfg.script,
	}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the form markup. Radio values supplied through
// options.Values are recorded on the matching field via Select.
func (r *Renderer) Render(ctx context.Context, fields []form.Field, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}

	focus := render.BuildFocus(fields)
	views := make([]fieldView, 0, len(fields))
	for pos := range fields {
		views = append(views, r.buildField(fields, pos, focus, options))
	}

	result, err := r.templates.RenderTemplate(formTemplate, map[string]any{
		"title":  r.clean(options.HeadingTitle()),
		"fields": views,
		"hidden": options.HiddenFields(),
		"script": r.script,
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(result), nil
}

type fieldView struct {
	Key   string    `json:"key"`
	Type  string    `json:"type"`
	Label string    `json:"label"`
	Group string    `json:"group"`
	Boxes []boxView `json:"boxes"`
}

type boxView struct {
	ControlID    string  `json:"control_id"`
	Name         string  `json:"name"`
	Kind         string  `json:"kind"`
	Placeholder  string  `json:"placeholder"`
	Label        string  `json:"label"`
	Value        string  `json:"value"`
	Next         string  `json:"next"`
	Prev         string  `json:"prev"`
	Checked      bool    `json:"checked"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	CanvasWidth  string  `json:"canvas_width"`
	CanvasHeight string  `json:"canvas_height"`
}

func (r *Renderer) buildField(fields []form.Field, pos int, focus *render.FocusRegistry, options render.RenderOptions) fieldView {
	field := &fields[pos]
	key := field.Key(pos)
	value, hasValue := options.Value(key)

	if hasValue && field.Type == form.FieldTypeRadioList {
		for i := range field.Rects {
			if field.OptionLabel(i) == value {
				_, _ = field.Select(i)
				break
			}
		}
	}

	view := fieldView{
		Key:   key,
		Type:  string(field.Type),
		Label: r.clean(field.Label),
		Group: fmt.Sprintf("xf-%d", pos),
	}

	chars := prefill(field.Type, value)
	for _, box := range render.Boxes(*field) {
		focusKey := render.FocusKey{Field: pos, Index: box.Index}
		bv := boxView{
			ControlID:   focusKey.ControlID(),
			Name:        key,
			Kind:        string(box.Kind),
			Placeholder: box.Placeholder,
			Label:       r.clean(box.Label),
			Width:       box.Width,
			Height:      box.Height,
		}
		switch box.Kind {
		case render.BoxChar:
			bv.Name = key + "[" + strconv.Itoa(box.Index) + "]"
			if len(chars) > 0 {
				bv.Value, chars = string(chars[0]), chars[1:]
			}
			if next, ok := focus.Next(focusKey); ok {
				bv.Next = next.ControlID()
			}
			if prev, ok := focus.Prev(focusKey); ok {
				bv.Prev = prev.ControlID()
			}
		case render.BoxOption:
			bv.ControlID = fmt.Sprintf("%s-opt-%d", view.Group, box.Index)
			bv.Checked = field.IsSelected(box.Index)
		case render.BoxSignature:
			bv.ControlID = view.Group + "-sig"
			bv.CanvasWidth = strconv.FormatFloat(box.Width, 'f', -1, 64)
			bv.CanvasHeight = strconv.FormatFloat(box.Height, 'f', -1, 64)
		}
		view.Boxes = append(view.Boxes, bv)
	}
	return view
}

// prefill splits a value into one rune per character box. Date separators in
// the value are ignored since the layout supplies them.
func prefill(fieldType form.FieldType, value string) []rune {
	if value == "" {
		return nil
	}
	runes := make([]rune, 0, len(value))
	for _, r := range value {
		if fieldType == form.FieldTypeDate && r == '/' {
			continue
		}
		runes = append(runes, r)
	}
	return runes
}

// clean strips markup from document-supplied text. The policy escapes what it
// keeps, so the result is unescaped again before template autoescaping.
func (r *Renderer) clean(s string) string {
	if s == "" {
		return ""
	}
	return stdhtml.UnescapeString(r.policy.Sanitize(s))
}
