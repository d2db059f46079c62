// Package tui renders extracted fields as an interactive terminal session and
// emits the collected values.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-xmlform/pkg/form"
	"github.com/goliatone/go-xmlform/pkg/render"
)

// Renderer implements render.Renderer for terminal-driven sessions.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	switch r.outputFormat {
	case OutputFormatJSON, OutputFormatYAML, OutputFormatFormURLEncoded, OutputFormatPrettyText:
	default:
		return nil, fmt.Errorf("tui: unsupported output format %q", r.outputFormat)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	case OutputFormatYAML:
		return "application/yaml"
	default:
		return "application/json"
	}
}

// Render walks the fields in order, prompting for every control, and returns
// the collected values keyed by field key. Radio selections are recorded on
// the passed fields; signatures only appear in the output.
func (r *Renderer) Render(ctx context.Context, fields []form.Field, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	if err := r.driver.Info(ctx, r.theme.InfoPrefix+opts.HeadingTitle()); err != nil {
		return nil, err
	}

	state := NewState()
	focus := render.BuildFocus(fields)

	for pos := range fields {
		if err := r.promptField(ctx, fields, pos, focus, state, opts); err != nil {
			return nil, err
		}
	}

	values := state.Values()
	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}

	return r.serialize(state, values)
}

func (r *Renderer) promptField(ctx context.Context, fields []form.Field, pos int, focus *render.FocusRegistry, state *State, opts render.RenderOptions) error {
	field := &fields[pos]
	switch field.Type {
	case form.FieldTypeIso, form.FieldTypeDate:
		return r.promptBoxes(ctx, *field, pos, focus, state, opts)
	case form.FieldTypeRadioList:
		return r.promptRadio(ctx, field, pos, state, opts)
	case form.FieldTypeCursiveSignature:
		return r.promptSignature(ctx, *field, pos, state)
	default:
		return nil
	}
}

// promptBoxes asks for one character per box. An empty answer leaves the box
// blank and advances; BackToken returns to the previous box.
func (r *Renderer) promptBoxes(ctx context.Context, field form.Field, pos int, focus *render.FocusRegistry, state *State, opts render.RenderOptions) error {
	key := field.Key(pos)
	label := field.DisplayLabel()
	keys := focus.Keys(pos)

	boxes := render.Boxes(field)
	byIndex := make(map[int]render.Box, len(boxes))
	glyphs := make([]glyph, 0, len(boxes))
	indexes := make([]int, 0, len(keys))
	for _, box := range boxes {
		byIndex[box.Index] = box
		if box.Kind == render.BoxLiteral {
			glyphs = append(glyphs, glyph{index: box.Index, literal: box.Placeholder})
			continue
		}
		glyphs = append(glyphs, glyph{index: box.Index})
		indexes = append(indexes, box.Index)
	}

	prefill, _ := opts.Value(key)
	buf := newBoxBuffer(indexes, prefill)

	if len(keys) == 0 {
		state.Set(key, label, "")
		return nil
	}
	if err := r.driver.Info(ctx, r.theme.InfoPrefix+label); err != nil {
		return err
	}

	current := keys[0]
	ordinal := map[int]int{}
	for i, k := range keys {
		ordinal[k.Index] = i + 1
	}

	for {
		box := byIndex[current.Index]
		message := fmt.Sprintf("%s%s [%d/%d]", r.theme.PromptPrefix, label, ordinal[current.Index], len(keys))
		if box.Placeholder != "" {
			message += " " + box.Placeholder
		}

		resp, err := r.driver.Input(ctx, InputConfig{
			Message:   message,
			Default:   buf.get(current.Index),
			Help:      "Type one character. Leave empty to skip, " + BackToken + " to go back.",
			Validator: validateChar,
		})
		if err != nil {
			return err
		}

		if resp == BackToken {
			if prev, ok := focus.Prev(current); ok {
				current = prev
			}
			continue
		}
		if err := validateChar(resp); err != nil {
			_ = r.driver.Info(ctx, r.theme.ErrorPrefix+err.Error())
			continue
		}

		buf.set(current.Index, resp)
		next, ok := focus.Next(current)
		if !ok {
			break
		}
		current = next
	}

	state.Set(key, label, buf.join(glyphs))
	return nil
}

func (r *Renderer) promptRadio(ctx context.Context, field *form.Field, pos int, state *State, opts render.RenderOptions) error {
	key := field.Key(pos)
	label := field.DisplayLabel()

	options := field.OptionLabels()
	if len(options) == 0 {
		_ = r.driver.Info(ctx, r.theme.InfoPrefix+label+": no options")
		state.Set(key, label, "")
		return nil
	}

	defaultIdx := field.Selection()
	if v, ok := opts.Value(key); ok && defaultIdx < 0 {
		for i, option := range options {
			if option == v {
				defaultIdx = i
				break
			}
		}
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      r.theme.PromptPrefix + label,
		Options:      options,
		DefaultIndex: defaultIdx,
	})
	if err != nil {
		return err
	}
	selected, err := field.Select(idx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSelection, err)
	}
	state.Set(key, label, selected)
	return nil
}

// promptSignature collects a typed signature and asks for confirmation. A
// declined signature is cleared.
func (r *Renderer) promptSignature(ctx context.Context, field form.Field, pos int, state *State) error {
	key := field.Key(pos)
	label := field.DisplayLabel()

	signature, err := r.driver.Input(ctx, InputConfig{
		Message: r.theme.PromptPrefix + label + " (type your signature)",
		Help:    "Sign here",
	})
	if err != nil {
		return err
	}
	signature = strings.TrimSpace(signature)
	if signature == "" {
		state.Set(key, label, "")
		return nil
	}

	save, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: "Save signature?",
		Default: true,
	})
	if err != nil {
		return err
	}
	if !save {
		signature = ""
	}
	state.Set(key, label, signature)
	return nil
}

func validateChar(s string) error {
	if s == BackToken || utf8.RuneCountInString(s) <= 1 {
		return nil
	}
	return errors.New("enter a single character")
}

func (r *Renderer) serialize(state *State, values map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(state, values)), nil
	case OutputFormatYAML:
		out, err := yaml.Marshal(values)
		if err != nil {
			return nil, fmt.Errorf("tui: encode yaml: %w", err)
		}
		return out, nil
	default:
		out, err := json.Marshal(values)
		if err != nil {
			return nil, fmt.Errorf("tui: encode json: %w", err)
		}
		return out, nil
	}
}

func flattenForm(values map[string]any) string {
	flattened := url.Values{}
	for key, value := range values {
		flattened.Set(key, fmt.Sprint(value))
	}
	return flattened.Encode()
}

// prettyPrint lists values in answer order; keys added by a submit
// transformer follow sorted by name.
func prettyPrint(state *State, values map[string]any) string {
	var b strings.Builder
	seen := make(map[string]struct{}, len(values))
	for _, key := range state.Keys() {
		value, ok := values[key]
		if !ok {
			continue
		}
		seen[key] = struct{}{}
		fmt.Fprintf(&b, "%s (%s)=%v\n", state.Label(key), key, value)
	}
	extra := make([]string, 0, len(values)-len(seen))
	for key := range values {
		if _, ok := seen[key]; !ok {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	for _, key := range extra {
		fmt.Fprintf(&b, "%s=%v\n", key, values[key])
	}
	return b.String()
}
