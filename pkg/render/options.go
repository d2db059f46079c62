package render

import "strings"

// RenderOptions carry per-request data renderers use without touching the
// extraction pipeline.
type RenderOptions struct {
	// Title heads the rendered form. Renderers fall back to "Generated Form".
	Title string
	// Values pre-populates controls keyed by form.Field.Key. Character box
	// fields consume one rune per box; radio lists match an option label.
	Values map[string]string
	// Hidden lists extra name/value pairs submitted with the form. Only the
	// HTML renderer emits them.
	Hidden map[string]string
}

// DefaultTitle is used when RenderOptions.Title is blank.
const DefaultTitle = "Generated Form"

// HeadingTitle returns the trimmed title or DefaultTitle.
func (o RenderOptions) HeadingTitle() string {
	if title := strings.TrimSpace(o.Title); title != "" {
		return title
	}
	return DefaultTitle
}

// Value returns the prefill value for key.
func (o RenderOptions) Value(key string) (string, bool) {
	if len(o.Values) == 0 {
		return "", false
	}
	v, ok := o.Values[key]
	return v, ok
}
