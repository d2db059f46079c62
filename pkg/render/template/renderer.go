package template

import (
	"io"
)

// TemplateRenderer executes a named template against view data. The rendered
// output is returned and also copied to any writers given.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}
