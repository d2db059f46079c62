package render

import (
	"context"

	"github.com/goliatone/go-xmlform/pkg/form"
)

// Renderer turns extracted fields into an interactive artefact (HTML markup,
// a terminal session transcript, ...). Render may record selections on the
// passed fields, for example SelectedOption on radio lists.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, fields []form.Field, options RenderOptions) ([]byte, error)
}
