package html

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded template bundle so callers can start from
// the built-in markup when overriding it.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
