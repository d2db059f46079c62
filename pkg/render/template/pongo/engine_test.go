package pongo_test

import (
	"embed"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-xmlform/pkg/render/template/pongo"
	"github.com/goliatone/go-xmlform/pkg/testsupport"
)

//go:embed testdata/templates/*.tpl
var embeddedTemplates embed.FS

func TestEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("legend", map[string]any{"title": "Consent"}, w)
	})
	assertGolden(t, "legend.golden", result, written)

	again, err := engine.RenderTemplate("legend.tpl", map[string]any{"title": "Consent"})
	if err != nil {
		t.Fatalf("render with extension: %v", err)
	}
	if again != result {
		t.Fatalf("cached render mismatch: %q", again)
	}
}

func TestEngine_StructViewsUseJSONNames(t *testing.T) {
	engine := newEngine(t)

	type option struct {
		ControlID string  `json:"control_id"`
		Label     string  `json:"label"`
		Width     float64 `json:"width"`
		Checked   bool    `json:"checked"`
	}
	type field struct {
		Boxes []option `json:"boxes"`
	}
	data := map[string]any{"field": field{Boxes: []option{
		{ControlID: "xf-0-opt-0", Label: "<b>Yes", Width: 24},
		{ControlID: "xf-0-opt-1", Label: "No", Width: 12.5, Checked: true},
	}}}

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("options", data, w)
	})
	assertGolden(t, "options.golden", result, written)
}

func TestEngine_Errors(t *testing.T) {
	engine := newEngine(t)

	if _, err := engine.RenderTemplate("missing", nil); err == nil || !strings.Contains(err.Error(), "missing.tpl") {
		t.Fatalf("expected missing template error, got %v", err)
	}
	if _, err := engine.RenderTemplate("legend", []string{"not", "an", "object"}); err == nil {
		t.Fatal("expected non-object data error")
	}

	var nilEngine *pongo.Engine
	if _, err := nilEngine.RenderTemplate("legend", nil); err == nil {
		t.Fatal("expected nil engine error")
	}
}

func TestNew_RequiresTemplateSource(t *testing.T) {
	if _, err := pongo.New(); err == nil {
		t.Fatal("expected error without template source")
	}
}

func newEngine(t *testing.T) *pongo.Engine {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}

	engine, err := pongo.New(pongo.WithFS(templatesFS))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func assertGolden(t *testing.T, name, result, written string) {
	t.Helper()

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", name))
	if result != want {
		t.Fatalf("render mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render mismatch writer\nwant: %q\n got: %q", want, written)
	}
}
