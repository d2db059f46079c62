package orchestrator_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-xmlform/pkg/document"
	"github.com/goliatone/go-xmlform/pkg/form"
	"github.com/goliatone/go-xmlform/pkg/orchestrator"
	"github.com/goliatone/go-xmlform/pkg/render"
	"github.com/goliatone/go-xmlform/pkg/testsupport"
)

var (
	fixturePath = filepath.Join("..", "..", "testdata", "mixed.svg")
	goldenPath  = filepath.Join("..", "..", "testdata", "mixed.fields.json")
)

func TestOrchestrator_ExtractFromFile(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	orch := orchestrator.New(orchestrator.WithLogger(zap.New(core)))

	fields, err := orch.Extract(testsupport.Context(), orchestrator.Request{
		Source: document.SourceFromFile(fixturePath),
	})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	testsupport.WriteGolden(t, goldenPath, fields)
	want := testsupport.MustLoadFields(t, goldenPath)
	if diff := testsupport.CompareFields(want, fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}

	if logs.FilterMessage("fields extracted").Len() != 1 {
		t.Fatalf("expected extraction log, got %v", logs.All())
	}
	if logs.FilterMessage("skipping unrecognised field type").Len() != 1 {
		t.Fatalf("expected skip log for checkbox group, got %v", logs.All())
	}
}

func TestOrchestrator_ExtractFromJSONTree(t *testing.T) {
	orch := orchestrator.New()

	fields, err := orch.Extract(testsupport.Context(), orchestrator.Request{
		Source: document.SourceFromFile(filepath.Join("..", "..", "testdata", "mixed.json")),
	})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	want := testsupport.MustLoadFields(t, goldenPath)
	if diff := testsupport.CompareFields(want, fields); diff != "" {
		t.Fatalf("xml2js tree should extract like the markup (-want +got):\n%s", diff)
	}
}

func TestOrchestrator_GenerateDefaultHTML(t *testing.T) {
	orch := orchestrator.New()

	output, err := orch.Generate(testsupport.Context(), orchestrator.Request{
		Source:        document.SourceFromFile(fixturePath),
		RenderOptions: render.RenderOptions{Title: "Enrolment"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(output)
	for _, fragment := range []string{
		`<h1 class="xmlform-title">Enrolment</h1>`,
		`data-field-key="consent"`,
		`<span>Yes</span>`,
		`<canvas id="xf-3-sig"`,
	} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected %q in output:\n%s", fragment, html)
		}
	}
	if diff := orch.Registry().List(); len(diff) != 2 {
		t.Fatalf("default registry: %v", diff)
	}
}

type recordingRenderer struct {
	fields []form.Field
	opts   render.RenderOptions
}

func (r *recordingRenderer) Name() string        { return "record" }
func (r *recordingRenderer) ContentType() string { return "text/plain" }
func (r *recordingRenderer) Render(_ context.Context, fields []form.Field, opts render.RenderOptions) ([]byte, error) {
	r.fields, r.opts = fields, opts
	return []byte("ok"), nil
}

func TestOrchestrator_DocumentBypassesLoader(t *testing.T) {
	rec := &recordingRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(rec)

	doc := testsupport.InlineDocument(t, `<svg><g id="a" fdtType="iso"><rect/></g></svg>`)
	orch := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer("record"),
	)

	out, err := orch.Generate(testsupport.Context(), orchestrator.Request{
		Document:      &doc,
		RenderOptions: render.RenderOptions{Values: map[string]string{"a": "Z"}},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(out) != "ok" || len(rec.fields) != 1 || rec.opts.Values["a"] != "Z" {
		t.Fatalf("unexpected render call: %s %+v %+v", out, rec.fields, rec.opts)
	}
}

func TestOrchestrator_RendererSelection(t *testing.T) {
	rec := &recordingRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(rec)
	doc := testsupport.InlineDocument(t, `<svg/>`)

	// An unknown default falls back to the first registered renderer.
	orch := orchestrator.New(orchestrator.WithRegistry(registry), orchestrator.WithDefaultRenderer("missing"))
	if _, err := orch.Generate(testsupport.Context(), orchestrator.Request{Document: &doc}); err != nil {
		t.Fatalf("fallback renderer: %v", err)
	}

	_, err := orch.Generate(testsupport.Context(), orchestrator.Request{Document: &doc, Renderer: "pdf"})
	if !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}

	empty := orchestrator.New(orchestrator.WithRegistry(render.NewRegistry()))
	if _, err := empty.Generate(testsupport.Context(), orchestrator.Request{Document: &doc}); err == nil {
		t.Fatal("expected error with empty registry")
	}
}

func TestOrchestrator_Errors(t *testing.T) {
	orch := orchestrator.New()

	if _, err := orch.Extract(testsupport.Context(), orchestrator.Request{}); err == nil {
		t.Fatal("expected error without source")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := orch.Extract(ctx, orchestrator.Request{Source: document.SourceFromFile(fixturePath)}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	if _, err := orch.Extract(testsupport.Context(), orchestrator.Request{
		Source: document.SourceFromFile(filepath.Join("testdata", "missing.svg")),
	}); err == nil {
		t.Fatal("expected load error")
	}

	doc := testsupport.InlineDocument(t, `<svg><rect x=1/></svg>`)
	if _, err := orch.Extract(testsupport.Context(), orchestrator.Request{Document: &doc}); err == nil ||
		!strings.Contains(err.Error(), "orchestrator: parse document") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestOrchestrator_TransformerFunc(t *testing.T) {
	doc := testsupport.InlineDocument(t, `<svg><g id="a" fdtType="iso"/><g id="b" fdtType="date"/></svg>`)
	orch := orchestrator.New(orchestrator.WithTransformer(orchestrator.TransformerFunc(
		func(_ context.Context, fields *[]form.Field) error {
			*fields = (*fields)[1:]
			return nil
		},
	)))

	fields, err := orch.Extract(testsupport.Context(), orchestrator.Request{Document: &doc})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(fields) != 1 || fields[0].ID != "b" {
		t.Fatalf("unexpected fields: %+v", fields)
	}

	failing := orchestrator.New(orchestrator.WithTransformer(orchestrator.TransformerFunc(
		func(context.Context, *[]form.Field) error { return errors.New("boom") },
	)))
	if _, err := failing.Extract(testsupport.Context(), orchestrator.Request{Document: &doc}); err == nil {
		t.Fatal("expected transformer error")
	}
}

func TestPresetTransformer(t *testing.T) {
	fsys := fstest.MapFS{
		"preset.yaml": &fstest.MapFile{Data: []byte(`
fields:
  consent:
    label: Do you agree?
    options: ["Agree", ""]
  sig:
    exclude: true
`)},
	}
	preset, err := orchestrator.NewPresetTransformerFromFS(fsys, "preset.yaml")
	if err != nil {
		t.Fatalf("load preset: %v", err)
	}

	orch := orchestrator.New(orchestrator.WithTransformer(preset))
	fields, err := orch.Extract(testsupport.Context(), orchestrator.Request{Source: document.SourceFromFile(fixturePath)})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(fields) != 3 {
		t.Fatalf("expected signature to be excluded, got %d fields", len(fields))
	}
	consent := fields[2]
	if consent.Label != "Do you agree?" || consent.Rects[0].Label != "Agree" || consent.Rects[1].Label != "No" {
		t.Fatalf("unexpected patch result: %+v", consent)
	}

	unknown, err := orchestrator.NewPresetTransformer([]byte(`{"fields": {"nope": {"label": "x"}}}`))
	if err != nil {
		t.Fatalf("json preset: %v", err)
	}
	original := []form.Field{{ID: "a", Type: form.FieldTypeIso}}
	if err := unknown.Transform(testsupport.Context(), &original); err == nil {
		t.Fatal("expected unknown field error")
	}
	if len(original) != 1 {
		t.Fatal("failed transform must leave fields untouched")
	}

	if _, err := orchestrator.NewPresetTransformer([]byte("  ")); err == nil {
		t.Fatal("expected empty document error")
	}
}

func TestOrchestrator_Subset(t *testing.T) {
	orch := orchestrator.New()

	fields, err := orch.Extract(testsupport.Context(), orchestrator.Request{
		Source: document.SourceFromFile(fixturePath),
		Subset: render.ParseSubset("sig,radioList"),
	})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(fields) != 2 || fields[0].ID != "consent" || fields[1].ID != "sig" {
		t.Fatalf("unexpected subset result: %+v", fields)
	}
}
