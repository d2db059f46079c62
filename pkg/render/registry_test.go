package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-xmlform/pkg/form"
	"github.com/goliatone/go-xmlform/pkg/render"
)

type namedRenderer struct{ name string }

func (r namedRenderer) Name() string        { return r.name }
func (r namedRenderer) ContentType() string { return "text/plain" }
func (r namedRenderer) Render(context.Context, []form.Field, render.RenderOptions) ([]byte, error) {
	return []byte(r.name), nil
}

func TestRegistry(t *testing.T) {
	reg := render.NewRegistry()
	reg.MustRegister(namedRenderer{name: "tui"})
	reg.MustRegister(namedRenderer{name: "html"})

	if err := reg.Register(namedRenderer{name: "html"}); err == nil {
		t.Fatal("expected duplicate registration error")
	}
	if err := reg.Register(nil); err == nil {
		t.Fatal("expected nil renderer error")
	}
	if err := reg.Register(namedRenderer{}); err == nil {
		t.Fatal("expected empty name error")
	}

	if diff := cmp.Diff([]string{"html", "tui"}, reg.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if !reg.Has("tui") || reg.Has("preact") {
		t.Fatal("unexpected Has results")
	}

	got, err := reg.Get("html")
	if err != nil || got.Name() != "html" {
		t.Fatalf("get html: %v %v", got, err)
	}
	if _, err := reg.Get("pdf"); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
}

func TestRenderOptions(t *testing.T) {
	var opts render.RenderOptions
	if opts.HeadingTitle() != render.DefaultTitle {
		t.Fatalf("default title: %q", opts.HeadingTitle())
	}
	if _, ok := opts.Value("field-0"); ok {
		t.Fatal("nil values should miss")
	}

	opts = render.RenderOptions{Title: "  Claim  ", Values: map[string]string{"dob": "01012000"}}
	if opts.HeadingTitle() != "Claim" {
		t.Fatalf("title: %q", opts.HeadingTitle())
	}
	if v, ok := opts.Value("dob"); !ok || v != "01012000" {
		t.Fatalf("value: %q %v", v, ok)
	}
}
