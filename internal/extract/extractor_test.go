package extract

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-xmlform/internal/tree/parser"
	"github.com/goliatone/go-xmlform/pkg/document"
	"github.com/goliatone/go-xmlform/pkg/form"
	"github.com/goliatone/go-xmlform/pkg/tree"
)

func el(name string, attrs map[string]string, children ...*tree.Node) *tree.Node {
	n := tree.NewNode(name, attrs)
	for _, child := range children {
		n.Append(child)
	}
	return n
}

func text(attrs map[string]string, content string) *tree.Node {
	n := tree.NewNode("text", attrs)
	n.Text = content
	return n
}

func parseSVG(t *testing.T, raw string) *tree.Node {
	t.Helper()
	doc := document.MustNewDocument(document.SourceFromBytes("form.svg", []byte(raw)), []byte(raw))
	root, err := parser.New(tree.NewParserOptions()).Parse(context.Background(), doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return root
}

func TestExtract_IsoDefaults(t *testing.T) {
	root := parseSVG(t, `<svg><g fdtType="iso" fdtFieldName="Name" id="f1"><rect x="10" y="20"/><text>A</text></g></svg>`)

	got := New(Options{}).Extract(root)
	want := []form.Field{{
		ID:    "f1",
		Type:  form.FieldTypeIso,
		Label: "Name",
		Rects: []form.Rect{{X: 10, Y: 20, Width: 24, Height: 24, Label: "A"}},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_IsoWithoutTexts(t *testing.T) {
	root := parseSVG(t, `<svg><g fdtType="iso" id="code"><rect/><rect/></g></svg>`)

	got := New(Options{}).Extract(root)
	want := []form.Field{{
		ID:   "code",
		Type: form.FieldTypeIso,
		Rects: []form.Rect{
			{Width: 24, Height: 24},
			{Width: 24, Height: 24},
		},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_RadioProximity(t *testing.T) {
	root := parseSVG(t, `<svg><g fdtType="radioList" id="r"><rect x="0" y="0"/><text x="10" y="10">Yes</text></g></svg>`)

	fields := New(Options{}).Extract(root)
	if len(fields) != 1 {
		t.Fatalf("expected one field, got %d", len(fields))
	}
	if got := fields[0].Rects[0].Label; got != "Yes" {
		t.Fatalf("label: %q", got)
	}
	if fields[0].Label != "" {
		t.Fatalf("missing name attribute should yield empty label, got %q", fields[0].Label)
	}
}

func TestExtract_RadioIdentifier(t *testing.T) {
	root := parseSVG(t, `<svg><g fdtType="radioList"><rect id="opt1" x="0" y="0"/><text id="opt1-label" x="500" y="500">Yes</text></g></svg>`)

	fields := New(Options{}).Extract(root)
	if got := fields[0].Rects[0].Label; got != "Yes" {
		t.Fatalf("label: %q", got)
	}
}

func TestExtract_RadioNestedLabels(t *testing.T) {
	root := parseSVG(t, `<?xml version="1.0"?>
<svg xmlns="http://www.w3.org/2000/svg">
  <g id="radioGroup" fdtType="radioList" fdtFieldName="Options">
    <rect id="option1" x="50" y="50" width="20" height="20"/>
    <text id="label1" x="80" y="60"><tspan>Option 1</tspan></text>
    <rect id="option2" x="50" y="80" width="20" height="20"/>
    <text id="label2" x="80" y="90">Option 2</text>
  </g>
</svg>`)

	fields := New(Options{}).Extract(root)
	want := []form.Rect{
		{X: 50, Y: 50, Width: 20, Height: 20, Label: "Option 1"},
		{X: 50, Y: 80, Width: 20, Height: 20, Label: "Option 1"},
	}
	// option2 is within proximity of label1, which precedes label2.
	if diff := cmp.Diff(want, fields[0].Rects); diff != "" {
		t.Fatalf("rects mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_DocumentOrder(t *testing.T) {
	root := el("svg", nil,
		el("g", map[string]string{"fdtType": "date", "id": "a"},
			el("g", map[string]string{"fdtType": "iso", "id": "b"}),
		),
		el("g", map[string]string{"id": "wrapper"},
			el("g", map[string]string{"fdtType": "cursiveSignature", "id": "c"}),
		),
		el("g", map[string]string{"fdtType": "radioList", "id": "d"}),
	)

	var ids []string
	for _, f := range New(Options{}).Extract(root) {
		ids = append(ids, f.ID)
	}
	if diff := cmp.Diff([]string{"a", "b", "c", "d"}, ids); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_SkipsUnknownTypesButWalksSubtree(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	root := el("svg", nil,
		el("g", map[string]string{"fdtType": "checkbox", "id": "x"},
			el("g", map[string]string{"fdtType": "iso", "id": "inner"}),
		),
		el("g", map[string]string{"fdtType": "ISO", "id": "case"}),
	)

	fields := New(Options{Logger: zap.New(core)}).Extract(root)
	if len(fields) != 1 || fields[0].ID != "inner" {
		t.Fatalf("unexpected fields: %+v", fields)
	}
	if got := logs.FilterMessage("skipping unrecognised field type").Len(); got != 2 {
		t.Fatalf("expected 2 skip logs, got %d", got)
	}
}

func TestExtract_RectCountMatchesChildren(t *testing.T) {
	root := el("svg", nil,
		el("g", map[string]string{"fdtType": "date"},
			el("rect", nil), el("rect", nil), el("rect", nil),
			text(nil, "1"),
		),
		el("g", map[string]string{"fdtType": "iso"}),
	)

	fields := New(Options{}).Extract(root)
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	date := fields[0]
	if len(date.Rects) != 3 {
		t.Fatalf("expected 3 rects, got %d", len(date.Rects))
	}
	labels := []string{date.Rects[0].Label, date.Rects[1].Label, date.Rects[2].Label}
	if diff := cmp.Diff([]string{"1", "", ""}, labels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
	if fields[1].Rects == nil || len(fields[1].Rects) != 0 {
		t.Fatalf("expected empty non-nil rects, got %#v", fields[1].Rects)
	}
}

func TestExtract_PositionalPairingIgnoresGeometry(t *testing.T) {
	root := el("g", map[string]string{"fdtType": "cursiveSignature"},
		el("rect", map[string]string{"x": "0", "y": "0"}),
		el("rect", map[string]string{"x": "900", "y": "900"}),
		text(map[string]string{"x": "900", "y": "900"}, "first"),
		text(map[string]string{"x": "0", "y": "0"}, "second"),
	)

	rects := New(Options{}).Extract(root)[0].Rects
	if rects[0].Label != "first" || rects[1].Label != "second" {
		t.Fatalf("unexpected labels: %+v", rects)
	}
}

func TestExtract_GeometryFallbacks(t *testing.T) {
	root := el("g", map[string]string{"fdtType": "iso"},
		el("rect", map[string]string{"x": "1.5", "y": "abc", "width": "", "height": "0"}),
		el("rect", map[string]string{"width": "NaN", "height": "12.25"}),
	)

	rects := New(Options{}).Extract(root)[0].Rects
	want := []form.Rect{
		{X: 1.5, Y: 0, Width: 24, Height: 0},
		{X: 0, Y: 0, Width: 24, Height: 12.25},
	}
	if diff := cmp.Diff(want, rects); diff != "" {
		t.Fatalf("rects mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_SingleNodeSlotsNormalised(t *testing.T) {
	group := tree.NewNode("g", map[string]string{"fdtType": "iso"})
	group.Slots = []tree.Slot{
		{Name: "rect", Node: tree.NewNode("rect", map[string]string{"x": "4"})},
		{Name: "text", Node: text(nil, "Z")},
	}
	root := &tree.Node{Name: "svg", Slots: []tree.Slot{{Name: "g", Node: group}}}

	fields := New(Options{}).Extract(root)
	want := []form.Rect{{X: 4, Width: 24, Height: 24, Label: "Z"}}
	if diff := cmp.Diff(want, fields[0].Rects); diff != "" {
		t.Fatalf("rects mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_CustomAttributes(t *testing.T) {
	root := el("svg", nil,
		el("g", map[string]string{"data-type": "iso", "data-name": "Custom", "fdtType": "date"}),
	)

	fields := New(Options{TypeAttribute: "data-type", NameAttribute: "data-name"}).Extract(root)
	if len(fields) != 1 || fields[0].Type != form.FieldTypeIso || fields[0].Label != "Custom" {
		t.Fatalf("unexpected fields: %+v", fields)
	}
}

func TestExtract_EmptyAndNilRoots(t *testing.T) {
	e := New(Options{})
	if got := e.Extract(nil); len(got) != 0 {
		t.Fatalf("nil root: %+v", got)
	}
	if got := e.Extract(el("svg", nil)); len(got) != 0 {
		t.Fatalf("leaf root: %+v", got)
	}
	root := el("svg", nil, el("g", nil))
	root.Slots = append(root.Slots, tree.Slot{Name: "empty"})
	if got := e.Extract(root); len(got) != 0 {
		t.Fatalf("empty slot: %+v", got)
	}
}

func TestExtract_DeterministicAndIdempotent(t *testing.T) {
	root := parseSVG(t, `<svg>
  <g fdtType="date" fdtFieldName="Birth"><rect/><rect/><text>D</text><text>D</text></g>
  <g fdtType="radioList"><rect x="0" y="0"/><text x="5" y="5">A</text></g>
</svg>`)
	e := New(Options{})

	first := e.Extract(root)
	second := e.Extract(root)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("repeat extraction differs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(first, New(Options{}).Extract(root)); diff != "" {
		t.Fatalf("fresh extractor differs (-first +fresh):\n%s", diff)
	}
}
