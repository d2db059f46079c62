package parser

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-xmlform/pkg/document"
	"github.com/goliatone/go-xmlform/pkg/tree"
)

const radioSVG = `<?xml version="1.0"?>
<svg xmlns="http://www.w3.org/2000/svg">
  <g id="radioGroup" fdtType="radioList" fdtFieldName="Options">
    <rect id="option1" x="50" y="50" width="20" height="20"/>
    <text id="label1" x="80" y="60"><tspan>Option 1</tspan></text>
    <rect id="option2" x="50" y="80" width="20" height="20"/>
    <text id="label2" x="80" y="90">Option 2</text>
  </g>
</svg>`

func parse(t *testing.T, name, raw string, options ...tree.ParserOption) *tree.Node {
	t.Helper()
	p := New(tree.NewParserOptions(options...))
	root, err := p.Parse(context.Background(), document.MustNewDocument(document.SourceFromBytes(name, []byte(raw)), []byte(raw)))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return root
}

func TestParseXML_BuildsTree(t *testing.T) {
	root := parse(t, "form.svg", radioSVG)

	if root.Name != "svg" {
		t.Fatalf("root name: %q", root.Name)
	}
	if ns := root.AttrValue("xmlns", ""); ns != "http://www.w3.org/2000/svg" {
		t.Fatalf("xmlns attr: %q", ns)
	}

	groups := root.Children("g")
	if len(groups) != 1 {
		t.Fatalf("expected one group, got %d", len(groups))
	}
	g := groups[0]
	if g.AttrValue("fdtType", "") != "radioList" {
		t.Fatalf("type attr: %v", g.Attrs)
	}

	var slots []string
	for _, slot := range g.Slots {
		slots = append(slots, slot.Name)
	}
	if diff := cmp.Diff([]string{"rect", "text", "rect", "text"}, slots); diff != "" {
		t.Fatalf("slot order mismatch (-want +got):\n%s", diff)
	}

	texts := g.Children("text")
	if got := tree.Content(texts[0]); got != "Option 1" {
		t.Fatalf("nested text: %q", got)
	}
	if got := texts[1].Text; got != "Option 2" {
		t.Fatalf("direct text: %q", got)
	}
}

func TestParseXML_GroupsRepeatedSiblings(t *testing.T) {
	root := parse(t, "", `<g><rect id="a"/><rect id="b"/><rect id="c"/></g>`)
	if len(root.Slots) != 1 {
		t.Fatalf("expected one slot, got %d", len(root.Slots))
	}
	if got := len(root.Slots[0].Many); got != 3 {
		t.Fatalf("expected sequence of 3, got %d", got)
	}
}

func TestParseXML_Malformed(t *testing.T) {
	p := New(tree.NewParserOptions())
	for name, raw := range map[string]string{
		"unquoted attribute": `<svg><rect x=1/></svg>`,
		"no root":            `<?xml version="1.0"?>`,
	} {
		t.Run(name, func(t *testing.T) {
			doc := document.MustNewDocument(document.SourceFromBytes("bad.xml", []byte(raw)), []byte(raw))
			_, err := p.Parse(context.Background(), doc)
			if !errors.Is(err, tree.ErrMalformed) {
				t.Fatalf("expected ErrMalformed, got %v", err)
			}
		})
	}
}

func TestParseJSON_Xml2jsShape(t *testing.T) {
	raw := `{
  "svg": {
    "g": [
      {"$": {"id": "name", "fdtType": "iso"}, "rect": {"$": {"x": "1", "y": "2"}}},
      {"$": {"id": "choice", "fdtType": "radioList"},
       "rect": [{"$": {"id": "o1"}}, {"$": {"id": "o2"}}],
       "text": {"$": {"id": "label-o1"}, "tspan": {"#text": "Yes"}}}
    ]
  }
}`
	root := parse(t, "form.json", raw)
	if root.Name != "svg" {
		t.Fatalf("envelope not unwrapped: %q", root.Name)
	}

	groups := root.Children("g")
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if got := len(groups[0].Children("rect")); got != 1 {
		t.Fatalf("single rect slot not normalised: %d", got)
	}
	if got := len(groups[1].Children("rect")); got != 2 {
		t.Fatalf("rect sequence: %d", got)
	}
	if got := tree.Content(groups[1].Children("text")[0]); got != "Yes" {
		t.Fatalf("text content: %q", got)
	}
}

func TestParseYAML_ByExtension(t *testing.T) {
	raw := `
svg:
  g:
    $: {id: sig, fdtType: cursiveSignature}
    rect:
      $: {x: "10", y: "20"}
    text: Sign here
`
	root := parse(t, "form.yaml", raw)
	g := root.Children("g")
	if len(g) != 1 || g[0].AttrValue("fdtType", "") != "cursiveSignature" {
		t.Fatalf("unexpected group: %+v", g)
	}
	if got := tree.Content(g[0].Children("text")[0]); got != "Sign here" {
		t.Fatalf("leaf text: %q", got)
	}
}

func TestParse_ForcedFormatMismatch(t *testing.T) {
	p := New(tree.NewParserOptions(tree.WithFormat(tree.FormatJSON)))
	raw := []byte(`<svg/>`)
	_, err := p.Parse(context.Background(), document.MustNewDocument(document.SourceFromBytes("x", raw), raw))
	if !errors.Is(err, tree.ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		raw, ext string
		want     tree.Format
	}{
		{raw: "<svg/>", ext: ".json", want: tree.FormatXML},
		{raw: `{"svg": {}}`, ext: "", want: tree.FormatJSON},
		{raw: "svg: {}", ext: ".yml", want: tree.FormatYAML},
		{raw: "svg: {}", ext: "", want: tree.FormatXML},
	}
	for _, tc := range tests {
		if got := detectFormat([]byte(tc.raw), tc.ext); got != tc.want {
			t.Fatalf("detect(%q, %q): want %s, got %s", tc.raw, tc.ext, tc.want, got)
		}
	}
}
