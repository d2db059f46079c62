package extract

import (
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-xmlform/pkg/form"
	"github.com/goliatone/go-xmlform/pkg/tree"
)

func rectGeometry(node *tree.Node) form.Rect {
	return form.Rect{
		X:      number(node, "x", 0),
		Y:      number(node, "y", 0),
		Width:  number(node, "width", form.DefaultRectWidth),
		Height: number(node, "height", form.DefaultRectHeight),
	}
}

// number reads a decimal attribute, returning def when it is missing, blank
// or not a finite number.
func number(node *tree.Node, name string, def float64) float64 {
	raw, ok := node.Attr(name)
	if !ok {
		return def
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

// leadingInt parses the base-10 integer prefix of raw ("50.7" → 50,
// "80px" → 80). Missing or non-numeric values yield 0.
func leadingInt(node *tree.Node, name string) int64 {
	raw, ok := node.Attr(name)
	if !ok {
		return 0
	}
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	v, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0
	}
	return v
}
