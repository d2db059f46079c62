package render

import "github.com/goliatone/go-xmlform/pkg/form"

// Fallback box dimensions used when a rect carries no usable size.
const (
	IsoBoxWidth     = 19
	IsoBoxHeight    = 23
	DateBoxWidth    = 25
	DateBoxHeight   = 30
	SignatureWidth  = 315
	SignatureHeight = 135
)

// DatePattern is the glyph layout of date fields. '/' positions render as
// literal separators; every other glyph is a single-character input.
const DatePattern = "DD/MM/YYYY"

// BoxKind distinguishes inputs from decorative glyphs.
type BoxKind string

const (
	BoxChar      BoxKind = "char"
	BoxLiteral   BoxKind = "literal"
	BoxOption    BoxKind = "option"
	BoxSignature BoxKind = "signature"
)

// Box is one rendered control of a field. Index is the glyph position for
// dates and the rect position otherwise; it doubles as the focus index.
type Box struct {
	Index       int
	Kind        BoxKind
	Placeholder string
	Label       string
	Width       float64
	Height      float64
}

// Input reports whether the box accepts a single typed character.
func (b Box) Input() bool {
	return b.Kind == BoxChar
}

// Boxes lays out the controls of field. Date fields always produce the full
// DatePattern even when fewer rects were extracted.
func Boxes(field form.Field) []Box {
	switch field.Type {
	case form.FieldTypeIso:
		boxes := make([]Box, 0, len(field.Rects))
		for i, rect := range field.Rects {
			boxes = append(boxes, Box{
				Index:  i,
				Kind:   BoxChar,
				Label:  rect.Label,
				Width:  dimension(rect.Width, IsoBoxWidth),
				Height: dimension(rect.Height, IsoBoxHeight),
			})
		}
		return boxes
	case form.FieldTypeDate:
		boxes := make([]Box, 0, len(DatePattern))
		for i, glyph := range DatePattern {
			if glyph == '/' {
				boxes = append(boxes, Box{Index: i, Kind: BoxLiteral, Placeholder: "/"})
				continue
			}
			var rect form.Rect
			if i < len(field.Rects) {
				rect = field.Rects[i]
			}
			boxes = append(boxes, Box{
				Index:       i,
				Kind:        BoxChar,
				Placeholder: string(glyph),
				Label:       rect.Label,
				Width:       dimension(rect.Width, DateBoxWidth),
				Height:      dimension(rect.Height, DateBoxHeight),
			})
		}
		return boxes
	case form.FieldTypeRadioList:
		boxes := make([]Box, 0, len(field.Rects))
		for i, rect := range field.Rects {
			boxes = append(boxes, Box{
				Index:  i,
				Kind:   BoxOption,
				Label:  field.OptionLabel(i),
				Width:  rect.Width,
				Height: rect.Height,
			})
		}
		return boxes
	case form.FieldTypeCursiveSignature:
		return []Box{{Kind: BoxSignature, Width: SignatureWidth, Height: SignatureHeight}}
	}
	return nil
}

// InputCount returns how many character boxes Boxes(field) yields.
func InputCount(field form.Field) int {
	n := 0
	for _, box := range Boxes(field) {
		if box.Input() {
			n++
		}
	}
	return n
}

func dimension(v, fallback float64) float64 {
	if v > 0 {
		return v
	}
	return fallback
}
