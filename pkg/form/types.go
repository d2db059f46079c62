package form

import (
	"fmt"
	"strconv"
)

// FieldType is the closed set of field kinds recognised in documents.
type FieldType string

const (
	FieldTypeIso              FieldType = "iso"
	FieldTypeDate             FieldType = "date"
	FieldTypeRadioList        FieldType = "radioList"
	FieldTypeCursiveSignature FieldType = "cursiveSignature"
)

// FieldTypes lists every recognised type in a stable order.
func FieldTypes() []FieldType {
	return []FieldType{
		FieldTypeIso,
		FieldTypeDate,
		FieldTypeRadioList,
		FieldTypeCursiveSignature,
	}
}

// ParseFieldType maps a raw attribute value onto a FieldType. Matching is
// exact; unknown values report false.
func ParseFieldType(raw string) (FieldType, bool) {
	for _, t := range FieldTypes() {
		if string(t) == raw {
			return t, true
		}
	}
	return "", false
}

// Default rect dimensions applied when geometry attributes are missing.
const (
	DefaultRectWidth  = 24
	DefaultRectHeight = 24
)

// Rect is one positionable control: a character box or an option marker.
type Rect struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
	Label  string  `json:"label" yaml:"label"`
}

// Field describes a single interactive input extracted from a document.
type Field struct {
	ID    string    `json:"id" yaml:"id"`
	Type  FieldType `json:"type" yaml:"type"`
	Label string    `json:"label" yaml:"label"`
	Rects []Rect    `json:"rects" yaml:"rects"`
	// SelectedOption is empty until a renderer records a selection.
	SelectedOption string `json:"selectedOption,omitempty" yaml:"selectedOption,omitempty"`
	// SelectedIndex is the option chosen by Select. It only counts while its
	// label still equals SelectedOption.
	SelectedIndex int `json:"-" yaml:"-"`
}

// OptionLabel returns the label shown for the option at index, falling back
// to a 1-based "Option N" when the rect has no label.
func (f Field) OptionLabel(index int) string {
	if index >= 0 && index < len(f.Rects) && f.Rects[index].Label != "" {
		return f.Rects[index].Label
	}
	return "Option " + strconv.Itoa(index+1)
}

// OptionLabels returns OptionLabel for every rect.
func (f Field) OptionLabels() []string {
	labels := make([]string, len(f.Rects))
	for i := range f.Rects {
		labels[i] = f.OptionLabel(i)
	}
	return labels
}

// Select records the option at index as the field's only selection and
// returns its label.
func (f *Field) Select(index int) (string, error) {
	if f == nil {
		return "", fmt.Errorf("form: field is nil")
	}
	if f.Type != FieldTypeRadioList {
		return "", fmt.Errorf("form: field %q of type %s has no options", f.ID, f.Type)
	}
	if index < 0 || index >= len(f.Rects) {
		return "", fmt.Errorf("form: option %d out of range for field %q", index, f.ID)
	}
	f.SelectedOption = f.OptionLabel(index)
	f.SelectedIndex = index
	return f.SelectedOption, nil
}

// Selection returns the index of the selected option, or -1 when nothing is
// selected. A selection recorded only by label resolves to the first option
// carrying that label.
func (f Field) Selection() int {
	if f.SelectedOption == "" {
		return -1
	}
	if f.SelectedIndex >= 0 && f.SelectedIndex < len(f.Rects) && f.OptionLabel(f.SelectedIndex) == f.SelectedOption {
		return f.SelectedIndex
	}
	for i := range f.Rects {
		if f.OptionLabel(i) == f.SelectedOption {
			return i
		}
	}
	return -1
}

// IsSelected reports whether the option at index is the current selection.
// At most one index reports true.
func (f Field) IsSelected(index int) bool {
	sel := f.Selection()
	return sel >= 0 && sel == index
}

// ClearSelection removes any recorded selection.
func (f *Field) ClearSelection() {
	if f != nil {
		f.SelectedOption = ""
		f.SelectedIndex = 0
	}
}

// Clone returns a deep copy of the field.
func (f Field) Clone() Field {
	cloned := f
	if f.Rects != nil {
		cloned.Rects = append([]Rect(nil), f.Rects...)
	}
	return cloned
}

// Key returns a stable identifier for the field at position in an extracted
// sequence: its ID when present, otherwise "field-<position+1>".
func (f Field) Key(position int) string {
	if f.ID != "" {
		return f.ID
	}
	return "field-" + strconv.Itoa(position+1)
}

// DisplayLabel returns the field label or a humanised form of its ID.
func (f Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return DefaultLabeler(f.ID)
}

// CloneFields deep copies a field sequence.
func CloneFields(fields []Field) []Field {
	if fields == nil {
		return nil
	}
	out := make([]Field, len(fields))
	for i, f := range fields {
		out[i] = f.Clone()
	}
	return out
}
