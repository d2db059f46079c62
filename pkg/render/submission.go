package render

import (
	"sort"
	"strings"
)

// HiddenField is an extra input posted with the rendered form, such as a
// CSRF token or the document identifier.
type HiddenField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// HiddenFields returns RenderOptions.Hidden sorted by name. Blank names are
// dropped.
func (o RenderOptions) HiddenFields() []HiddenField {
	if len(o.Hidden) == 0 {
		return nil
	}
	fields := make([]HiddenField, 0, len(o.Hidden))
	for name, value := range o.Hidden {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		fields = append(fields, HiddenField{Name: name, Value: value})
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })
	return fields
}
