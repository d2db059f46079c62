package render

import (
	"strings"

	"github.com/goliatone/go-xmlform/pkg/form"
)

// FieldSubset narrows a field list to the listed keys and types. A field is
// kept when it matches any entry; an empty subset keeps everything.
type FieldSubset struct {
	Keys  []string
	Types []form.FieldType
}

// ParseSubset reads a comma separated list such as "name,radioList". Tokens
// naming a field type select by type, anything else selects by key.
func ParseSubset(raw string) FieldSubset {
	var subset FieldSubset
	for _, token := range parseTokenList(raw) {
		if fieldType, ok := form.ParseFieldType(token); ok {
			subset.Types = append(subset.Types, fieldType)
			continue
		}
		subset.Keys = append(subset.Keys, token)
	}
	return subset
}

// Empty reports whether the subset filters nothing.
func (s FieldSubset) Empty() bool {
	return len(s.Keys) == 0 && len(s.Types) == 0
}

// ApplySubset returns the fields matching subset in their original order.
// Keys are resolved against the original positions so generated keys such as
// "field-3" keep pointing at the same field.
func ApplySubset(fields []form.Field, subset FieldSubset) []form.Field {
	if subset.Empty() {
		return fields
	}

	keys := make(map[string]struct{}, len(subset.Keys))
	for _, key := range subset.Keys {
		keys[strings.TrimSpace(key)] = struct{}{}
	}
	types := make(map[form.FieldType]struct{}, len(subset.Types))
	for _, t := range subset.Types {
		types[t] = struct{}{}
	}

	filtered := make([]form.Field, 0, len(fields))
	for pos, field := range fields {
		if _, ok := types[field.Type]; ok {
			filtered = append(filtered, field)
			continue
		}
		if _, ok := keys[field.Key(pos)]; ok {
			filtered = append(filtered, field)
		}
	}
	return filtered
}

func parseTokenList(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})

	seen := make(map[string]struct{}, len(parts))
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		if _, dup := seen[part]; dup {
			continue
		}
		seen[part] = struct{}{}
		tokens = append(tokens, part)
	}
	return tokens
}
