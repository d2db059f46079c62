package tui

import "strings"

// State tracks the values collected during a session keyed by field key, in
// the order fields were answered.
type State struct {
	values map[string]any
	order  []string
	labels map[string]string
}

// NewState returns an empty state.
func NewState() *State {
	return &State{
		values: make(map[string]any),
		labels: make(map[string]string),
	}
}

// Set records value under key. The first label seen for a key is kept for
// pretty output.
func (s *State) Set(key, label string, value any) {
	if _, exists := s.values[key]; !exists {
		s.order = append(s.order, key)
		s.labels[key] = label
	}
	s.values[key] = value
}

// Value returns the value recorded under key.
func (s *State) Value(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Values returns the collected values (mutable).
func (s *State) Values() map[string]any {
	return s.values
}

// Keys returns the keys in answer order.
func (s *State) Keys() []string {
	return append([]string(nil), s.order...)
}

// Label returns the label recorded for key.
func (s *State) Label(key string) string {
	return s.labels[key]
}

// boxBuffer holds the characters typed into a field's boxes by glyph index.
type boxBuffer struct {
	chars map[int]string
}

func newBoxBuffer(indexes []int, prefill string) *boxBuffer {
	buf := &boxBuffer{chars: make(map[int]string, len(indexes))}
	runes := []rune(strings.ReplaceAll(prefill, "/", ""))
	for i, idx := range indexes {
		if i < len(runes) {
			buf.chars[idx] = string(runes[i])
		}
	}
	return buf
}

func (b *boxBuffer) get(idx int) string {
	return b.chars[idx]
}

func (b *boxBuffer) set(idx int, value string) {
	if value == "" {
		delete(b.chars, idx)
		return
	}
	b.chars[idx] = value
}

// join renders the buffer over a glyph pattern: literal glyphs are kept,
// blank boxes become spaces and trailing blanks are trimmed. A buffer with no
// characters yields "".
func (b *boxBuffer) join(glyphs []glyph) string {
	if len(b.chars) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, g := range glyphs {
		switch {
		case g.literal != "":
			sb.WriteString(g.literal)
		case b.chars[g.index] != "":
			sb.WriteString(b.chars[g.index])
		default:
			sb.WriteByte(' ')
		}
	}
	return strings.TrimRight(sb.String(), " ")
}

type glyph struct {
	index   int
	literal string
}
