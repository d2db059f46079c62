package render

import (
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-xmlform/pkg/form"
)

// FocusKey addresses a character box by field position and box index.
// Field position disambiguates fields sharing an empty or duplicate id.
type FocusKey struct {
	Field int
	Index int
}

// ControlID returns a stable DOM-safe identifier for the key.
func (k FocusKey) ControlID() string {
	return fmt.Sprintf("xf-%d-%d", k.Field, k.Index)
}

// FocusRegistry tracks focusable controls so renderers can move focus to the
// next box after a character is entered and back on an empty backspace.
// Navigation never crosses field boundaries.
type FocusRegistry struct {
	mu       sync.RWMutex
	controls map[FocusKey]string
	indexes  map[int][]int
}

// NewFocusRegistry creates an empty registry.
func NewFocusRegistry() *FocusRegistry {
	return &FocusRegistry{
		controls: make(map[FocusKey]string),
		indexes:  make(map[int][]int),
	}
}

// BuildFocus registers every character box of fields.
func BuildFocus(fields []form.Field) *FocusRegistry {
	reg := NewFocusRegistry()
	for pos, field := range fields {
		for _, box := range Boxes(field) {
			if !box.Input() {
				continue
			}
			key := FocusKey{Field: pos, Index: box.Index}
			reg.Register(key, key.ControlID())
		}
	}
	return reg
}

// Register records a control under key, replacing any previous entry.
func (r *FocusRegistry) Register(key FocusKey, control string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.controls[key]; !exists {
		idx := append(r.indexes[key.Field], key.Index)
		sort.Ints(idx)
		r.indexes[key.Field] = idx
	}
	r.controls[key] = control
}

// Lookup returns the control registered under key.
func (r *FocusRegistry) Lookup(key FocusKey) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	control, ok := r.controls[key]
	return control, ok
}

// Next returns the registered key following key within the same field.
func (r *FocusRegistry) Next(key FocusKey) (FocusKey, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, idx := range r.indexes[key.Field] {
		if idx > key.Index {
			return FocusKey{Field: key.Field, Index: idx}, true
		}
	}
	return FocusKey{}, false
}

// Prev returns the registered key preceding key within the same field.
func (r *FocusRegistry) Prev(key FocusKey) (FocusKey, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexes[key.Field]
	for i := len(idx) - 1; i >= 0; i-- {
		if idx[i] < key.Index {
			return FocusKey{Field: key.Field, Index: idx[i]}, true
		}
	}
	return FocusKey{}, false
}

// Keys returns the keys registered for a field in index order.
func (r *FocusRegistry) Keys(field int) []FocusKey {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexes[field]
	keys := make([]FocusKey, 0, len(idx))
	for _, i := range idx {
		keys = append(keys, FocusKey{Field: field, Index: i})
	}
	return keys
}

// Len returns the number of registered controls.
func (r *FocusRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.controls)
}
