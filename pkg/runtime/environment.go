package runtime

import (
	"sort"
)

// Environment is a stack of scope frames. The parent of every frame is the
// frame directly beneath it, and the top frame is the current scope, so
// leaving a scope is a truncation back to a saved depth.
type Environment[V any] struct {
	label  string
	frames []map[string]V
}

// NewEnvironment creates an environment holding a single root frame. label
// names the namespace in lookup errors ("variable", "function").
func NewEnvironment[V any](label string) *Environment[V] {
	return &Environment[V]{
		label:  label,
		frames: []map[string]V{make(map[string]V)},
	}
}

// Depth is the number of live frames, root included.
func (e *Environment[V]) Depth() int {
	return len(e.frames)
}

// Push opens a child scope of the current frame and returns the depth to
// pass to Restore when the scope ends.
func (e *Environment[V]) Push() int {
	saved := len(e.frames)
	e.frames = append(e.frames, make(map[string]V))
	return saved
}

// Restore discards every frame above depth. The root frame is never
// discarded.
func (e *Environment[V]) Restore(depth int) {
	if depth < 1 {
		depth = 1
	}
	for idx := depth; idx < len(e.frames); idx++ {
		e.frames[idx] = nil
	}
	if depth < len(e.frames) {
		e.frames = e.frames[:depth]
	}
}

// Define inserts or shadows a binding in the current scope.
func (e *Environment[V]) Define(name string, value V) {
	e.frames[len(e.frames)-1][name] = value
}

// Assign updates an existing binding in the innermost scope where it appears.
func (e *Environment[V]) Assign(name string, value V) error {
	for idx := len(e.frames) - 1; idx >= 0; idx-- {
		if _, ok := e.frames[idx][name]; ok {
			e.frames[idx][name] = value
			return nil
		}
	}
	return NewUndefinedName(e.label, name)
}

// Get retrieves a binding, searching outward through the scope chain.
func (e *Environment[V]) Get(name string) (V, error) {
	for idx := len(e.frames) - 1; idx >= 0; idx-- {
		if v, ok := e.frames[idx][name]; ok {
			return v, nil
		}
	}
	var zero V
	return zero, NewUndefinedName(e.label, name)
}

// Snapshot returns a copy of the current frame's bindings.
func (e *Environment[V]) Snapshot() map[string]V {
	current := e.frames[len(e.frames)-1]
	out := make(map[string]V, len(current))
	for k, v := range current {
		out[k] = v
	}
	return out
}

// Visible returns every binding reachable from the current frame, with
// inner bindings shadowing outer ones.
func (e *Environment[V]) Visible() map[string]V {
	out := make(map[string]V)
	for _, frame := range e.frames {
		for k, v := range frame {
			out[k] = v
		}
	}
	return out
}

// Keys returns the current frame's names in sorted order (useful for
// determinism in tests).
func (e *Environment[V]) Keys() []string {
	current := e.frames[len(e.frames)-1]
	keys := make([]string, 0, len(current))
	for k := range current {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
