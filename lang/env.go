package lang

import (
	"maps"
	"slices"
)

// Scope is one frame of a lexical scope chain. The resolver walks a chain of
// Scope[binding] to compute hop counts; the evaluator runs on a chain of
// Scope[Value] (Env) and follows those hop counts.
type Scope[T any] struct {
	parent *Scope[T]
	values map[string]T
}

// Env is a runtime frame.
type Env = Scope[Value]

// NewScope creates a frame with an optional parent.
func NewScope[T any](parent *Scope[T]) *Scope[T] {
	return &Scope[T]{
		parent: parent,
		values: make(map[string]T),
	}
}

// NewEnv creates a runtime frame with an optional parent.
func NewEnv(parent *Env) *Env {
	return NewScope(parent)
}

// Parent returns the enclosing frame.
func (s *Scope[T]) Parent() *Scope[T] {
	return s.parent
}

// Define binds name in this frame. A name may be bound only once per frame.
func (s *Scope[T]) Define(name string, val T) error {
	if _, ok := s.values[name]; ok {
		return ErrRedeclared.Errorf("var `%s` already declared", name)
	}
	s.values[name] = val
	return nil
}

// Get walks the chain outward and returns the nearest binding of name.
func (s *Scope[T]) Get(name string) (T, error) {
	for f := s; f != nil; f = f.parent {
		if val, ok := f.values[name]; ok {
			return val, nil
		}
	}
	var zero T
	return zero, ErrUndeclared.Errorf("var `%s` not declared", name)
}

// Set overwrites the nearest binding of name. It never creates one.
func (s *Scope[T]) Set(name string, val T) error {
	for f := s; f != nil; f = f.parent {
		if _, ok := f.values[name]; ok {
			f.values[name] = val
			return nil
		}
	}
	return ErrUndeclared.Errorf("var `%s` not declared", name)
}

// Lookup returns the number of frames between s and the one binding name.
func (s *Scope[T]) Lookup(name string) (int, bool) {
	hops := 0
	for f := s; f != nil; f = f.parent {
		if _, ok := f.values[name]; ok {
			return hops, true
		}
		hops++
	}
	return 0, false
}

// Local reports the binding of name in this frame only.
func (s *Scope[T]) Local(name string) (T, bool) {
	val, ok := s.values[name]
	return val, ok
}

// Ancestor returns the frame hops links up the chain.
func (s *Scope[T]) Ancestor(hops int) (*Scope[T], error) {
	f := s
	for i := 0; i < hops; i++ {
		if f.parent == nil {
			return nil, ErrInvalidHopCount.Errorf("offset %d greater than possible jumps", hops)
		}
		f = f.parent
	}
	return f, nil
}

// GetAt reads name from the frame hops links up.
func (s *Scope[T]) GetAt(hops int, name string) (T, error) {
	var zero T
	f, err := s.Ancestor(hops)
	if err != nil {
		return zero, err
	}
	val, ok := f.values[name]
	if !ok {
		return zero, ErrUndeclared.Errorf("var `%s` not declared", name)
	}
	return val, nil
}

// SetAt overwrites name in the frame hops links up.
func (s *Scope[T]) SetAt(hops int, name string, val T) error {
	f, err := s.Ancestor(hops)
	if err != nil {
		return err
	}
	if _, ok := f.values[name]; !ok {
		return ErrUndeclared.Errorf("var `%s` not declared", name)
	}
	f.values[name] = val
	return nil
}

// DefineAt binds name in the frame hops links up.
func (s *Scope[T]) DefineAt(hops int, name string, val T) error {
	f, err := s.Ancestor(hops)
	if err != nil {
		return err
	}
	return f.Define(name, val)
}

// Names returns the names bound in this frame, sorted.
func (s *Scope[T]) Names() []string {
	return slices.Sorted(maps.Keys(s.values))
}

// Depth is the number of frames above s.
func (s *Scope[T]) Depth() int {
	n := 0
	for f := s.parent; f != nil; f = f.parent {
		n++
	}
	return n
}
