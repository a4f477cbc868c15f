package lang

import "slices"

// Native describes one built-in function.
type Native struct {
	Name  string
	Arity int // fixed count, or Variadic
	Fn    NativeFunc
}

// Registry holds the natives installed into every fresh global frame.
type Registry struct {
	natives []Native
	index   map[string]int
}

// NewRegistry builds a registry from an explicit list of natives.
func NewRegistry(natives ...Native) (*Registry, error) {
	r := &Registry{index: make(map[string]int, len(natives))}
	for _, n := range natives {
		if err := r.Register(n.Name, n.Arity, n.Fn); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a native. Names are unique; arity is non-negative or Variadic.
func (r *Registry) Register(name string, arity int, fn NativeFunc) error {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	if _, ok := r.index[name]; ok {
		return ErrDuplicateNative.Errorf("native `%s` already registered", name)
	}
	if arity < Variadic || fn == nil {
		return ErrInvalidNativeArity.Errorf("native `%s` has arity %d", name, arity)
	}
	r.index[name] = len(r.natives)
	r.natives = append(r.natives, Native{Name: name, Arity: arity, Fn: fn})
	return nil
}

// Lookup finds a native by name.
func (r *Registry) Lookup(name string) (Native, bool) {
	i, ok := r.index[name]
	if !ok {
		return Native{}, false
	}
	return r.natives[i], true
}

// Names lists registered natives in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.natives))
	for i, n := range r.natives {
		names[i] = n.Name
	}
	return names
}

// Natives returns a copy of the registered natives.
func (r *Registry) Natives() []Native {
	return slices.Clone(r.natives)
}

// Install defines every native as a callable in env.
func (r *Registry) Install(env *Env) error {
	for _, n := range r.natives {
		c := &Callable{Name: n.Name, Arity: n.Arity, Native: n.Fn, Closure: env}
		if err := env.Define(n.Name, CallableValue(c)); err != nil {
			return err
		}
	}
	return nil
}
