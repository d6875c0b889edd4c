package values

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	// ErrInvalidName indicates an argument name that is not an
	// identifier.
	ErrInvalidName = errors.New("invalid argument name")
	// ErrNameClash indicates a name used for two kinds of argument.
	ErrNameClash = errors.New("argument name clash")
)

var isValidName = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`).MatchString

// ValidName reports whether name can name an argument: a letter
// followed by letters, digits and underscores.
func ValidName(name string) bool {
	return isValidName(name)
}

// Registry interns the arguments of one model, so that every
// occurrence of a name denotes the same Argument. A Registry belongs
// to a single model-construction pass and is not safe for concurrent
// use.
type Registry struct {
	args  map[string]Argument
	order []Argument
}

// NewRegistry returns an empty registry. The constant pi is
// predefined.
func NewRegistry() *Registry {
	r := &Registry{args: make(map[string]Argument)}
	r.add(Pi)
	return r
}

func (r *Registry) add(a Argument) {
	r.args[a.Name()] = a
	r.order = append(r.order, a)
}

// lookup returns the argument called name if it is of kind k.
func (r *Registry) lookup(name string, k Kind) (Argument, error) {
	if !ValidName(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	a, ok := r.args[name]
	if !ok {
		return nil, nil
	}
	if a.Kind() != k {
		return nil, fmt.Errorf("%w: %q is a %s, not a %s", ErrNameClash, name, a.Kind(), k)
	}
	return a, nil
}

// Variable returns the Variable called name.
func (r *Registry) Variable(name string) (*Variable, error) {
	a, err := r.lookup(name, KindVariable)
	if err != nil {
		return nil, err
	}
	if a != nil {
		return a.(*Variable), nil
	}
	v := NewVariable(name)
	r.add(v)
	return v, nil
}

// Parameter returns the Parameter called name. The first default
// value supplied for a name is authoritative: it is given to the
// shared Parameter even if earlier occurrences had none, and later
// different defaults are ignored. Callers detect ignored defaults by
// comparing with Default.
func (r *Registry) Parameter(name string, def *float64) (*Parameter, error) {
	a, err := r.lookup(name, KindParameter)
	if err != nil {
		return nil, err
	}
	if a == nil {
		p := NewParameter(name)
		r.add(p)
		a = p
	}
	p := a.(*Parameter)
	if def != nil && !p.hasDef {
		p.def, p.hasDef = *def, true
	}
	return p, nil
}

// Constant returns the Constant called name. A new constant needs a
// value; a known one keeps its first value.
func (r *Registry) Constant(name string, value *float64) (*Constant, error) {
	a, err := r.lookup(name, KindConstant)
	if err != nil {
		return nil, err
	}
	if a != nil {
		return a.(*Constant), nil
	}
	if value == nil {
		return nil, fmt.Errorf("constant %q used without a value", name)
	}
	c := NewConstant(name, *value)
	r.add(c)
	return c, nil
}

// Arguments returns the registered arguments in registration order.
func (r *Registry) Arguments() []Argument {
	return append([]Argument(nil), r.order...)
}
