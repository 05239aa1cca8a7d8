package container

import "reflect"

// Resolver turns a parameter list into call arguments using the current
// contents of a Registry. It keeps no state between calls.
type Resolver struct {
	reg *Registry

	// interface collection type → named slice type that implements it
	views map[reflect.Type]reflect.Type
}

// NewResolver creates a Resolver reading from reg.
func NewResolver(reg *Registry) *Resolver {
	return &Resolver{reg: reg, views: make(map[reflect.Type]reflect.Type)}
}

// AddView makes parameters of the interface type iface resolve as a collection:
// every instance of the element type of concrete, held in a new concrete.
// concrete must be a named slice type implementing iface.
func (r *Resolver) AddView(iface, concrete reflect.Type) error {
	if iface == nil || iface.Kind() != reflect.Interface {
		return &ConfigurationError{Type: iface, Reason: "collection view must be an interface type"}
	}
	if shape, _ := collectionOf(concrete); shape != containerShape || !concrete.Implements(iface) {
		return &ConfigurationError{Type: iface, Reason: "collection view needs a named slice type implementing it"}
	}
	r.views[iface] = concrete
	return nil
}

// Resolve returns one argument per parameter, in order. The first parameter
// that cannot be satisfied aborts the call with a *ResolutionError; context
// names the enclosing operation for that error.
func (r *Resolver) Resolve(params []Parameter, context string) ([]reflect.Value, error) {
	args := make([]reflect.Value, 0, len(params))
	for _, p := range params {
		arg, err := r.resolveOne(p, context)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

func (r *Resolver) resolveOne(p Parameter, context string) (reflect.Value, error) {
	if concrete, ok := r.views[p.Type]; ok {
		v := reflect.New(p.Type).Elem()
		v.Set(collect(r.reg, containerShape, concrete, concrete.Elem()))
		return v, nil
	}
	if shape, elem := collectionOf(p.Type); shape != notCollection {
		return collect(r.reg, shape, p.Type, elem), nil
	}

	if inst, ok := r.reg.Single(p.Type); ok {
		v := reflect.New(p.Type).Elem()
		v.Set(reflect.ValueOf(inst))
		return v, nil
	}
	if p.HasDefault {
		return p.Default, nil
	}
	return reflect.Value{}, &ResolutionError{Capability: p.Type, Parameter: p.Name, Context: context}
}
