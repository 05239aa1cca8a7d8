package container

import (
	"reflect"
	"strconv"
)

var errorType = reflect.TypeFor[error]()

// Parameter describes one formal parameter of a constructor or method.
type Parameter struct {
	Name string
	Type reflect.Type

	// Default is used when Type has no single registration. Only meaningful
	// when HasDefault is set.
	Default    reflect.Value
	HasDefault bool
}

// ── Parameter options ─────────────────────────────────────────────────────────

// ParamOption adjusts the parameter descriptors of a constructor or method.
type ParamOption func(*paramSpec)

type paramSpec struct {
	names    []string
	defaults []namedDefault
}

type namedDefault struct {
	name  string
	value any
}

// Named gives the parameters names, in declaration order. Go keeps no
// parameter names at runtime; unnamed parameters are called arg0, arg1, ...
//
//	c.Constructor(NewMailer, container.Named("transport", "log"))
func Named(names ...string) ParamOption {
	return func(s *paramSpec) { s.names = names }
}

// Default declares a fallback value for the named parameter, used when its
// capability has no single registration. A nil value means the zero value.
//
//	c.Constructor(NewMailer,
//	    container.Named("transport", "log"),
//	    container.Default("log", slog.Default()),
//	)
func Default(name string, value any) ParamOption {
	return func(s *paramSpec) { s.defaults = append(s.defaults, namedDefault{name, value}) }
}

// parameters builds descriptors for the inputs of fn, skipping the first skip
// inputs (the receiver of a method expression).
func parameters(owner reflect.Type, fn reflect.Type, skip int, opts []ParamOption) ([]Parameter, error) {
	var ps paramSpec
	for _, opt := range opts {
		opt(&ps)
	}

	n := fn.NumIn() - skip
	if len(ps.names) > n {
		return nil, &ConfigurationError{Type: owner, Reason: strconv.Itoa(len(ps.names)) + " parameter names for " + strconv.Itoa(n) + " parameters"}
	}

	params := make([]Parameter, n)
	for i := range params {
		params[i] = Parameter{Name: "arg" + strconv.Itoa(i), Type: fn.In(i + skip)}
		if i < len(ps.names) && ps.names[i] != "" {
			params[i].Name = ps.names[i]
		}
	}

	for _, d := range ps.defaults {
		p := findParam(params, d.name)
		if p == nil {
			return nil, &ConfigurationError{Type: owner, Reason: "default for unknown parameter " + strconv.Quote(d.name)}
		}
		if d.value == nil {
			p.Default = reflect.Zero(p.Type)
		} else {
			v := reflect.ValueOf(d.value)
			if !v.Type().AssignableTo(p.Type) {
				return nil, &ConfigurationError{Type: owner, Reason: "default of type " + v.Type().String() + " for parameter " + strconv.Quote(d.name) + " is not assignable to " + p.Type.String()}
			}
			p.Default = v
		}
		p.HasDefault = true
	}
	return params, nil
}

func findParam(params []Parameter, name string) *Parameter {
	for i := range params {
		if params[i].Name == name {
			return &params[i]
		}
	}
	return nil
}

// ── Constructors ──────────────────────────────────────────────────────────────

// constructor is one declared way to build a value of type out.
type constructor struct {
	fn        reflect.Value // invalid for the implicit zero-value constructor
	out       reflect.Type
	params    []Parameter
	returnErr bool
}

// newConstructor validates fn as func(...) T or func(...) (T, error).
func newConstructor(fn any, opts []ParamOption) (*constructor, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return nil, &ConfigurationError{Type: reflect.TypeOf(fn), Reason: "constructor must be a non-nil func"}
	}
	t := v.Type()

	ctor := &constructor{fn: v}
	switch {
	case t.NumOut() == 1 && t.Out(0) != errorType:
	case t.NumOut() == 2 && t.Out(1) == errorType && t.Out(0) != errorType:
		ctor.returnErr = true
	default:
		return nil, &ConfigurationError{Type: t, Reason: "constructor must return T or (T, error)"}
	}
	ctor.out = t.Out(0)
	if ctor.out.Kind() == reflect.Interface {
		return nil, &ConfigurationError{Type: t, Reason: "constructor must return a concrete type, not " + ctor.out.String()}
	}

	params, err := parameters(ctor.out, t, 0, opts)
	if err != nil {
		return nil, err
	}
	ctor.params = params
	return ctor, nil
}

// implicitConstructor returns the zero-argument constructor that struct and
// pointer-to-struct types get when none is declared.
func implicitConstructor(t reflect.Type) (*constructor, bool) {
	switch {
	case t.Kind() == reflect.Struct:
	case t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Struct:
	default:
		return nil, false
	}
	return &constructor{out: t}, true
}

// call invokes the constructor with resolved arguments.
func (c *constructor) call(args []reflect.Value) (any, error) {
	if !c.fn.IsValid() {
		if c.out.Kind() == reflect.Pointer {
			return reflect.New(c.out.Elem()).Interface(), nil
		}
		return reflect.New(c.out).Elem().Interface(), nil
	}

	var out []reflect.Value
	if c.fn.Type().IsVariadic() {
		out = c.fn.CallSlice(args)
	} else {
		out = c.fn.Call(args)
	}
	if c.returnErr && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	return out[0].Interface(), nil
}
