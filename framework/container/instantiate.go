package container

import (
	"fmt"
	"reflect"
	"strconv"
)

// ── Instantiation ─────────────────────────────────────────────────────────────

// Constructor declares fn as a constructor for its first result type. fn must
// have the shape func(...) T or func(...) (T, error) with a concrete T.
//
// Interface parameter types (and the element types of collection parameters)
// are added to the capability catalog used by AddInterfaces.
//
//	c.Constructor(NewService, container.Named("log", "plugins"))
func (c *Container) Constructor(fn any, opts ...ParamOption) error {
	ctor, err := newConstructor(fn, opts)
	if err != nil {
		return err
	}
	for _, p := range ctor.params {
		if concrete, ok := c.resolver.views[p.Type]; ok {
			c.declare(concrete.Elem())
			continue
		}
		if _, elem := collectionOf(p.Type); elem != nil {
			c.declare(elem)
		}
		c.declare(p.Type)
	}
	c.ctors[ctor.out] = append(c.ctors[ctor.out], ctor)
	return nil
}

// Instantiate builds a new value of type t from its single eligible
// constructor, resolving every parameter from the registry. The result is not
// registered.
//
// Eligible constructors are the ones declared with Constructor. A struct or
// pointer-to-struct type with none declared has one implicit constructor that
// returns its zero value (for pointers, a pointer to a new zero value).
func (c *Container) Instantiate(t reflect.Type) (any, error) {
	if t == nil {
		return nil, &ConfigurationError{Reason: "cannot instantiate a nil type"}
	}
	if t.Kind() == reflect.Interface {
		return nil, &ConfigurationError{Type: t, Reason: "cannot instantiate an abstract type"}
	}

	ctor, err := c.eligibleConstructor(t)
	if err != nil {
		return nil, err
	}

	args, err := c.resolver.Resolve(ctor.params, "instantiating "+t.String())
	if err != nil {
		return nil, err
	}

	inst, err := ctor.call(args)
	if err != nil {
		return nil, fmt.Errorf("container: constructing %s: %w", t, err)
	}
	return inst, nil
}

func (c *Container) eligibleConstructor(t reflect.Type) (*constructor, error) {
	ctors := c.ctors[t]
	switch len(ctors) {
	case 1:
		return ctors[0], nil
	case 0:
		if ctor, ok := implicitConstructor(t); ok {
			return ctor, nil
		}
		return nil, &ConfigurationError{Type: t, Reason: "no eligible constructor"}
	default:
		return nil, &ConfigurationError{Type: t, Reason: strconv.Itoa(len(ctors)) + " eligible constructors, want exactly one"}
	}
}

// ── Invocation ────────────────────────────────────────────────────────────────

// Invoke calls the named method on instance, resolving its parameters from the
// registry as it is at call time. Only exported methods are visible to
// reflection; methods with pointer receivers need a pointer instance.
//
//	// run a post-construction hook with injected arguments
//	_, err := c.Invoke(svc, "Boot")
func (c *Container) Invoke(instance any, method string, opts ...ParamOption) (any, error) {
	if instance == nil {
		return nil, &NotFoundError{Method: method}
	}
	t := reflect.TypeOf(instance)
	m, ok := t.MethodByName(method)
	if !ok {
		return nil, &NotFoundError{Method: method, Receiver: t}
	}
	return c.InvokeMethod(instance, m, opts...)
}

// InvokeMethod is Invoke for a method descriptor obtained from reflection,
// e.g. reflect.TypeFor[*Service]().MethodByName("Start").
func (c *Container) InvokeMethod(instance any, m reflect.Method, opts ...ParamOption) (any, error) {
	recv := reflect.ValueOf(instance)
	if !m.Func.IsValid() || m.Type.NumIn() == 0 || !recv.IsValid() || !recv.Type().AssignableTo(m.Type.In(0)) {
		return nil, &NotFoundError{Method: m.Name, Receiver: reflect.TypeOf(instance)}
	}

	owner := recv.Type()
	params, err := parameters(owner, m.Type, 1, opts)
	if err != nil {
		return nil, err
	}
	args, err := c.resolver.Resolve(params, "invoking ("+owner.String()+")."+m.Name)
	if err != nil {
		return nil, err
	}
	return call(m.Func, append([]reflect.Value{recv}, args...))
}

// Call invokes an arbitrary function with injected arguments.
//
//	_, err := c.Call(func(log *slog.Logger, routes []routing.Registrar) {
//	    log.Info("routes", "count", len(routes))
//	})
func (c *Container) Call(fn any, opts ...ParamOption) (any, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return nil, &ConfigurationError{Type: reflect.TypeOf(fn), Reason: "Call needs a non-nil func"}
	}
	params, err := parameters(v.Type(), v.Type(), 0, opts)
	if err != nil {
		return nil, err
	}
	args, err := c.resolver.Resolve(params, "calling "+v.Type().String())
	if err != nil {
		return nil, err
	}
	return call(v, args)
}

// call invokes fn and folds its results: no results → nil, a trailing error
// result → the error, otherwise the first result.
func call(fn reflect.Value, args []reflect.Value) (any, error) {
	var out []reflect.Value
	if fn.Type().IsVariadic() {
		out = fn.CallSlice(args)
	} else {
		out = fn.Call(args)
	}
	if len(out) == 0 {
		return nil, nil
	}

	last := out[len(out)-1]
	if fn.Type().Out(len(out)-1) == errorType {
		if !last.IsNil() {
			return nil, last.Interface().(error)
		}
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0].Interface(), nil
}
