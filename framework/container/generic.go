package container

import (
	"fmt"
	"reflect"

	"github.com/km-arc/go-ioc/framework/collection"
)

// ── Generics helpers ──────────────────────────────────────────────────────────

// Declare adds the interface T to c's capability catalog.
//
//	container.Declare[Logger](c)
func Declare[T any](c *Container) {
	c.DeclareCapability(reflect.TypeFor[T]())
}

// DeclareSequence lets parameters of type collection.Sequence[T] receive every
// instance of T, held in a collection.ReadOnly[T].
//
//	container.DeclareSequence[Plugin](c)
//	c.Constructor(func(ps collection.Sequence[Plugin]) *Host { ... })
func DeclareSequence[T any](c *Container) {
	// ReadOnly[T] always implements Sequence[T]
	_ = c.DeclareCollection(reflect.TypeFor[collection.Sequence[T]](), reflect.TypeFor[collection.ReadOnly[T]]())
}

// Resolve returns the single instance registered under T.
//
//	// Instead of: raw, err := c.Get(reflect.TypeFor[*config.Config]())
//	// Write:      cfg, err := container.Resolve[*config.Config](c)
func Resolve[T any](c *Container) (T, error) {
	var zero T
	inst, err := c.Get(reflect.TypeFor[T]())
	if err != nil {
		return zero, err
	}
	return inst.(T), nil
}

// TryResolve is the tolerant form of Resolve.
func TryResolve[T any](c *Container) (T, bool) {
	inst, ok := c.TryGet(reflect.TypeFor[T]())
	if !ok {
		var zero T
		return zero, false
	}
	return inst.(T), true
}

// MustResolve is like Resolve but panics when T has no single instance.
func MustResolve[T any](c *Container) T {
	v, err := Resolve[T](c)
	if err != nil {
		panic(fmt.Sprintf("container: MustResolve[%s]: %v", reflect.TypeFor[T](), err))
	}
	return v
}

// ResolveAll returns every instance registered under T.
func ResolveAll[T any](c *Container) []T {
	all := c.All(reflect.TypeFor[T]())
	out := make([]T, len(all))
	for i, inst := range all {
		out[i] = inst.(T)
	}
	return out
}

// Make instantiates T without registering it.
func Make[T any](c *Container) (T, error) {
	var zero T
	inst, err := c.Instantiate(reflect.TypeFor[T]())
	if err != nil {
		return zero, err
	}
	return inst.(T), nil
}

// AddSelfOf instantiates T and registers it under T.
func AddSelfOf[T any](c *Container) (T, error) {
	return typed[T](c.AddSelfType(reflect.TypeFor[T]()))
}

// AddInterfacesOf instantiates T and registers it under its catalogued interfaces.
func AddInterfacesOf[T any](c *Container) (T, error) {
	return typed[T](c.AddInterfacesType(reflect.TypeFor[T]()))
}

// AddInterfacesAndSelfOf instantiates T and registers it under T and its
// catalogued interfaces.
func AddInterfacesAndSelfOf[T any](c *Container) (T, error) {
	return typed[T](c.AddInterfacesAndSelfType(reflect.TypeFor[T]()))
}

// AddAs registers instance under the capability T.
//
//	container.AddAs[Logger](c, logger)
func AddAs[T any](c *Container, instance T) error {
	return c.Add(reflect.TypeFor[T](), instance)
}

func typed[T any](inst any, err error) (T, error) {
	if err != nil {
		var zero T
		return zero, err
	}
	return inst.(T), nil
}
