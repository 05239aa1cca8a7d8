package container_test

import (
	"fmt"
	"reflect"
	"testing"

	"pgregory.net/rapid"

	"github.com/km-arc/go-ioc/framework/container"
)

// Property: All returns exactly the distinct registered instances, in
// insertion order, however many duplicate registrations were made.
func TestProperty_AllIsInsertionOrderedSet(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		pool := rapid.IntRange(0, 8).Draw(rt, "pool")
		plugins := make([]Plugin, pool)
		for i := range plugins {
			plugins[i] = &plugin{name: fmt.Sprint(i)}
		}

		c := container.New()
		var want []Plugin
		seen := map[int]bool{}
		adds := rapid.SliceOfN(rapid.IntRange(0, max(0, pool-1)), 0, 20).Draw(rt, "adds")
		for _, i := range adds {
			if pool == 0 {
				break
			}
			if err := container.AddAs[Plugin](c, plugins[i]); err != nil {
				rt.Fatalf("AddAs: %v", err)
			}
			if !seen[i] {
				seen[i] = true
				want = append(want, plugins[i])
			}
		}

		got := container.ResolveAll[Plugin](c)
		if len(got) != len(want) {
			rt.Fatalf("ResolveAll: got %d instances, want %d", len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				rt.Fatalf("ResolveAll[%d]: got %s, want %s", i, got[i].Name(), want[i].Name())
			}
		}

		_, single := container.TryResolve[Plugin](c)
		if single != (len(want) == 1) {
			rt.Fatalf("TryResolve ok=%v with %d instances", single, len(want))
		}
		if c.Contains(pluginType) != (len(want) > 0) {
			rt.Fatalf("Contains mismatch with %d instances", len(want))
		}
	})
}

// Property: a collection parameter always resolves, to every registered
// instance, whatever the count.
func TestProperty_CollectionParameterNeverFails(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 10).Draw(rt, "n")

		c := container.New()
		for i := range n {
			if err := container.AddAs[Plugin](c, &plugin{name: fmt.Sprint(i)}); err != nil {
				rt.Fatalf("AddAs: %v", err)
			}
		}
		if err := c.Constructor(NewHost); err != nil {
			rt.Fatalf("Constructor: %v", err)
		}

		host, err := container.Make[*Host](c)
		if err != nil {
			rt.Fatalf("Make: %v", err)
		}
		if len(host.Plugins) != n {
			rt.Fatalf("got %d plugins, want %d", len(host.Plugins), n)
		}
	})
}

// Property: a single-capability parameter with a default resolves to the
// registered instance when there is exactly one, else to the default.
func TestProperty_DefaultFallback(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 3).Draw(rt, "n")
		fallback := &memLogger{}

		c := container.New()
		var registered []Logger
		for range n {
			l := &memLogger{}
			registered = append(registered, l)
			if err := container.AddAs[Logger](c, l); err != nil {
				rt.Fatalf("AddAs: %v", err)
			}
		}
		if err := c.Constructor(NewService, container.Named("log"), container.Default("log", fallback)); err != nil {
			rt.Fatalf("Constructor: %v", err)
		}

		svc, err := container.Make[*Service](c)
		if err != nil {
			rt.Fatalf("Make: %v", err)
		}
		want := Logger(fallback)
		if n == 1 {
			want = registered[0]
		}
		if svc.Log != want {
			rt.Fatalf("with %d registrations got %p, want %p", n, svc.Log, want)
		}
	})
}

// Property: AddInterfaces never registers the concrete type; AddInterfacesAndSelf
// always does; both register under every declared interface implemented.
func TestProperty_FacadeModes(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		withSelf := rapid.Bool().Draw(rt, "withSelf")
		declareClock := rapid.Bool().Draw(rt, "declareClock")

		c := container.New()
		container.Declare[Logger](c)
		if declareClock {
			container.Declare[Clock](c)
		}

		s := &stamper{}
		var err error
		if withSelf {
			err = c.AddInterfacesAndSelf(s)
		} else {
			err = c.AddInterfaces(s)
		}
		if err != nil {
			rt.Fatalf("add: %v", err)
		}

		if c.Contains(reflect.TypeFor[*stamper]()) != withSelf {
			rt.Fatalf("self registration = %v, want %v", !withSelf, withSelf)
		}
		if !c.Contains(loggerType) {
			rt.Fatalf("Logger not registered")
		}
		if c.Contains(clockType) != declareClock {
			rt.Fatalf("Clock registered = %v, want %v", !declareClock, declareClock)
		}
	})
}
