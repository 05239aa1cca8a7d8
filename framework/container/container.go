package container

import "reflect"

// ── Injector ──────────────────────────────────────────────────────────────────

// Injector is the capability a Container registers itself under. Components
// that need late resolution declare a parameter of this type.
//
//	func NewDispatcher(inj container.Injector) *Dispatcher
type Injector interface {
	Contains(capability reflect.Type) bool
	Get(capability reflect.Type) (any, error)
	TryGet(capability reflect.Type) (any, bool)
	All(capability reflect.Type) []any

	AddSelf(instance any) error
	AddInterfaces(instance any) error
	AddInterfacesAndSelf(instance any) error
	AddSelfType(t reflect.Type) (any, error)
	AddInterfacesType(t reflect.Type) (any, error)
	AddInterfacesAndSelfType(t reflect.Type) (any, error)

	Instantiate(t reflect.Type) (any, error)
	Invoke(instance any, method string, opts ...ParamOption) (any, error)
	Call(fn any, opts ...ParamOption) (any, error)

	// Registered lists capabilities with registrations; Capabilities lists
	// the interface catalog.
	Registered() []reflect.Type
	Capabilities() []reflect.Type
}

var injectorType = reflect.TypeFor[Injector]()

// ── Container ─────────────────────────────────────────────────────────────────

// Container is the IoC container: a Registry of instances keyed by capability,
// a table of declared constructors, and a catalog of known capability
// interfaces.
//
// A Container is meant for the single-threaded bootstrap phase of a program.
// It does no locking; callers serialize access if they share it.
type Container struct {
	reg      *Registry
	resolver *Resolver

	// concrete type → declared constructors
	ctors map[reflect.Type][]*constructor

	// interfaces AddInterfaces checks against, in declaration order
	catalog  []reflect.Type
	declared map[reflect.Type]bool
}

// New creates an empty container. Its last step registers the container under
// Injector, so any constructor can ask for the container itself.
func New() *Container {
	reg := NewRegistry()
	c := &Container{
		reg:      reg,
		resolver: NewResolver(reg),
		ctors:    make(map[reflect.Type][]*constructor),
		declared: make(map[reflect.Type]bool),
	}
	c.declare(injectorType)
	_ = reg.Add(injectorType, Injector(c))
	return c
}

// Registry exposes the underlying instance store.
func (c *Container) Registry() *Registry { return c.reg }

// Registered returns every capability with at least one registration, in the
// order they were first registered.
func (c *Container) Registered() []reflect.Type { return c.reg.Capabilities() }

// ── Capability catalog ────────────────────────────────────────────────────────

// DeclareCapability adds interface types to the catalog. Non-interface types
// and the empty interface are ignored.
func (c *Container) DeclareCapability(types ...reflect.Type) {
	for _, t := range types {
		c.declare(t)
	}
}

// Capabilities returns the catalogued interfaces in declaration order.
func (c *Container) Capabilities() []reflect.Type {
	out := make([]reflect.Type, len(c.catalog))
	copy(out, c.catalog)
	return out
}

func (c *Container) declare(t reflect.Type) {
	if t == nil || t.Kind() != reflect.Interface || t.NumMethod() == 0 || c.declared[t] {
		return
	}
	c.declared[t] = true
	c.catalog = append(c.catalog, t)
}

// DeclareCollection makes parameters of the interface type iface resolve like
// a collection parameter: they receive every instance of concrete's element
// type, held in a new concrete. concrete must be a named slice type that
// implements iface. Reflection cannot build a generic type at runtime, so
// interface-typed collections need this declaration; see DeclareSequence.
func (c *Container) DeclareCollection(iface, concrete reflect.Type) error {
	if err := c.resolver.AddView(iface, concrete); err != nil {
		return err
	}
	c.declare(concrete.Elem())
	return nil
}

// interfacesOf returns every catalogued interface t implements. Injector is
// left out: only the container itself is registered under it, so types that
// embed a *Container do not become a second candidate.
func (c *Container) interfacesOf(t reflect.Type) []reflect.Type {
	var out []reflect.Type
	for _, iface := range c.catalog {
		if iface != injectorType && t.Implements(iface) {
			out = append(out, iface)
		}
	}
	return out
}

// ── Registration ──────────────────────────────────────────────────────────────

// Add registers instance under an explicit capability. An interface capability
// joins the catalog.
func (c *Container) Add(capability reflect.Type, instance any) error {
	if err := c.reg.Add(capability, instance); err != nil {
		return err
	}
	c.declare(capability)
	return nil
}

// AddSelf registers instance under its concrete runtime type only.
//
//	c.AddSelf(cfg) // resolvable as *config.Config
func (c *Container) AddSelf(instance any) error {
	if instance == nil {
		return &ConfigurationError{Reason: "nil instance"}
	}
	return c.reg.Add(reflect.TypeOf(instance), instance)
}

// AddInterfaces registers instance under every catalogued interface its
// runtime type implements. The concrete type itself is not registered.
// An instance that implements none of them is a *ConfigurationError, since it
// would otherwise be unreachable.
//
//	container.Declare[Logger](c)
//	c.AddInterfaces(logger) // resolvable as Logger, not as *stdLogger
func (c *Container) AddInterfaces(instance any) error {
	n, err := c.addInterfaces(instance)
	if err != nil {
		return err
	}
	if n == 0 {
		return &ConfigurationError{
			Type:   reflect.TypeOf(instance),
			Reason: "implements no declared capability (declare one with Declare, Constructor or Add first)",
		}
	}
	return nil
}

// AddInterfacesAndSelf is AddInterfaces plus AddSelf. The instance is always
// reachable through its own type, so matching no catalogued interface is fine.
func (c *Container) AddInterfacesAndSelf(instance any) error {
	if _, err := c.addInterfaces(instance); err != nil {
		return err
	}
	return c.AddSelf(instance)
}

func (c *Container) addInterfaces(instance any) (int, error) {
	if instance == nil {
		return 0, &ConfigurationError{Reason: "nil instance"}
	}
	ifaces := c.interfacesOf(reflect.TypeOf(instance))
	for _, iface := range ifaces {
		if err := c.reg.Add(iface, instance); err != nil {
			return 0, err
		}
	}
	return len(ifaces), nil
}

// AddSelfType instantiates t and registers the result with AddSelf.
func (c *Container) AddSelfType(t reflect.Type) (any, error) {
	return c.instantiateAnd(t, c.AddSelf)
}

// AddInterfacesType instantiates t and registers the result with AddInterfaces.
func (c *Container) AddInterfacesType(t reflect.Type) (any, error) {
	return c.instantiateAnd(t, c.AddInterfaces)
}

// AddInterfacesAndSelfType instantiates t and registers the result with
// AddInterfacesAndSelf.
func (c *Container) AddInterfacesAndSelfType(t reflect.Type) (any, error) {
	return c.instantiateAnd(t, c.AddInterfacesAndSelf)
}

func (c *Container) instantiateAnd(t reflect.Type, add func(any) error) (any, error) {
	inst, err := c.Instantiate(t)
	if err != nil {
		return nil, err
	}
	if err := add(inst); err != nil {
		return nil, err
	}
	return inst, nil
}

// ── Queries ───────────────────────────────────────────────────────────────────

// Contains reports whether capability has any registration.
func (c *Container) Contains(capability reflect.Type) bool { return c.reg.Contains(capability) }

// Get returns the single instance of capability, or a *NotFoundError.
func (c *Container) Get(capability reflect.Type) (any, error) { return c.reg.Get(capability) }

// TryGet is the tolerant form of Get.
func (c *Container) TryGet(capability reflect.Type) (any, bool) { return c.reg.Single(capability) }

// All returns every instance of capability in registration order.
func (c *Container) All(capability reflect.Type) []any { return c.reg.All(capability) }
