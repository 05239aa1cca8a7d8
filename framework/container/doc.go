// Package container provides a small reflection-driven IoC (Inversion of
// Control) container and a Service Provider system for Go.
//
// # Overview
//
// The container stores instances keyed by capability, a reflect.Type that is
// usually an interface type, and builds new objects by resolving each
// parameter of their constructor from those instances. It is meant for the
// composition phase of a program: register what you have, then let the
// container build the rest of the graph without hand-written factories.
//
// There are no scopes or lifetimes, no cycle detection and no locking. The
// container never registers anything on its own except itself.
//
// # Registering instances
//
//	c := container.New()
//
//	// under the concrete type only
//	// *config.Config
//	c.AddSelf(cfg)
//
//	// under every catalogued interface the type implements
//	container.Declare[Logger](c)
//	c.AddInterfaces(logger)
//
//	// both
//	c.AddInterfacesAndSelf(store)
//
// Go cannot list the interfaces a type implements, so AddInterfaces checks
// the type against a catalog. Interfaces enter it through Declare /
// DeclareCapability, through the parameter types of declared constructors, and
// through Add / AddAs.
//
// # Constructors
//
// Go has no constructor reflection; constructors are declared explicitly:
//
//	c.Constructor(NewService, container.Named("log", "plugins"))
//
//	svc, err := container.Make[*Service](c)          // build, do not register
//	svc, err := container.AddSelfOf[*Service](c)     // build and register
//
// A type must have exactly one eligible constructor. Struct and pointer-to-
// struct types without a declared one get an implicit constructor that returns
// their zero value.
//
// # Parameters
//
//	Logger                       the single Logger instance, else its default, else error
//	[]Plugin                     every Plugin instance
//	iter.Seq[Plugin]             every Plugin instance, as a sequence
//	iter.Seq2[int, Plugin]       every Plugin instance, indexed
//	collection.List[Plugin]      every Plugin instance, in a new container
//	type Plugins []Plugin        any named slice works the same way
//	collection.Sequence[Plugin]  every Plugin instance, once DeclareSequence[Plugin] ran
//	container.Injector           the container itself
//
// Collection parameters never fail; a capability without registrations gives
// an empty collection. Defaults are declared per parameter:
//
//	c.Constructor(NewMailer,
//	    container.Named("transport", "log"),
//	    container.Default("log", slog.Default()),
//	)
//
// # Invoking methods
//
// Invoke resolves a method's parameters at call time, which suits
// post-construction hooks:
//
//	_, err := c.Invoke(svc, "Start")
//
// # Errors
//
// Every failure is returned to the caller: *NotFoundError (ErrNotFound),
// *ConfigurationError (ErrConfiguration) and *ResolutionError (ErrResolution).
// A ResolutionError names the capability, the parameter and the operation in
// progress:
//
//	container: cannot resolve app.Logger for parameter "log" while instantiating *app.Service
//
// # Service Providers
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(c *container.Container) error {
//	    return c.Constructor(mail.NewSMTP)
//	}
//
//	func (p *AppServiceProvider) Boot(log *slog.Logger) {
//	    log.Info("application booted")
//	}
//
//	registry := container.NewProviderRegistry(c)
//	registry.Register(&AppServiceProvider{})
//	registry.Boot()
package container
