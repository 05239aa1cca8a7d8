package container

import (
	"fmt"
	"reflect"
)

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider groups the registrations of one part of an application.
//
// Register runs immediately when the provider is added. A provider may also
// have an exported Boot method with any parameters; it runs after every
// provider added so far has registered, with its parameters resolved from the
// container at that point.
//
//	type MailProvider struct{ container.BaseProvider }
//
//	func (p *MailProvider) Register(c *container.Container) error {
//	    return c.Constructor(mail.NewSMTP)
//	}
//
//	func (p *MailProvider) Boot(log *slog.Logger, m *mail.SMTP) {
//	    log.Info("mailer ready", "host", m.Host)
//	}
type ServiceProvider interface {
	Register(c *Container) error
}

// BaseProvider is an embeddable no-op provider. Embed it and override only
// what you need.
type BaseProvider struct{}

func (p *BaseProvider) Register(_ *Container) error { return nil }

// bootMethod is the name of the optional hook run by ProviderRegistry.Boot.
const bootMethod = "Boot"

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry registers providers in order and runs their boot hooks.
// Registration order matters: a provider may only instantiate types whose
// dependencies earlier providers have registered.
type ProviderRegistry struct {
	app        *Container
	providers  []ServiceProvider
	registered map[ServiceProvider]bool
	bootedOnes map[ServiceProvider]bool
	booted     bool
}

// NewProviderRegistry creates a registry bound to app.
func NewProviderRegistry(app *Container) *ProviderRegistry {
	return &ProviderRegistry{
		app:        app,
		registered: make(map[ServiceProvider]bool),
		bootedOnes: make(map[ServiceProvider]bool),
	}
}

// Register adds a provider and runs its Register method. Adding the same
// provider twice is a no-op. A provider added after Boot is booted at once.
func (r *ProviderRegistry) Register(provider ServiceProvider) error {
	if r.registered[provider] {
		return nil
	}
	if err := provider.Register(r.app); err != nil {
		return fmt.Errorf("registering %T: %w", provider, err)
	}
	r.registered[provider] = true
	r.providers = append(r.providers, provider)

	if r.booted {
		return r.boot(provider)
	}
	return nil
}

// Boot runs every provider's boot hook in registration order and stops at the
// first error. Providers registered by a boot hook are booted in the same
// pass. After a failure the registry is not booted; calling Boot again resumes
// at the provider that failed. Once Boot succeeds, calling it again is a no-op.
func (r *ProviderRegistry) Boot() error {
	if r.booted {
		return nil
	}
	for i := 0; i < len(r.providers); i++ {
		if err := r.boot(r.providers[i]); err != nil {
			return err
		}
	}
	r.booted = true
	return nil
}

func (r *ProviderRegistry) boot(provider ServiceProvider) error {
	if r.bootedOnes[provider] {
		return nil
	}
	if _, ok := reflect.TypeOf(provider).MethodByName(bootMethod); ok {
		if _, err := r.app.Invoke(provider, bootMethod); err != nil {
			return fmt.Errorf("booting %T: %w", provider, err)
		}
	}
	r.bootedOnes[provider] = true
	return nil
}

// Booted reports whether Boot has completed successfully.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Providers returns the registered providers in registration order.
func (r *ProviderRegistry) Providers() []ServiceProvider { return r.providers }
