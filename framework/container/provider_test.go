package container_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-ioc/framework/container"
)

// ── stub providers ────────────────────────────────────────────────────────────

type eagerProvider struct {
	container.BaseProvider
	registerCalls int
	bootCalled    bool
}

func (p *eagerProvider) Register(app *container.Container) error {
	p.registerCalls++
	return container.AddAs[Logger](app, &memLogger{})
}

func (p *eagerProvider) Boot() {
	p.bootCalled = true
}

// bootingProvider's Boot hook needs a Logger and every Plugin.
type bootingProvider struct {
	container.BaseProvider
	log     Logger
	plugins []Plugin
}

func (p *bootingProvider) Boot(log Logger, plugins []Plugin) {
	p.log = log
	p.plugins = plugins
}

// pluginProvider registers plugins.
type pluginProvider struct {
	container.BaseProvider
	names []string
}

func (p *pluginProvider) Register(app *container.Container) error {
	for _, n := range p.names {
		if err := container.AddAs[Plugin](app, &plugin{name: n}); err != nil {
			return err
		}
	}
	return nil
}

type failingProvider struct {
	container.BaseProvider
	registerErr error
	bootErr     error
}

func (p *failingProvider) Register(_ *container.Container) error { return p.registerErr }

func (p *failingProvider) Boot() error { return p.bootErr }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

func TestProviderRegistry_RegisterCalledImmediately(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &eagerProvider{}
	require.NoError(t, reg.Register(p))

	assert.Equal(t, 1, p.registerCalls)
	assert.True(t, c.Contains(loggerType))
}

func TestProviderRegistry_BootCalledAfterBoot(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &eagerProvider{}
	require.NoError(t, reg.Register(p))
	assert.False(t, p.bootCalled, "Boot should not run before registry.Boot()")

	require.NoError(t, reg.Boot())
	assert.True(t, p.bootCalled)
}

func TestProviderRegistry_BootParametersInjected(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	booting := &bootingProvider{}
	require.NoError(t, reg.Register(booting))
	require.NoError(t, reg.Register(&eagerProvider{}))
	require.NoError(t, reg.Register(&pluginProvider{names: []string{"a", "b"}}))

	// Boot sees registrations from providers added after it.
	require.NoError(t, reg.Boot())
	assert.NotNil(t, booting.log)
	assert.Equal(t, []string{"a", "b"}, names(booting.plugins))
}

func TestProviderRegistry_BootUnresolvableFails(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	require.NoError(t, reg.Register(&bootingProvider{}))

	err := reg.Boot()
	require.ErrorIs(t, err, container.ErrResolution)
	assert.Contains(t, err.Error(), "booting *container_test.bootingProvider")
}

func TestProviderRegistry_Boot_Idempotent(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	require.NoError(t, reg.Register(&eagerProvider{}))

	require.NoError(t, reg.Boot())
	require.NoError(t, reg.Boot())
	assert.True(t, reg.Booted())
}

func TestProviderRegistry_Booted_FalseBeforeBoot(t *testing.T) {
	reg := container.NewProviderRegistry(container.New())
	assert.False(t, reg.Booted())
}

func TestProviderRegistry_DuplicateRegister_Ignored(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &eagerProvider{}
	require.NoError(t, reg.Register(p))
	require.NoError(t, reg.Register(p))

	assert.Equal(t, 1, p.registerCalls)
	assert.Len(t, reg.Providers(), 1)
}

func TestProviderRegistry_RegisterError(t *testing.T) {
	boom := errors.New("boom")
	reg := container.NewProviderRegistry(container.New())

	err := reg.Register(&failingProvider{registerErr: boom})
	require.ErrorIs(t, err, boom)
	assert.Empty(t, reg.Providers())
}

func TestProviderRegistry_BootError_StopsAtFirst(t *testing.T) {
	boom := errors.New("boom")
	reg := container.NewProviderRegistry(container.New())

	require.NoError(t, reg.Register(&failingProvider{bootErr: boom}))
	later := &eagerProvider{}
	require.NoError(t, reg.Register(later))

	require.ErrorIs(t, reg.Boot(), boom)
	assert.False(t, later.bootCalled)
}

func TestProviderRegistry_ProvidersInOrder(t *testing.T) {
	reg := container.NewProviderRegistry(container.New())
	a, b := &pluginProvider{}, &eagerProvider{}
	require.NoError(t, reg.Register(a))
	require.NoError(t, reg.Register(b))

	assert.Equal(t, []container.ServiceProvider{a, b}, reg.Providers())
}

func TestProviderRegistry_RegisterAfterBoot_BootsImmediately(t *testing.T) {
	reg := container.NewProviderRegistry(container.New())
	require.NoError(t, reg.Boot())

	p := &eagerProvider{}
	require.NoError(t, reg.Register(p))
	assert.True(t, p.bootCalled)
}

// countingProvider counts its boot hook runs.
type countingProvider struct {
	container.BaseProvider
	boots int
}

func (p *countingProvider) Boot() { p.boots++ }

func TestProviderRegistry_BootError_NotBooted(t *testing.T) {
	boom := errors.New("boom")
	reg := container.NewProviderRegistry(container.New())

	first := &countingProvider{}
	failing := &failingProvider{bootErr: boom}
	later := &countingProvider{}
	require.NoError(t, reg.Register(first))
	require.NoError(t, reg.Register(failing))
	require.NoError(t, reg.Register(later))

	require.ErrorIs(t, reg.Boot(), boom)
	assert.False(t, reg.Booted())
	assert.Equal(t, 1, first.boots)
	assert.Zero(t, later.boots)

	// a second Boot resumes at the failed provider
	failing.bootErr = nil
	require.NoError(t, reg.Boot())
	assert.True(t, reg.Booted())
	assert.Equal(t, 1, first.boots)
	assert.Equal(t, 1, later.boots)
}

// spawningProvider registers another provider from its boot hook.
type spawningProvider struct {
	container.BaseProvider
	reg   *container.ProviderRegistry
	child *countingProvider
}

func (p *spawningProvider) Boot() error { return p.reg.Register(p.child) }

func TestProviderRegistry_ProviderRegisteredDuringBoot(t *testing.T) {
	reg := container.NewProviderRegistry(container.New())
	child := &countingProvider{}
	require.NoError(t, reg.Register(&spawningProvider{reg: reg, child: child}))

	require.NoError(t, reg.Boot())
	assert.Equal(t, 1, child.boots)
	assert.Len(t, reg.Providers(), 2)
}

// ── BaseProvider defaults ─────────────────────────────────────────────────────

func TestBaseProvider_Defaults(t *testing.T) {
	var p container.BaseProvider
	assert.NoError(t, p.Register(container.New()))

	// BaseProvider has no Boot hook
	reg := container.NewProviderRegistry(container.New())
	require.NoError(t, reg.Register(&p))
	assert.NoError(t, reg.Boot())
}
