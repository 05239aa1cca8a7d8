package providers

import (
	"io"
	"log/slog"
	"os"
	"reflect"
	"strings"

	"github.com/km-arc/go-ioc/framework/config"
	"github.com/km-arc/go-ioc/framework/container"
	"github.com/km-arc/go-ioc/framework/debug"
	"github.com/km-arc/go-ioc/framework/routing"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider loads the application configuration from .env files
// and the environment.
//
// Registers:
//   - *config.Config
type ConfigServiceProvider struct {
	container.BaseProvider
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(app *container.Container) error {
	return app.AddSelf(config.Load(p.EnvFiles...))
}

// ── LogServiceProvider ────────────────────────────────────────────────────────

// LogServiceProvider builds the application logger from config.
//
// Registers:
//   - *slog.Logger
//
// Needs *config.Config, so it must come after ConfigServiceProvider.
type LogServiceProvider struct {
	container.BaseProvider
	Output io.Writer // default: os.Stderr
}

func (p *LogServiceProvider) Register(app *container.Container) error {
	out := p.Output
	if out == nil {
		out = os.Stderr
	}
	err := app.Constructor(func(cfg *config.Config) *slog.Logger {
		return NewLogger(cfg.Log, out)
	}, container.Named("cfg"))
	if err != nil {
		return err
	}
	_, err = app.AddSelfType(reflect.TypeFor[*slog.Logger]())
	return err
}

// NewLogger builds a slog.Logger from the Log section of the config.
// Unknown levels mean info; unknown formats mean text.
func NewLogger(cfg config.LogConfig, out io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(out, opts))
	}
	return slog.New(slog.NewTextHandler(out, opts))
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider declares the router constructor and builds the router
// at boot, once every routing.Registrar is registered.
//
// Registers (at boot):
//   - *routing.Router
//
// Needs *slog.Logger and takes every routing.Registrar.
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *container.Container) error {
	return app.Constructor(routing.New, container.Named("log", "registrars"))
}

func (p *RoutingServiceProvider) Boot(app container.Injector, log *slog.Logger) error {
	if _, err := app.AddSelfType(reflect.TypeFor[*routing.Router]()); err != nil {
		return err
	}
	log.Debug("router ready", "registrars", len(app.All(reflect.TypeFor[routing.Registrar]())))
	return nil
}

// ── DebugServiceProvider ──────────────────────────────────────────────────────

// DebugServiceProvider mounts the container introspection routes.
//
// Registers:
//   - routing.Registrar → *debug.Routes
//
// Must come after RoutingServiceProvider, which declares routing.Registrar.
type DebugServiceProvider struct {
	container.BaseProvider
}

func (p *DebugServiceProvider) Register(app *container.Container) error {
	if err := app.Constructor(debug.NewRoutes, container.Named("inj")); err != nil {
		return err
	}
	_, err := app.AddInterfacesType(reflect.TypeFor[*debug.Routes]())
	return err
}
