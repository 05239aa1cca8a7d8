// Package debug exposes what a container holds, for humans: a Snapshot of
// registrations and declared capabilities, served over HTTP under
// /debug/container and printed by the CLI.
package debug

import (
	"net/http"
	"reflect"

	"github.com/km-arc/go-ioc/framework/container"
	gohttp "github.com/km-arc/go-ioc/framework/http"
	"github.com/km-arc/go-ioc/framework/routing"
)

// Snapshot describes the contents of a container at one point in time.
type Snapshot struct {
	Registrations []Registration `json:"registrations" yaml:"registrations"`
	Declared      []string       `json:"declared" yaml:"declared"`
}

// Registration is one capability and the runtime types of its instances.
type Registration struct {
	Capability string   `json:"capability" yaml:"capability"`
	Interface  bool     `json:"interface" yaml:"interface"`
	Instances  []string `json:"instances" yaml:"instances"`
}

// Take builds a Snapshot of inj. Registrations keep first-registration order.
func Take(inj container.Injector) Snapshot {
	snap := Snapshot{
		Registrations: []Registration{},
		Declared:      []string{},
	}
	for _, capability := range inj.Registered() {
		snap.Registrations = append(snap.Registrations, describe(inj, capability))
	}
	for _, capability := range inj.Capabilities() {
		snap.Declared = append(snap.Declared, capability.String())
	}
	return snap
}

// Lookup returns the registration whose capability prints as name.
func (s Snapshot) Lookup(name string) (Registration, bool) {
	for _, r := range s.Registrations {
		if r.Capability == name {
			return r, true
		}
	}
	return Registration{}, false
}

func describe(inj container.Injector, capability reflect.Type) Registration {
	all := inj.All(capability)
	reg := Registration{
		Capability: capability.String(),
		Interface:  capability.Kind() == reflect.Interface,
		Instances:  make([]string, len(all)),
	}
	for i, inst := range all {
		reg.Instances[i] = reflect.TypeOf(inst).String()
	}
	return reg
}

// ── Routes ────────────────────────────────────────────────────────────────────

// Routes serves container snapshots. It is a routing.Registrar.
//
//	GET /debug/container               full snapshot
//	GET /debug/container/{capability}  one registration, e.g. /debug/container/*config.Config
type Routes struct {
	inj container.Injector
}

var _ routing.Registrar = (*Routes)(nil)

// NewRoutes creates the debug routes over inj.
func NewRoutes(inj container.Injector) *Routes {
	return &Routes{inj: inj}
}

// Routes implements routing.Registrar.
func (d *Routes) Routes(r *routing.Router) {
	r.Prefix("/debug/container", func(r *routing.Router) {
		r.Get("/", d.index)
		r.Get("/{capability}", d.show)
	})
}

func (d *Routes) index(w http.ResponseWriter, _ *http.Request) {
	gohttp.NewResponse(w).Success(Take(d.inj))
}

func (d *Routes) show(w http.ResponseWriter, req *http.Request) {
	name := routing.Param(req, "capability")
	reg, ok := Take(d.inj).Lookup(name)
	if !ok {
		gohttp.NewResponse(w).NotFound("no registrations for " + name)
		return
	}
	gohttp.NewResponse(w).Success(reg)
}
