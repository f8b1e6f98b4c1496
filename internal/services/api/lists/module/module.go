// Package module wires the lists and segments endpoints using modkit
package module

import (
	"net/http"

	modkit "audiencehub/internal/modkit"
	"audiencehub/internal/modkit/httpkit"
	str "audiencehub/internal/platform/strings"

	listshttp "audiencehub/internal/services/api/lists/http"
	listsdom "audiencehub/internal/services/lists/domain"
)

// Module implements the modkit.Module interface for one kind. The same
// module is mounted twice, once as "lists" and once as "segments"; the kind
// decides which extra routes exist.
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string
	kind   listsdom.Kind

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)
}

// New constructs a lists module for the given kind. The service ports are
// injected by the caller via modkit.WithPorts since the lists service spans
// the tenancy and membership verticals.
func New(deps modkit.Deps, kind listsdom.Kind, opts ...modkit.Option) modkit.Module {
	name, prefix := "lists", "/lists"
	if kind == listsdom.KindSegment {
		name, prefix = "segments", "/segments"
	}
	b := modkit.Build(append([]modkit.Option{modkit.WithName(name), modkit.WithPrefix(prefix)}, opts...)...)

	ports, ok := b.Ports.(Ports)
	if !ok {
		panic("lists module requires Ports via modkit.WithPorts")
	}
	if ports.Lists == nil || ports.Members == nil || ports.Tenancy == nil {
		panic("lists module requires lists, membership, and tenancy ports")
	}

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		kind:      kind,
		mws:       b.Mw,
		ports:     ports,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		listshttp.Register(r, kind, ports.Lists, ports.Members, ports.Tenancy)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
