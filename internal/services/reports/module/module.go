// Package module wires reports into the API using modkit
package module

import (
	"net/http"

	"partsearch/internal/modkit"
	"partsearch/internal/modkit/httpkit"
	"partsearch/internal/services/reports/domain"
	reportshttp "partsearch/internal/services/reports/http"
	"partsearch/internal/services/reports/service"
	searchdomain "partsearch/internal/services/search/domain"
)

// Ports exposed by the reports module
// Searcher is injected by the composer so filed reports can snapshot live results
type Ports struct {
	Writer   domain.WriterPort
	Searcher searchdomain.SearcherPort
}

// Module implements the reports service module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports Ports

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *service.Service
}

// New constructs the reports module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("reports"),
		modkit.WithPrefix("/reports"),
	}, opts...)...)

	mopts := FromConfig(deps.Cfg)
	svc := service.New(service.Config{
		Dir:    mopts.Dir,
		Prefix: mopts.Prefix,
	})

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Writer: svc, Searcher: injected.Searcher}

	external := b.Register
	m.register = func(r httpkit.Router) {
		reportshttp.Register(r, m.ports.Writer, m.ports.Searcher)
		if external != nil {
			external(r)
		}
	}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return m.name }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return m.prefix }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes mounts the module routes under its prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.prefix, m.mws, func(rr httpkit.Router) {
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		m.register(rr)
	})
}
