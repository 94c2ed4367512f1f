// Package module wires search into the API using modkit
package module

import (
	"net/http"

	"partsearch/internal/adapters/suppliers/pgcatalog"
	"partsearch/internal/modkit"
	"partsearch/internal/modkit/httpkit"
	"partsearch/internal/modkit/repokit"
	"partsearch/internal/services/search/domain"
	searchhttp "partsearch/internal/services/search/http"
	"partsearch/internal/services/search/service"
)

// Ports exposed by the search module
type Ports struct {
	Searcher domain.SearcherPort
}

// Module implements the search service module
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

// New constructs the search module over the given source adapters
// adapter order fixes the merge order of the pipeline; when deps carry a
// Postgres seam a mirrored catalog source is bound and appended last
func New(deps modkit.Deps, adapters []domain.SourcePort, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("search"),
		modkit.WithPrefix("/search"),
	}, opts...)...)

	mopts := FromConfig(deps.Cfg)

	if deps.PG != nil {
		src := repokit.MustBind(
			pgcatalog.NewBinder(mopts.CatalogSourceID, nil, mopts.CatalogBaseURL),
			deps.PG,
		)
		adapters = append(adapters, src)
	}

	svc := service.New(adapters, service.Config{
		AdapterTimeout: mopts.AdapterTimeout,
	})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Searcher: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		searchhttp.Register(r, m.ports.Searcher)
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
