// Package api provides the HTTP API for the application
package api

import (
	"partsearch/internal/platform/config"
	"partsearch/internal/platform/logger"
	phttp "partsearch/internal/platform/net/http"
	"partsearch/internal/platform/store"

	"partsearch/internal/modkit"
	"partsearch/internal/modkit/httpkit"
	"partsearch/internal/modkit/module"

	"partsearch/internal/services/search/domain"
	searchmod "partsearch/internal/services/search/module"

	reportsmod "partsearch/internal/services/reports/module"
)

// Options are the API options
type Options struct {
	Config        config.Conf
	Store         *store.Store
	Logger        *logger.Logger
	Adapters      []domain.SourcePort
	EnableSwagger bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
	}

	// search first: reports borrows its Searcher port to snapshot results
	searchM := searchmod.New(deps, opt.Adapters)
	reportsM := reportsmod.New(deps, modkit.WithPorts(reportsmod.Ports{
		Searcher: module.MustPortsOf[searchmod.Ports](searchM).Searcher,
	}))

	mods := []module.Module{searchM, reportsM}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		phttp.MountSwagger(r, opt.EnableSwagger)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			m.MountRoutes(api)
		}
	})
}
