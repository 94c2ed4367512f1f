// @title         Partsearch API
// @version       0.1.0
// @description   Part availability aggregation across supplier sources

package main

import (
	"context"

	"partsearch/internal/platform/config"
	"partsearch/internal/platform/logger"
	phttp "partsearch/internal/platform/net/http"
	"partsearch/internal/platform/store"

	"partsearch/internal/adapters/suppliers"
	"partsearch/internal/adapters/suppliers/fixture"
	"partsearch/internal/modkit/repokit"
	"partsearch/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	pgCfg := root.Prefix("SERVICE_PGSQL_") // pgCfg lives under SERVICE_PGSQL_*

	// bring up logging early
	l := logger.Get()

	// postgres is optional; without it only the fixture suppliers run
	stCfg := store.Config{}
	if url := pgCfg.MayString("DBURL", ""); url != "" {
		stCfg.PG = store.PGConfig{
			Enabled:     true,
			URL:         url,
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		}
	}

	st, err := store.Open(context.Background(), stCfg, store.WithLogger(*logger.Get()))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	repokit.MustGuard(context.Background(), st)
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// supplier sources in registration order; order fixes merge determinism
	// the mirrored catalog source is bound inside the search module when PG is up
	reg := suppliers.NewRegistry()
	reg.Register(fixture.AutoPartsDirect())
	reg.Register(fixture.PartsHubPro())
	for _, id := range apiCfg.MayCSV("DISABLED_SOURCES", nil) {
		if !reg.SetEnabled(id, false) {
			l.Warn().Str("source", id).Msg("cannot disable unknown source")
		}
	}

	// http server (reads CORE_API_PORT)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:        apiCfg,
			Store:         st,
			Logger:        l,
			Adapters:      reg.Enabled(),
			EnableSwagger: apiCfg.MayBool("SWAGGER", true),
		},
	)

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
