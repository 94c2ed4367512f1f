// Command partsearch-cli runs a one-shot part availability search against
// the demo suppliers and prints the grouped result as JSON
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"strings"
	"time"

	"partsearch/internal/adapters/suppliers"
	"partsearch/internal/adapters/suppliers/fixture"
	"partsearch/internal/core/catalog"
	"partsearch/internal/platform/logger"
	"partsearch/internal/services/search/domain"
	"partsearch/internal/services/search/service"
)

func main() {
	rego := flag.String("rego", "", "vehicle registration to search for")
	state := flag.String("state", "", "registration state")
	cats := flag.String("categories", "", "comma separated categories (default: all)")
	sources := flag.String("sources", "", "comma separated source ids to enable (default: all)")
	timeout := flag.Duration("timeout", 5*time.Second, "per source fetch timeout")
	flag.Parse()

	l := logger.Get()
	if *rego == "" {
		l.Fatal().Msg("-rego is required")
	}

	reg := suppliers.NewRegistry()
	reg.Register(fixture.AutoPartsDirect())
	reg.Register(fixture.PartsHubPro())

	if *sources != "" {
		want := map[string]bool{}
		for _, id := range strings.Split(*sources, ",") {
			want[strings.TrimSpace(id)] = true
		}
		for _, id := range reg.IDs() {
			reg.SetEnabled(id, want[id])
		}
	}

	var requested []catalog.Category
	if *cats != "" {
		parsed, err := catalog.Parse(strings.Split(*cats, ","))
		if err != nil {
			l.Fatal().Err(err).Msg("bad categories")
		}
		requested = parsed
	}

	svc := service.New(reg.Enabled(), service.Config{AdapterTimeout: *timeout})
	res, err := svc.Search(context.Background(), domain.Query{
		Rego:       *rego,
		State:      *state,
		Categories: requested,
	})
	if err != nil {
		l.Fatal().Err(err).Msg("search failed")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		l.Fatal().Err(err).Msg("encode result")
	}
}
