package module

import (
	"time"

	"partsearch/internal/platform/config"
)

// Options holds configuration settings for the search module
type Options struct {
	AdapterTimeout time.Duration

	// mirrored catalog source, used only when a Postgres seam is wired
	CatalogSourceID string
	CatalogBaseURL  string
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	sf := cfg.Prefix("CORE_SEARCH_")
	return Options{
		AdapterTimeout:  sf.MayDuration("ADAPTER_TIMEOUT", 5*time.Second),
		CatalogSourceID: sf.MayString("CATALOG_SOURCE_ID", "local_mirror"),
		CatalogBaseURL:  sf.MayString("CATALOG_BASE_URL", ""),
	}
}
