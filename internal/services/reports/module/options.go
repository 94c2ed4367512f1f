package module

import (
	"partsearch/internal/platform/config"
)

// Options holds configuration settings for the reports module
type Options struct {
	Dir    string
	Prefix string
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	rf := cfg.Prefix("CORE_REPORTS_")
	return Options{
		Dir:    rf.MayString("DIR", "issues"),
		Prefix: rf.MayString("PREFIX", "issue"),
	}
}
