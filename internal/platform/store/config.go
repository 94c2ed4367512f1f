package store

// Config selects and configures the optional backends
type Config struct {
	PG PGConfig
}

// PGConfig configures the postgres backend
type PGConfig struct {
	Enabled  bool
	URL      string
	MaxConns int32

	// SlowQueryMs marks queries at or above this duration as slow in logs
	// zero disables slow query logging
	SlowQueryMs int

	// LogSQL logs every statement at debug level when true
	LogSQL bool
}
