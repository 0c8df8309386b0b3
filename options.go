package adt

// Options configures a Registry and every schema it produces.
type Options struct {
	// ValidatePayloads makes constructors check payloads against concrete
	// variant types. Erased type parameters are never checked. (default: true)
	ValidatePayloads bool

	// Logging configuration
	LogLevel string // "error", "warn", "info", "debug"; empty disables logging, unknown means "warn" (default: "warn")
	Logger   Logger // Overrides LogLevel when set
}

// DefaultOptions returns the default registry configuration.
func DefaultOptions() Options {
	return Options{
		ValidatePayloads: true,
		LogLevel:         "warn",
	}
}

func (o Options) logger() Logger {
	if o.Logger != nil {
		return o.Logger
	}
	if o.LogLevel == "" {
		return noopLogger{}
	}
	level, err := ParseLogLevel(o.LogLevel)
	l := NewLogger(level, nil)
	if err != nil {
		l.Warnf("%v; using %s", err, level)
	}
	return l
}
