package gitsemver

import (
	"io"

	"github.com/charmbracelet/log"
)

// Option configures gateways, the config store and the engine.
type Option func(*options)

type options struct {
	logger *log.Logger
}

// WithLogger routes diagnostics to l. Without it nothing is logged.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func applyOptions(opts []Option) options {
	o := options{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
