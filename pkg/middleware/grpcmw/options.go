// Package grpcmw provides gRPC server interceptors that publish one line
// per RPC through a ringlog core. The interceptors are build-tag gated:
// compile with the 'grpc' tag to enable them, otherwise stubs are used.
package grpcmw

import (
	"github.com/hyp3rd/ringlog"
)

// Option defines a configuration option for the gRPC middleware.
type Option func(*options)

type options struct {
	level    ringlog.Level
	traceKey string
}

// WithLevel customizes the level used for RPC completion lines. Failed RPCs
// are always published at the Error level.
func WithLevel(level ringlog.Level) Option {
	return func(o *options) {
		if o == nil || !level.IsValid() {
			return
		}

		o.level = level
	}
}

// WithTraceKey customizes the metadata key whose value is appended to each
// RPC line when present.
func WithTraceKey(name string) Option {
	return func(o *options) {
		if o == nil || name == "" {
			return
		}

		o.traceKey = name
	}
}

func actualOptions(opts ...Option) options {
	cfg := options{
		level: ringlog.InfoLevel,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.traceKey == "" {
		cfg.traceKey = "x-trace-id"
	}

	return cfg
}
