// Package log provides application-level setup for the ringlog core.
//
// This package creates and configures cores with appropriate settings based
// on the environment (production or non-production) and service name:
//
// - In non-production environments: Trace level with colorized console output
// - In production environments: Info level with plain console output
// - Service name and environment prefixed to every delivered line
//
// It is intended to be the primary entry point for applications using the
// core, providing a simple way to obtain a well-configured instance.
//
// Usage:
//
//	core, err := log.NewWithDefaults("development", "user-service")
//	if err != nil {
//		panic(err)
//	}
//	defer core.Close()
//
//	core.Infof("service started")
//	core.Flush()
package log

import (
	"context"
	"os"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/ringlog"
	"github.com/hyp3rd/ringlog/internal/constants"
)

// NewWithDefaults creates a new core for the specified environment and
// service, with a console sink on stdout already registered. In
// non-production environments the sink is colorized and the minimum level
// is Trace; otherwise colors follow terminal detection and the minimum
// level is Info. Metrics snapshots taken on flush and close are forwarded
// to the handlers registered with ringlog.RegisterPoolMetricsHandler. The
// caller owns the returned core and must Close it.
func NewWithDefaults(environment, service string) (*ringlog.Core, error) {
	config := ringlog.DefaultConfig()
	config.MetricsReporter = func(metrics ringlog.PoolMetrics) {
		ringlog.EmitPoolMetrics(context.Background(), metrics)
	}

	mode := ringlog.ColorModeAuto
	if environment == constants.NonProductionEnvironment {
		config.MinLevel = ringlog.TraceLevel
		mode = ringlog.ColorModeAlways
	} else {
		config.MinLevel = ringlog.InfoLevel
	}

	core, err := ringlog.NewCore(config)
	if err != nil {
		return nil, ewrap.Wrap(err, "failed to create logging core")
	}

	sink := ringlog.NewConsoleSink(os.Stdout, mode)
	if service != "" {
		sink = prefixed(service+" | "+environment+" | ", sink)
	}

	err = core.SetReportingCallback(sink)
	if err != nil {
		return nil, ewrap.Wrap(err, "failed to register console sink")
	}

	return core, nil
}

// prefixed wraps a sink so every delivered line carries the service prefix.
func prefixed(prefix string, inner ringlog.Sink) ringlog.Sink {
	return func(level ringlog.Level, message string) {
		inner(level, prefix+message)
	}
}
