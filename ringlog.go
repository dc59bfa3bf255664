// Package ringlog implements a fixed-capacity, in-process asynchronous
// logging core for Go applications.
//
// The package is built around a pool of fixed-size message slots allocated
// once at initialization:
// - Producers on arbitrary goroutines publish formatted text at negligible
// cost: a single atomic slot claim plus a bounded copy, no per-message heap
// allocation on the hot path
// - A separate drain operation delivers buffered messages, in claim order,
// to a pluggable sink and reclaims their slots
// - Under sustained pressure the pool degrades silently (truncation of
// oversized messages, eviction of unflushed ones) rather than ever failing
// or blocking a producer
//
// Two API shapes are provided. The Core type is an explicit handle created
// with NewCore and passed around by the caller. The package-level Init,
// Log, Flush, SetReportingCallback and CleanUp functions wrap a single
// process-wide Core for programs that want the classic global logger shape.
//
// Basic usage:
//
//	core, err := ringlog.NewCore(ringlog.DefaultConfig())
//	if err != nil {
//		panic(err)
//	}
//	defer core.Close()
//
//	core.SetReportingCallback(ringlog.NewWriterSink(os.Stderr))
//
//	core.Logf(ringlog.InfoLevel, "listening on %s", addr)
//	core.Flush()
//
// Flush may be called from any goroutine, periodically or on demand; Close
// releases the pool without a final flush, so callers that want the last
// buffered messages delivered must Flush first.
package ringlog

// Level represents the severity tag attached to a published message.
type Level uint8

const (
	// TraceLevel represents verbose debugging information.
	TraceLevel Level = iota
	// DebugLevel represents debugging information.
	DebugLevel
	// InfoLevel represents general operational information.
	InfoLevel
	// WarnLevel represents warning messages.
	WarnLevel
	// ErrorLevel represents error messages.
	ErrorLevel
	// FatalLevel represents fatal error messages.
	FatalLevel
)

// String returns the string representation of a log level.
func (l Level) String() string {
	switch l {
	case TraceLevel:
		return "TRACE"
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// IsValid returns true if the given Level is a valid log level, and false otherwise.
func (l Level) IsValid() bool {
	return l >= TraceLevel && l <= FatalLevel
}

// Sink receives one delivered message per invocation, on the goroutine that
// called Flush. The message is the exact (possibly truncated) text produced
// by the publish path. A sink must not re-enter the core it is draining;
// calling Log, Flush or Close from inside a sink is undefined.
type Sink func(level Level, message string)

// TextSink adapts a plain text callback into a Sink, discarding the level
// tag. It matches the reporting-callback shape used by C logging cores.
func TextSink(callback func(message string)) Sink {
	if callback == nil {
		return nil
	}

	return func(_ Level, message string) {
		callback(message)
	}
}

// NoopSink discards every message it receives.
func NoopSink() Sink {
	return func(Level, string) {}
}
