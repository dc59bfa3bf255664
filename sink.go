package ringlog

import (
	"io"
	"sync"
)

// NewWriterSink returns a sink that writes each delivered message to out,
// appending a newline when the message does not already end with one.
// Writes are serialized, so the sink is safe even when flushes happen from
// different goroutines over time. Write errors are swallowed: delivery is
// best-effort by contract and a sink has nowhere to report failure to.
func NewWriterSink(out io.Writer) Sink {
	if out == nil {
		return nil
	}

	var mu sync.Mutex

	return func(_ Level, message string) {
		mu.Lock()
		defer mu.Unlock()

		_, _ = io.WriteString(out, message)

		if len(message) == 0 || message[len(message)-1] != '\n' {
			_, _ = io.WriteString(out, "\n")
		}
	}
}

// MultiSink fans each delivered message out to every given sink in order.
// Nil entries are skipped; with no usable sinks it returns nil, which
// disables reporting entirely.
func MultiSink(sinks ...Sink) Sink {
	usable := make([]Sink, 0, len(sinks))

	for _, sink := range sinks {
		if sink != nil {
			usable = append(usable, sink)
		}
	}

	if len(usable) == 0 {
		return nil
	}

	if len(usable) == 1 {
		return usable[0]
	}

	return func(level Level, message string) {
		for _, sink := range usable {
			sink(level, message)
		}
	}
}
