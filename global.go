package ringlog

import (
	"sync"
	"sync/atomic"
)

// The package-level functions wrap a single process-wide Core for programs
// that want the classic global logger shape. The lifecycle is strict:
// Init establishes the core, CleanUp destroys it, and every other function
// reports ErrNotInitialized outside that window.

//nolint:gochecknoglobals // the process-wide core is the point of this surface.
var (
	globalMu   sync.Mutex
	globalCore atomic.Pointer[Core]
)

// Init constructs the process-wide core with messageLen-byte slots and room
// for maxMessages buffered messages, allocated from alloc (nil selects
// HeapAllocator). It fails with ErrAlreadyInitialized when called twice
// without an intervening CleanUp.
func Init(alloc Allocator, messageLen, maxMessages int) error {
	config := DefaultConfig()
	config.Allocator = alloc
	config.SlotSize = messageLen
	config.MaxMessages = maxMessages

	return InitWithConfig(config)
}

// InitWithConfig is Init with full control over the configuration.
func InitWithConfig(config Config) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalCore.Load() != nil {
		return ErrAlreadyInitialized
	}

	core, err := NewCore(config)
	if err != nil {
		return err
	}

	globalCore.Store(core)

	return nil
}

// Current returns the process-wide core, or ErrNotInitialized outside the
// Init/CleanUp window.
func Current() (*Core, error) {
	core := globalCore.Load()
	if core == nil {
		return nil, ErrNotInitialized
	}

	return core, nil
}

// Log publishes a pre-rendered message through the process-wide core.
func Log(level Level, message string) error {
	core := globalCore.Load()
	if core == nil {
		return ErrNotInitialized
	}

	return core.Log(level, message)
}

// Logf formats and publishes a message through the process-wide core.
func Logf(level Level, format string, args ...any) error {
	core := globalCore.Load()
	if core == nil {
		return ErrNotInitialized
	}

	return core.Logf(level, format, args...)
}

// SetReportingCallback replaces the sink of the process-wide core. A nil
// sink disables reporting; flushes then reclaim slots without delivering.
func SetReportingCallback(sink Sink) error {
	core := globalCore.Load()
	if core == nil {
		return ErrNotInitialized
	}

	return core.SetReportingCallback(sink)
}

// Flush drains the process-wide core to its registered sink.
func Flush() error {
	core := globalCore.Load()
	if core == nil {
		return ErrNotInitialized
	}

	return core.Flush()
}

// CleanUp tears down the process-wide core, releasing the pool and any
// undrained messages without a final flush. After CleanUp the package
// returns to the uninitialized state and Init may be called again.
func CleanUp() error {
	globalMu.Lock()
	defer globalMu.Unlock()

	core := globalCore.Swap(nil)
	if core == nil {
		return ErrNotInitialized
	}

	return core.Close()
}
