package ringlog

import (
	"sync/atomic"

	"github.com/hyp3rd/ewrap"
)

// Allocator supplies the backing storage for a slot pool. The pool performs
// exactly one Allocate at construction and one Release at destruction, so
// implementations do not need to be fast, only accountable.
type Allocator interface {
	// Allocate returns a zeroed buffer of n bytes, or an error when the
	// request cannot be satisfied.
	Allocate(n int) ([]byte, error)
	// Release returns a buffer previously obtained from Allocate.
	Release(buf []byte)
}

// HeapAllocator allocates from the Go heap. It is the allocator used when
// Config.Allocator is nil.
type HeapAllocator struct{}

// Allocate returns a zeroed buffer of n bytes.
func (HeapAllocator) Allocate(n int) ([]byte, error) {
	if n <= 0 {
		return nil, ewrap.New("allocation size must be positive")
	}

	return make([]byte, n), nil
}

// Release lets the buffer go back to the garbage collector.
func (HeapAllocator) Release(_ []byte) {}

// CountingAllocator wraps another allocator and tracks outstanding and
// cumulative bytes. It exists so tests and diagnostics can verify that a
// core releases everything it allocated, flushed or not.
type CountingAllocator struct {
	inner Allocator

	inUse      atomic.Int64
	totalBytes atomic.Int64
	allocs     atomic.Int64
	releases   atomic.Int64
}

// NewCountingAllocator wraps inner with byte accounting. A nil inner
// defaults to HeapAllocator.
func NewCountingAllocator(inner Allocator) *CountingAllocator {
	if inner == nil {
		inner = HeapAllocator{}
	}

	return &CountingAllocator{inner: inner}
}

// Allocate forwards to the wrapped allocator and records the outcome.
func (a *CountingAllocator) Allocate(n int) ([]byte, error) {
	buf, err := a.inner.Allocate(n)
	if err != nil {
		return nil, ewrap.Wrap(err, "counting allocator")
	}

	a.inUse.Add(int64(len(buf)))
	a.totalBytes.Add(int64(len(buf)))
	a.allocs.Add(1)

	return buf, nil
}

// Release forwards to the wrapped allocator and records the outcome.
func (a *CountingAllocator) Release(buf []byte) {
	a.inUse.Add(-int64(len(buf)))
	a.releases.Add(1)
	a.inner.Release(buf)
}

// BytesInUse reports the bytes currently allocated and not yet released.
func (a *CountingAllocator) BytesInUse() int64 {
	return a.inUse.Load()
}

// BytesAllocated reports the cumulative bytes handed out.
func (a *CountingAllocator) BytesAllocated() int64 {
	return a.totalBytes.Load()
}

// Allocations reports the number of successful Allocate calls.
func (a *CountingAllocator) Allocations() int64 {
	return a.allocs.Load()
}

// Releases reports the number of Release calls.
func (a *CountingAllocator) Releases() int64 {
	return a.releases.Load()
}
