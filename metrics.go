package ringlog

import (
	"context"
	"sync"

	"github.com/hyp3rd/ringlog/internal/constants"
)

// PoolMetrics represents health metrics emitted by a logging core.
type PoolMetrics struct {
	// Published is the number of messages committed to the pool.
	Published uint64
	// Delivered is the number of messages handed to a sink (or discarded
	// by a flush with no sink registered).
	Delivered uint64
	// Evicted is the number of undrained messages discarded to make room
	// for new ones under the EvictOldest policy.
	Evicted uint64
	// Dropped is the number of incoming messages discarded under the
	// DropNewest policy.
	Dropped uint64
	// Truncated is the number of messages cut to the slot text limit.
	Truncated uint64
	// Discarded is the number of messages reclaimed by a flush while no
	// sink was registered.
	Discarded uint64
	// Outstanding is the number of slots holding an undelivered message
	// at snapshot time.
	Outstanding int
}

// PoolMetricsHandler receives core metrics snapshots.
type PoolMetricsHandler func(context.Context, PoolMetrics)

//nolint:gochecknoglobals // pool metrics use a package-level registry for global handlers.
var poolMetricsRegistryOnce = sync.OnceValue(func() *poolMetricsHandlerRegistry {
	return &poolMetricsHandlerRegistry{}
})

// RegisterPoolMetricsHandler adds a global handler invoked when pool metrics are emitted.
func RegisterPoolMetricsHandler(handler PoolMetricsHandler) {
	if handler == nil {
		return
	}

	poolMetricsRegistryOnce().register(handler)
}

// ClearPoolMetricsHandlers removes all registered pool metrics handlers.
func ClearPoolMetricsHandlers() {
	poolMetricsRegistryOnce().reset()
}

// EmitPoolMetrics notifies global handlers with the provided metrics snapshot.
func EmitPoolMetrics(ctx context.Context, metrics PoolMetrics) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultTimeout)
	defer cancel()

	poolMetricsRegistryOnce().emit(ctx, metrics)
}

type poolMetricsHandlerRegistry struct {
	mu       sync.RWMutex
	handlers []PoolMetricsHandler
}

func (r *poolMetricsHandlerRegistry) register(handler PoolMetricsHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.handlers = append(r.handlers, handler)
}

func (r *poolMetricsHandlerRegistry) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.handlers = nil
}

func (r *poolMetricsHandlerRegistry) emit(ctx context.Context, metrics PoolMetrics) {
	handlers := r.snapshot()
	for _, handler := range handlers {
		handler(ctx, metrics)
	}
}

func (r *poolMetricsHandlerRegistry) snapshot() []PoolMetricsHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.handlers) == 0 {
		return nil
	}

	clone := make([]PoolMetricsHandler, len(r.handlers))
	copy(clone, r.handlers)

	return clone
}
