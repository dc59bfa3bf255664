package ringlog

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/ringlog/internal/pool"
)

// Core is an explicit handle to one logging core: a fixed slot pool, the
// registered sink and the publish/drain machinery. A Core is safe for use
// by any number of goroutines; only Close must not race with other calls.
type Core struct {
	config     Config
	pool       *pool.Pool
	sink       atomic.Pointer[Sink]
	minLevel   atomic.Uint32
	closed     atomic.Bool
	closeMutex sync.Mutex
	metricsMu  sync.Mutex
	scratch    *sync.Pool

	truncated atomic.Uint64
	discarded atomic.Uint64
}

// NewCore constructs a core from the given configuration. The whole pool is
// allocated here; no further allocation happens on the publish path.
func NewCore(config Config) (*Core, error) {
	err := config.Validate()
	if err != nil {
		return nil, err
	}

	alloc := config.Allocator
	if alloc == nil {
		alloc = HeapAllocator{}
	}

	slotPool, err := pool.New(alloc, config.SlotSize, config.MaxMessages, pool.Policy(config.Eviction))
	if err != nil {
		return nil, ewrap.Wrap(ErrAllocationFailed, err.Error())
	}

	scratchCap := config.SlotSize
	scratch := &sync.Pool{
		New: func() any {
			buf := make([]byte, 0, scratchCap)

			return &buf
		},
	}

	core := &Core{
		config:  config,
		pool:    slotPool,
		scratch: scratch,
	}
	core.minLevel.Store(uint32(config.MinLevel))

	return core, nil
}

// SetReportingCallback atomically replaces the registered sink. A nil sink
// disables reporting: subsequent flushes still reclaim slots but discard
// their content. The drain path snapshots the sink reference once per
// delivered message, so a replacement racing a flush takes effect
// mid-flush at a message boundary, never mid-message.
func (c *Core) SetReportingCallback(sink Sink) error {
	if c.closed.Load() {
		return ErrCoreClosed
	}

	if sink == nil {
		c.sink.Store(nil)

		return nil
	}

	c.sink.Store(&sink)

	return nil
}

// Log publishes a pre-rendered message. The text is truncated to the slot
// limit if needed; publication itself never fails on an open core.
func (c *Core) Log(level Level, message string) error {
	if c.closed.Load() {
		return ErrCoreClosed
	}

	buf := c.borrowScratch()
	*buf = append((*buf)[:0], message...)
	c.publish(level, buf)

	return nil
}

// Logf renders the format string into a pooled scratch buffer, truncates
// the result to the slot limit and publishes it. Rendering an oversized
// message never fails; the prefix that fits is kept.
func (c *Core) Logf(level Level, format string, args ...any) error {
	if c.closed.Load() {
		return ErrCoreClosed
	}

	buf := c.borrowScratch()
	*buf = fmt.Appendf((*buf)[:0], format, args...)
	c.publish(level, buf)

	return nil
}

// publish truncates, claims and commits. Exactly one slot transitions to
// Ready per accepted message; under DropNewest pressure the message is
// counted as dropped instead.
func (c *Core) publish(level Level, buf *[]byte) {
	text := *buf
	if limit := c.pool.MaxTextLen(); len(text) > limit {
		text = text[:limit]

		c.truncated.Add(1)
	}

	handle, ok := c.pool.Claim()
	if ok {
		c.pool.Commit(handle, text, uint8(level))
	}

	c.releaseScratch(buf)
}

// Flush drains contiguous ready slots in claim order, delivering each
// message to the registered sink and reclaiming its slot. With no sink
// registered the messages are discarded, not retained. Flush is
// best-effort and always succeeds on an open core; it may be called from
// any goroutine, including concurrently with ongoing publishes and with
// other flushes.
func (c *Core) Flush() error {
	if c.closed.Load() {
		return ErrCoreClosed
	}

	c.pool.Drain(func(tag uint8, text []byte) {
		sink := c.sink.Load()
		if sink == nil {
			c.discarded.Add(1)

			return
		}

		(*sink)(Level(tag), string(text))
	})

	c.reportMetrics()

	return nil
}

// Close tears the core down: the pool's backing storage is released with
// whatever undrained messages it still holds, without invoking the sink.
// Callers that want the remaining messages delivered must Flush first.
// Close must not race with other calls on the same core.
func (c *Core) Close() error {
	c.closeMutex.Lock()
	defer c.closeMutex.Unlock()

	if c.closed.Load() {
		return ErrCoreClosed
	}

	c.closed.Store(true)

	c.reportMetrics()
	c.pool.Destroy()

	return nil
}

// Metrics returns a snapshot of the core's cumulative counters.
func (c *Core) Metrics() PoolMetrics {
	published, delivered, evicted, dropped := c.pool.Counters()

	return PoolMetrics{
		Published:   published,
		Delivered:   delivered,
		Evicted:     evicted,
		Dropped:     dropped,
		Truncated:   c.truncated.Load(),
		Discarded:   c.discarded.Load(),
		Outstanding: c.pool.Outstanding(),
	}
}

// GetLevel returns the minimum level applied by the formatted wrappers.
func (c *Core) GetLevel() Level {
	return Level(c.minLevel.Load())
}

// SetLevel sets the minimum level applied by the formatted wrappers.
func (c *Core) SetLevel(level Level) {
	if !level.IsValid() {
		return
	}

	c.minLevel.Store(uint32(level))
}

// Tracef logs a formatted message at the Trace level.
func (c *Core) Tracef(format string, args ...any) {
	c.logAt(TraceLevel, format, args...)
}

// Debugf logs a formatted message at the Debug level.
func (c *Core) Debugf(format string, args ...any) {
	c.logAt(DebugLevel, format, args...)
}

// Infof logs a formatted message at the Info level.
func (c *Core) Infof(format string, args ...any) {
	c.logAt(InfoLevel, format, args...)
}

// Warnf logs a formatted message at the Warn level.
func (c *Core) Warnf(format string, args ...any) {
	c.logAt(WarnLevel, format, args...)
}

// Errorf logs a formatted message at the Error level.
func (c *Core) Errorf(format string, args ...any) {
	c.logAt(ErrorLevel, format, args...)
}

// Fatalf logs a formatted message at the Fatal level. Unlike the loggers in
// most frameworks it does not exit the process; delivery still happens on
// the next flush.
func (c *Core) Fatalf(format string, args ...any) {
	c.logAt(FatalLevel, format, args...)
}

// logAt applies the minimum-level gate before formatting, so filtered
// messages cost one atomic load and nothing else.
func (c *Core) logAt(level Level, format string, args ...any) {
	if uint32(level) < c.minLevel.Load() {
		return
	}

	_ = c.Logf(level, format, args...)
}

func (c *Core) borrowScratch() *[]byte {
	buf, ok := c.scratch.Get().(*[]byte)
	if !ok || buf == nil {
		fresh := make([]byte, 0, c.config.SlotSize)
		buf = &fresh
	}

	return buf
}

func (c *Core) releaseScratch(buf *[]byte) {
	*buf = (*buf)[:0]
	c.scratch.Put(buf)
}

func (c *Core) reportMetrics() {
	reporter := c.config.MetricsReporter
	if reporter == nil {
		return
	}

	c.metricsMu.Lock()
	defer c.metricsMu.Unlock()

	reporter(c.Metrics())
}
