package ringlog

import (
	"strings"

	"github.com/hyp3rd/ewrap"
)

const (
	// DefaultSlotSize is the default capacity in bytes of a single message slot.
	DefaultSlotSize = 1024
	// DefaultMaxMessages is the default number of slots in the pool.
	DefaultMaxMessages = 1024
	// DefaultLevel is the default minimum level for the formatted wrappers.
	DefaultLevel = TraceLevel
)

// EvictionPolicy defines how the pool behaves when a claim lands on a slot
// that still holds an undrained message.
type EvictionPolicy uint8

const (
	// EvictOldest discards the undrained message and hands the slot to the
	// new producer. Producers never stall; delivery completeness is
	// sacrificed under sustained pool pressure.
	EvictOldest EvictionPolicy = iota
	// DropNewest discards the incoming message instead, preserving older
	// unflushed content.
	DropNewest
)

// IsValid reports whether the policy value is recognised.
func (p EvictionPolicy) IsValid() bool {
	switch p {
	case EvictOldest, DropNewest:
		return true
	default:
		return false
	}
}

// String returns the string representation of the eviction policy.
func (p EvictionPolicy) String() string {
	switch p {
	case EvictOldest:
		return "evict_oldest"
	case DropNewest:
		return "drop_newest"
	default:
		return "unknown"
	}
}

// Config holds configuration for a logging core.
type Config struct {
	// SlotSize is the capacity in bytes of each message slot. A published
	// message keeps at most SlotSize-1 bytes of text.
	SlotSize int
	// MaxMessages is the number of slots in the pool.
	MaxMessages int
	// MinLevel is the minimum level accepted by the formatted wrappers
	// (Tracef through Fatalf). The plain Log and Logf entry points do not
	// filter.
	MinLevel Level
	// Eviction controls the behaviour when a claim lands on an undrained slot.
	Eviction EvictionPolicy
	// Allocator supplies the pool's backing storage. Nil selects HeapAllocator.
	Allocator Allocator
	// MetricsReporter, when set, receives a metrics snapshot after every
	// flush and close.
	MetricsReporter func(PoolMetrics)
}

// DefaultConfig returns the default core configuration.
func DefaultConfig() Config {
	return Config{
		SlotSize:    DefaultSlotSize,
		MaxMessages: DefaultMaxMessages,
		MinLevel:    DefaultLevel,
		Eviction:    EvictOldest,
		Allocator:   nil,
	}
}

// Validate reports whether the configuration can construct a core.
func (c Config) Validate() error {
	if c.SlotSize <= 0 {
		return ewrap.Wrap(ErrInvalidConfiguration, "slot size must be positive")
	}

	if c.MaxMessages <= 0 {
		return ewrap.Wrap(ErrInvalidConfiguration, "max messages must be positive")
	}

	if !c.MinLevel.IsValid() {
		return ewrap.Wrap(ErrInvalidConfiguration, "unknown minimum level")
	}

	if !c.Eviction.IsValid() {
		return ewrap.Wrap(ErrInvalidConfiguration, "unknown eviction policy")
	}

	return nil
}

// ParseLevel parses the given log level string, case-insensitively, and
// returns the corresponding Level, or an error if the level is invalid.
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(level) {
	case "trace":
		return TraceLevel, nil
	case "debug":
		return DebugLevel, nil
	case "info":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	case "fatal":
		return FatalLevel, nil
	default:
		return TraceLevel, ewrap.New("invalid log level: " + level)
	}
}

// ParseEvictionPolicy parses the given policy string, case-insensitively,
// and returns the corresponding EvictionPolicy.
func ParseEvictionPolicy(policy string) (EvictionPolicy, error) {
	switch strings.ToLower(policy) {
	case "evict_oldest", "evict-oldest", "oldest":
		return EvictOldest, nil
	case "drop_newest", "drop-newest", "newest":
		return DropNewest, nil
	default:
		return EvictOldest, ewrap.New("invalid eviction policy: " + policy)
	}
}
