package ringlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, DefaultSlotSize, config.SlotSize)
	assert.Equal(t, DefaultMaxMessages, config.MaxMessages)
	assert.Equal(t, TraceLevel, config.MinLevel)
	assert.Equal(t, EvictOldest, config.Eviction)
	require.NoError(t, config.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero slot size", func(c *Config) { c.SlotSize = 0 }},
		{"negative slot size", func(c *Config) { c.SlotSize = -1 }},
		{"zero capacity", func(c *Config) { c.MaxMessages = 0 }},
		{"negative capacity", func(c *Config) { c.MaxMessages = -256 }},
		{"invalid level", func(c *Config) { c.MinLevel = Level(42) }},
		{"invalid eviction policy", func(c *Config) { c.Eviction = EvictionPolicy(9) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(&config)

			require.ErrorIs(t, config.Validate(), ErrInvalidConfiguration)
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"trace", TraceLevel},
		{"DEBUG", DebugLevel},
		{"Info", InfoLevel},
		{"warn", WarnLevel},
		{"warning", WarnLevel},
		{"error", ErrorLevel},
		{"FATAL", FatalLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, level)
		})
	}

	_, err := ParseLevel("verbose")
	require.Error(t, err)
}

func TestParseEvictionPolicy(t *testing.T) {
	policy, err := ParseEvictionPolicy("evict_oldest")
	require.NoError(t, err)
	assert.Equal(t, EvictOldest, policy)

	policy, err = ParseEvictionPolicy("DROP-NEWEST")
	require.NoError(t, err)
	assert.Equal(t, DropNewest, policy)

	_, err = ParseEvictionPolicy("block")
	require.Error(t, err)
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "TRACE", TraceLevel.String())
	assert.Equal(t, "DEBUG", DebugLevel.String())
	assert.Equal(t, "INFO", InfoLevel.String())
	assert.Equal(t, "WARN", WarnLevel.String())
	assert.Equal(t, "ERROR", ErrorLevel.String())
	assert.Equal(t, "FATAL", FatalLevel.String())
	assert.Equal(t, "UNKNOWN", Level(200).String())

	assert.True(t, InfoLevel.IsValid())
	assert.False(t, Level(200).IsValid())
}

func TestEvictionPolicyString(t *testing.T) {
	assert.Equal(t, "evict_oldest", EvictOldest.String())
	assert.Equal(t, "drop_newest", DropNewest.String())
	assert.Equal(t, "unknown", EvictionPolicy(7).String())
}
