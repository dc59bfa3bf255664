package configloader

import (
	"github.com/hyp3rd/ringlog"
)

type rawConfig struct {
	Level       string `mapstructure:"level"        yaml:"level"`
	SlotSize    *int   `mapstructure:"slot_size"    yaml:"slot_size"`
	MaxMessages *int   `mapstructure:"max_messages" yaml:"max_messages"`
	Eviction    string `mapstructure:"eviction"     yaml:"eviction"`
}

func allKeys() []string {
	return []string{"level", "slot_size", "max_messages", "eviction"}
}

func applyRaw(raw rawConfig) (*ringlog.Config, error) {
	cfg := ringlog.DefaultConfig()

	if raw.Level != "" {
		level, err := ringlog.ParseLevel(raw.Level)
		if err != nil {
			return nil, err
		}

		cfg.MinLevel = level
	}

	if raw.SlotSize != nil {
		cfg.SlotSize = *raw.SlotSize
	}

	if raw.MaxMessages != nil {
		cfg.MaxMessages = *raw.MaxMessages
	}

	if raw.Eviction != "" {
		policy, err := ringlog.ParseEvictionPolicy(raw.Eviction)
		if err != nil {
			return nil, err
		}

		cfg.Eviction = policy
	}

	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
