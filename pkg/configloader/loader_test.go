package configloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hyp3rd/ringlog"
)

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("APP_LEVEL", "error")
	t.Setenv("APP_SLOT_SIZE", "256")
	t.Setenv("APP_MAX_MESSAGES", "4096")
	t.Setenv("APP_EVICTION", "drop_newest")

	cfg, err := FromEnv("app")
	require.NoError(t, err)

	require.Equal(t, ringlog.ErrorLevel, cfg.MinLevel)
	require.Equal(t, 256, cfg.SlotSize)
	require.Equal(t, 4096, cfg.MaxMessages)
	require.Equal(t, ringlog.DropNewest, cfg.Eviction)
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv("ringlogtestunset")
	require.NoError(t, err)

	require.Equal(t, ringlog.DefaultSlotSize, cfg.SlotSize)
	require.Equal(t, ringlog.DefaultMaxMessages, cfg.MaxMessages)
	require.Equal(t, ringlog.EvictOldest, cfg.Eviction)
}

func TestFromYAML(t *testing.T) {
	cfg, err := FromYAML([]byte(`
level: warn
slot_size: 75
max_messages: 1
eviction: evict_oldest
`))
	require.NoError(t, err)

	require.Equal(t, ringlog.WarnLevel, cfg.MinLevel)
	require.Equal(t, 75, cfg.SlotSize)
	require.Equal(t, 1, cfg.MaxMessages)
	require.Equal(t, ringlog.EvictOldest, cfg.Eviction)
}

func TestFromYAMLRejectsInvalidValues(t *testing.T) {
	_, err := FromYAML([]byte("level: verbose\n"))
	require.Error(t, err)

	_, err = FromYAML([]byte("eviction: block\n"))
	require.Error(t, err)

	_, err = FromYAML([]byte("slot_size: 0\n"))
	require.ErrorIs(t, err, ringlog.ErrInvalidConfiguration)

	_, err = FromYAML([]byte("max_messages: -1\n"))
	require.ErrorIs(t, err, ringlog.ErrInvalidConfiguration)
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	configPath := filepath.Join(dir, "config.yaml")
	configData := []byte(`
level: debug
slot_size: 512
max_messages: 128
`)
	require.NoError(t, os.WriteFile(configPath, configData, 0o600))

	cfg, err := FromFile(configPath)
	require.NoError(t, err)

	require.Equal(t, ringlog.DebugLevel, cfg.MinLevel)
	require.Equal(t, 512, cfg.SlotSize)
	require.Equal(t, 128, cfg.MaxMessages)
}

func TestFromFileMissing(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadedConfigBuildsCore(t *testing.T) {
	cfg, err := FromYAML([]byte(`
slot_size: 128
max_messages: 8
`))
	require.NoError(t, err)

	core, err := ringlog.NewCore(*cfg)
	require.NoError(t, err)

	t.Cleanup(func() {
		//nolint:errcheck // closing a fresh core cannot fail here.
		_ = core.Close()
	})

	require.NoError(t, core.Log(ringlog.InfoLevel, "loaded"))
	require.NoError(t, core.Flush())
}
