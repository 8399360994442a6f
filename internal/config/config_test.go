package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "robot.yaml", cfg.Description)
	assert.Empty(t, cfg.Listen)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Physics.UnboundedRevolute)
	assert.Equal(t, 0.05, cfg.Field.BallRadius)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
description: nao.yaml
listen: ":8080"
log:
  level: debug
physics:
  unbounded_revolute: true
field:
  ball_radius: 0.1
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "nao.yaml", cfg.Description)
	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Physics.UnboundedRevolute)
	assert.Equal(t, 0.1, cfg.Field.BallRadius)
	// Untouched fields keep their defaults.
	assert.Equal(t, 9.0, cfg.Field.Length)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
