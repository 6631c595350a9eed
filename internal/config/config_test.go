package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "127.0.0.1:8765", cfg.Server.Addr)
	assert.Equal(t, 5, cfg.Camera.IdleFPS)
	assert.Equal(t, 15, cfg.Camera.ActiveFPS)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
addr = "0.0.0.0:9000"

[control]
confidence_floor = 0.8
hold_seconds = 3.0
mirror_horizontal = true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Addr)
	// Untouched sections keep their defaults.
	assert.Equal(t, 1.0, cfg.Camera.MotionThreshold)
	assert.Equal(t, 1, cfg.Detector.MaxHands)

	ctl := cfg.Controller()
	assert.Equal(t, 0.8, ctl.ConfidenceFloor)
	assert.Equal(t, 3*time.Second, ctl.HoldDuration)
	assert.True(t, ctl.MirrorHorizontal)
	// Fields the file left at zero fall through to the control package
	// defaults at construction, so the mapper passes zeros along.
	assert.Zero(t, ctl.ActionCooldown)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "malformed toml",
			body: `[server` + "\n",
		},
		{
			name: "empty addr",
			body: "[server]\naddr = \"\"\n",
		},
		{
			name: "idle fps above active fps",
			body: "[camera]\nidle_fps = 30\nactive_fps = 10\n",
		},
		{
			name: "confidence floor out of range",
			body: "[control]\nconfidence_floor = 1.5\n",
		},
		{
			name: "negative machine timeout",
			body: "[machine]\ntimeout_seconds = -1.0\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestMachineTimeout(t *testing.T) {
	path := writeConfig(t, "[machine]\ntimeout_seconds = 2.5\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2500*time.Millisecond, cfg.MachineTimeout())
}
