// Package config loads the daemon configuration from a TOML file and
// fills in defaults for anything the file leaves out.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/PiotrUrb/gesture-recognition-system/internal/control"
)

type Config struct {
	Server     ServerConfig     `toml:"server"`
	Camera     CameraConfig     `toml:"camera"`
	Detector   DetectorConfig   `toml:"detector"`
	Classifier ClassifierConfig `toml:"classifier"`
	Machine    MachineConfig    `toml:"machine"`
	Control    ControlConfig    `toml:"control"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type CameraConfig struct {
	DeviceID int `toml:"device_id"`
	// IdleFPS is the capture rate while the scene is static; ActiveFPS
	// applies while motion or a tracked hand keeps the pipeline busy.
	IdleFPS   int `toml:"idle_fps"`
	ActiveFPS int `toml:"active_fps"`
	// MotionThreshold is the percentage of changed pixels that wakes
	// the pipeline from idle.
	MotionThreshold float64 `toml:"motion_threshold"`
}

type DetectorConfig struct {
	MaxHands      int     `toml:"max_hands"`
	MinConfidence float64 `toml:"min_confidence"`
	ScriptPath    string  `toml:"script_path"`
}

type ClassifierConfig struct {
	ModelDir   string `toml:"model_dir"`
	ScriptPath string `toml:"script_path"`
}

type MachineConfig struct {
	// PluginPath is the executable that receives machine commands.
	// Empty disables dispatch; actions are still logged.
	PluginPath     string  `toml:"plugin_path"`
	TimeoutSeconds float64 `toml:"timeout_seconds"`
}

type ControlConfig struct {
	ConfidenceFloor   float64 `toml:"confidence_floor"`
	HoldSeconds       float64 `toml:"hold_seconds"`
	CooldownSeconds   float64 `toml:"cooldown_seconds"`
	AllThrottleMillis int     `toml:"all_throttle_ms"`
	SwipeThreshold    float64 `toml:"swipe_threshold"`
	SwipeCooldownMs   int     `toml:"swipe_cooldown_ms"`
	HistoryLimit      int     `toml:"history_limit"`
	MirrorHorizontal  bool    `toml:"mirror_horizontal"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: "127.0.0.1:8765"},
		Camera: CameraConfig{
			DeviceID:        0,
			IdleFPS:         5,
			ActiveFPS:       15,
			MotionThreshold: 1.0,
		},
		Detector: DetectorConfig{
			MaxHands:      1,
			MinConfidence: 0.7,
		},
		Machine: MachineConfig{TimeoutSeconds: 5},
	}
}

// Load reads the TOML file at path. A missing file is not an error;
// the defaults are returned instead.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("config: server.addr must not be empty")
	}
	if c.Camera.IdleFPS <= 0 || c.Camera.ActiveFPS <= 0 {
		return fmt.Errorf("config: camera fps values must be positive")
	}
	if c.Camera.IdleFPS > c.Camera.ActiveFPS {
		return fmt.Errorf("config: camera.idle_fps (%d) must not exceed camera.active_fps (%d)",
			c.Camera.IdleFPS, c.Camera.ActiveFPS)
	}
	if c.Camera.MotionThreshold <= 0 {
		return fmt.Errorf("config: camera.motion_threshold must be positive")
	}
	if f := c.Control.ConfidenceFloor; f < 0 || f > 1 {
		return fmt.Errorf("config: control.confidence_floor %f out of range [0,1]", f)
	}
	if c.Machine.TimeoutSeconds < 0 {
		return fmt.Errorf("config: machine.timeout_seconds must not be negative")
	}
	return nil
}

// Controller maps the [control] section onto the control package
// configuration. Zero fields fall through to that package's defaults.
func (c Config) Controller() control.Config {
	return control.Config{
		ConfidenceFloor:  c.Control.ConfidenceFloor,
		HoldDuration:     secondsToDuration(c.Control.HoldSeconds),
		ActionCooldown:   secondsToDuration(c.Control.CooldownSeconds),
		AllModeThrottle:  time.Duration(c.Control.AllThrottleMillis) * time.Millisecond,
		SwipeThreshold:   c.Control.SwipeThreshold,
		SwipeCooldown:    time.Duration(c.Control.SwipeCooldownMs) * time.Millisecond,
		HistoryLimit:     c.Control.HistoryLimit,
		MirrorHorizontal: c.Control.MirrorHorizontal,
	}
}

// MachineTimeout returns the plugin execution deadline.
func (c Config) MachineTimeout() time.Duration {
	return secondsToDuration(c.Machine.TimeoutSeconds)
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// DefaultPath returns ~/.gestured/config.toml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".gestured", "config.toml")
}
