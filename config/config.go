// Package config loads the viewer configuration from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Camera modes.
const (
	CameraFreeFlight = "freeflight"
	CameraFps        = "fps"
)

// Config is the full viewer configuration.
type Config struct {
	Window WindowConfig `toml:"window"`
	Camera CameraConfig `toml:"camera"`
	Scene  SceneConfig  `toml:"scene"`
	Debug  DebugConfig  `toml:"debug"`
	Render RenderConfig `toml:"render"`
}

// WindowConfig is the [window] section.
type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	VSync  bool   `toml:"vsync"`
}

// CameraConfig is the [camera] section.
type CameraConfig struct {
	Mode             string  `toml:"mode"`
	FovDegrees       float32 `toml:"fov_degrees"`
	Near             float32 `toml:"near"`
	Far              float32 `toml:"far"`
	MouseSensitivity float32 `toml:"mouse_sensitivity"`
	MoveSpeed        float32 `toml:"move_speed"`
	RollSpeed        float32 `toml:"roll_speed"`
}

// SceneConfig is the [scene] section.
type SceneConfig struct {
	Path          string `toml:"path"`
	Watch         bool   `toml:"watch"`
	DecodeWorkers int    `toml:"decode_workers"` // 0 = one per CPU
}

// DebugConfig is the [debug] section.
type DebugConfig struct {
	Normals      bool    `toml:"normals"`
	NormalLength float32 `toml:"normal_length"`
	Profiling    bool    `toml:"profiling"`
}

// RenderConfig is the [render] section.
type RenderConfig struct {
	ClearColor [4]float32 `toml:"clear_color"`
	FrameLimit float64    `toml:"frame_limit"` // 0 = uncapped
}

// Default returns the configuration used when no file is present. Keys missing from a file keep
// these values.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "beagle",
			VSync:  true,
		},
		Camera: CameraConfig{
			Mode:             CameraFreeFlight,
			FovDegrees:       60,
			Near:             0.1,
			Far:              5000,
			MouseSensitivity: 0.005,
			MoveSpeed:        0.02,
			RollSpeed:        0.05,
		},
		Debug: DebugConfig{
			NormalLength: 0.1,
		},
		Render: RenderConfig{
			ClearColor: [4]float32{0.45, 0.6, 0.95, 1},
		},
	}
}

// Load reads the configuration at path on top of the defaults.
// A missing file yields the defaults.
//
// Parameters:
//   - path: the TOML file to read
//
// Returns:
//   - Config: the loaded configuration
//   - error: error if the file cannot be read, is malformed, has unknown keys or invalid values
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config %s: %w", path, err)
	}
	defer f.Close()

	cfg, err := Read(f)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, nil
}

// Read decodes a configuration from r on top of the defaults. Unknown keys are rejected.
//
// Parameters:
//   - r: the TOML source
//
// Returns:
//   - Config: the decoded configuration
//   - error: a decode or validation error
func Read(r io.Reader) (Config, error) {
	cfg := Default()
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("unknown keys:\n%s", strict.String())
		}
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values a viewer cannot start with.
//
// Returns:
//   - error: the first invalid value found
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	case c.Camera.Mode != CameraFreeFlight && c.Camera.Mode != CameraFps:
		return fmt.Errorf("camera mode must be %q or %q, got %q", CameraFreeFlight, CameraFps, c.Camera.Mode)
	case c.Camera.FovDegrees <= 0 || c.Camera.FovDegrees >= 180:
		return fmt.Errorf("camera fov must be in (0, 180), got %g", c.Camera.FovDegrees)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("camera clip planes must satisfy 0 < near < far, got %g and %g", c.Camera.Near, c.Camera.Far)
	case c.Scene.DecodeWorkers < 0:
		return fmt.Errorf("decode_workers must not be negative, got %d", c.Scene.DecodeWorkers)
	case c.Debug.NormalLength < 0:
		return fmt.Errorf("normal_length must not be negative, got %g", c.Debug.NormalLength)
	case c.Render.FrameLimit < 0:
		return fmt.Errorf("frame_limit must not be negative, got %g", c.Render.FrameLimit)
	}
	return nil
}
