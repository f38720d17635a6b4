// Package config handles render configuration loading and management.
package config

import "fmt"

// Config holds all renderer settings.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Terrain TerrainConfig `yaml:"terrain"`
	Camera  CameraConfig  `yaml:"camera"`
	Sun     SunConfig     `yaml:"sun"`
	Logging LoggingConfig `yaml:"logging"`
}

// OutputConfig holds image output settings.
type OutputConfig struct {
	Path   string `yaml:"path"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// TerrainConfig holds the height-field placement and appearance.
type TerrainConfig struct {
	ElevationMap string     `yaml:"elevation_map"` // Path to the elevation image
	Position     [3]float64 `yaml:"position"`      // World position of the (0, 0) corner
	Width        float64    `yaml:"width"`
	Height       float64    `yaml:"height"`
	Depth        float64    `yaml:"depth"`
	Albedo       [3]float64 `yaml:"albedo"`
}

// CameraConfig holds the camera placement.
type CameraConfig struct {
	LookFrom [3]float64 `yaml:"look_from"`
	LookAt   [3]float64 `yaml:"look_at"`
	VFov     float64    `yaml:"vfov"` // Vertical field of view in degrees
}

// SunConfig holds the directional light settings.
type SunConfig struct {
	Direction [3]float64 `yaml:"direction"` // Points towards the sun
	Ambient   float64    `yaml:"ambient"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Path:   "render.png",
			Width:  800,
			Height: 450,
		},
		Terrain: TerrainConfig{
			ElevationMap: "heightmap.png",
			Position:     [3]float64{0, 0, 0},
			Width:        10,
			Height:       2,
			Depth:        10,
			Albedo:       [3]float64{0.45, 0.55, 0.35},
		},
		Camera: CameraConfig{
			LookFrom: [3]float64{5, 4, -6},
			LookAt:   [3]float64{5, 0, 5},
			VFov:     50,
		},
		Sun: SunConfig{
			Direction: [3]float64{0.4, 1, -0.3},
			Ambient:   0.2,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks the settings a render cannot start without.
func (c *Config) Validate() error {
	if c.Output.Width <= 0 || c.Output.Height <= 0 {
		return fmt.Errorf("output size must be positive, got %dx%d", c.Output.Width, c.Output.Height)
	}
	if c.Terrain.ElevationMap == "" {
		return fmt.Errorf("terrain elevation_map path is required")
	}
	if c.Terrain.Width <= 0 || c.Terrain.Depth <= 0 {
		return fmt.Errorf("terrain width and depth must be positive, got %gx%g", c.Terrain.Width, c.Terrain.Depth)
	}
	if c.Camera.VFov <= 0 || c.Camera.VFov >= 180 {
		return fmt.Errorf("camera vfov must be in (0, 180), got %g", c.Camera.VFov)
	}
	return nil
}
