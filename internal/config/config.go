// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Mesh     MeshConfig     `yaml:"mesh"`
	Shading  ShadingConfig  `yaml:"shading"`
	Graphics GraphicsConfig `yaml:"graphics"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// MeshConfig holds the mesh source.
type MeshConfig struct {
	Path string `yaml:"path"` // OFF file loaded at startup
}

// ShadingConfig holds the lighting setup.
type ShadingConfig struct {
	// Model is "1", "2", "3" (or toon, gooch, phong). Empty means ask on stdin once.
	Model string     `yaml:"model"`
	Light [4]float32 `yaml:"light"` // x, y, z, w; w=1 is a positional light
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FOVDegrees float32 `yaml:"fov_degrees"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Mesh: MeshConfig{
			Path: "off/6.off",
		},
		Shading: ShadingConfig{
			Model: "",
			Light: [4]float32{-3, -3, -3, 1},
		},
		Graphics: GraphicsConfig{
			Width:      500,
			Height:     500,
			Fullscreen: false,
			VSync:      true,
			FOVDegrees: 45,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
