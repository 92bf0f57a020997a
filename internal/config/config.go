// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Scene    SceneConfig    `yaml:"scene"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// SceneConfig describes the models to load and where to place them.
type SceneConfig struct {
	Models []ModelConfig `yaml:"models"`
}

// ModelConfig is one mesh asset plus its instance placements. Name is
// the mesh identity used for batching; it defaults to Path when empty.
type ModelConfig struct {
	Name      string      `yaml:"name"`
	Path      string      `yaml:"path"`
	Material  string      `yaml:"material"`
	Instances []Placement `yaml:"instances"`
}

// Placement positions a single instance of a model in the scene.
type Placement struct {
	Position  [3]float32 `yaml:"position"`
	RotationY float32    `yaml:"rotation_y"` // degrees
	Scale     float32    `yaml:"scale"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
