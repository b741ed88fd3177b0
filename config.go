package cellatlas

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config defines runtime settings for renderers and atlas builds.
type Config struct {
	Font         FontDescriptor `yaml:"font"`
	Scale        float64        `yaml:"scale"`         // device pixel ratio
	BoldColors   bool           `yaml:"bold_colors"`   // draw colors 8-15 bold
	BuildWorkers int            `yaml:"build_workers"` // rows rasterized at once; 0 = GOMAXPROCS

	// Palette overrides palette entries, index to hex color.
	Palette map[int]string `yaml:"palette"`
}

// ConfigDefault provides the default configuration values.
var ConfigDefault = Config{
	Font: FontDescriptor{
		Family: "gomono",
		Size:   14,
	},
	Scale:      1,
	BoldColors: true,
}

//go:embed defaults/config.yaml
var defaultConfigYAML []byte

func NewConfig() Config {
	conf := ConfigDefault
	conf.Palette = make(map[int]string)
	return conf
}

// DeviceFont returns the configured font scaled to device pixels.
func (c Config) DeviceFont() FontDescriptor {
	return c.Font.Scaled(c.Scale)
}

// LoadConfig loads configuration over the defaults.
// Search order: path -> ~/.cellatlas/config.yaml -> embedded defaults.
func LoadConfig(path string) (Config, error) {
	cfg := NewConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		return cfg, cfg.validate()
	}

	if userPath := userConfigPath(); userPath != "" {
		if data, err := os.ReadFile(userPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, cfg.validate()
			}
			cfg = NewConfig()
		}
	}

	if err := yaml.Unmarshal(defaultConfigYAML, &cfg); err != nil {
		return NewConfig(), nil
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.Scale <= 0 {
		return fmt.Errorf("cellatlas: scale must be positive, got %g", c.Scale)
	}
	if c.Font.Family == "" {
		return fmt.Errorf("cellatlas: font family not set")
	}
	return nil
}

// userConfigPath returns the path to the user config file, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cellatlas", "config.yaml")
}
