package confetti

import (
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config is the host configuration, usually read from a YAML file.
type Config struct {
	Window WindowConfig `yaml:"window"`
	// TPS is the update rate of the host loop.
	TPS int `yaml:"tps"`
	// Mode is the placement a plain trigger requests: near, far or both.
	Mode   string       `yaml:"mode"`
	Assets AssetsConfig `yaml:"assets"`
	Log    LogConfig    `yaml:"log"`
	Debug  bool         `yaml:"debug"`
}

// WindowConfig sizes the host window.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// AssetsConfig selects where sprites come from. An empty Dir uses the
// built-in generated sprites.
type AssetsConfig struct {
	Dir       string `yaml:"dir"`
	CacheSize int    `yaml:"cache_size"`
}

// LogConfig controls zerolog output.
type LogConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{Width: 480, Height: 800, Title: "Confetti"},
		TPS:    60,
		Mode:   PlacementBoth.String(),
		Assets: AssetsConfig{CacheSize: 16},
		Log:    LogConfig{Level: "info"},
	}
}

// LoadConfig reads and parses a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "failed to read config %s", path)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "failed to parse config %s", path)
	}
	return cfg, nil
}

// ParseConfig parses YAML data. Missing values take their defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "invalid yaml")
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.Window.Width <= 0 {
		c.Window.Width = d.Window.Width
	}
	if c.Window.Height <= 0 {
		c.Window.Height = d.Window.Height
	}
	if c.Window.Title == "" {
		c.Window.Title = d.Window.Title
	}
	if c.TPS <= 0 {
		c.TPS = d.TPS
	}
	if c.Mode == "" {
		c.Mode = d.Mode
	}
	if c.Assets.CacheSize <= 0 {
		c.Assets.CacheSize = d.Assets.CacheSize
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

// Validate checks the mode, log level, tick rate and window size.
func (c Config) Validate() error {
	if c.TPS <= 0 {
		return errors.Errorf("tps must be positive, got %d", c.TPS)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if _, err := ParsePlacement(c.Mode); err != nil {
		return errors.Wrap(err, "mode")
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(err, "log level")
	}
	return nil
}

// Placement returns the parsed Mode, falling back to PlacementBoth.
func (c Config) Placement() Placement {
	p, err := ParsePlacement(c.Mode)
	if err != nil {
		return PlacementBoth
	}
	return p
}

// Level returns the parsed log level, falling back to info.
func (c Config) Level() zerolog.Level {
	l, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return l
}

// AssetLoader returns the loader described by Assets, wrapped in a cache.
func (c Config) AssetLoader() (AssetLoader, error) {
	var base AssetLoader = GeneratedAssets{}
	if c.Assets.Dir != "" {
		base = FSAssets{FS: os.DirFS(c.Assets.Dir)}
	}
	return NewCachedAssets(base, c.Assets.CacheSize)
}
