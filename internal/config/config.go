package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/phanxgames/arbor"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Window WindowConfig `mapstructure:"window"`
	Tree   TreeConfig   `mapstructure:"tree"`
	Assets AssetsConfig `mapstructure:"assets"`
	Font   FontConfig   `mapstructure:"font"`
	Store  StoreConfig  `mapstructure:"store"`
	Log    LogConfig    `mapstructure:"log"`
}

// WindowConfig holds window settings.
type WindowConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

// TreeConfig holds tree view panel settings.
type TreeConfig struct {
	IconSize      string        `mapstructure:"icon_size"`
	PanelWidth    float64       `mapstructure:"panel_width"`
	HighlightFade time.Duration `mapstructure:"highlight_fade"`
}

// AssetsConfig holds the icon directory.
type AssetsConfig struct {
	Dir string `mapstructure:"dir"`
}

// FontConfig holds label font settings. An empty path selects Go Regular.
type FontConfig struct {
	Path string  `mapstructure:"path"`
	Size float64 `mapstructure:"size"`
}

// StoreConfig holds the project database location. Empty disables
// persistence.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from defaults, an optional TOML file and the
// environment. Env var overrides use prefix ARBOR_. path selects the config
// file; when empty, ARBOR_CONFIG or $HOME/.config/arbor/config.toml is used
// if present.
func Load(path string) (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("window.width", 1024)
	v.SetDefault("window.height", 640)
	v.SetDefault("window.title", "arbor")
	v.SetDefault("tree.icon_size", "xsmall")
	v.SetDefault("tree.panel_width", 260)
	v.SetDefault("tree.highlight_fade", "0s")
	v.SetDefault("assets.dir", "assets")
	v.SetDefault("font.path", "")
	v.SetDefault("font.size", 14)
	v.SetDefault("store.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetConfigType("toml")

	explicit := path != ""
	if !explicit {
		path = os.Getenv("ARBOR_CONFIG")
		explicit = path != ""
	}
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "arbor"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("ARBOR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Tree.PanelWidth <= 0 {
		return fmt.Errorf("config: tree.panel_width %v must be positive", c.Tree.PanelWidth)
	}
	if c.Tree.HighlightFade < 0 {
		return fmt.Errorf("config: tree.highlight_fade %v must not be negative", c.Tree.HighlightFade)
	}
	if c.Font.Size <= 0 {
		return fmt.Errorf("config: font.size %v must be positive", c.Font.Size)
	}
	if _, err := ParseIconSize(c.Tree.IconSize); err != nil {
		return err
	}
	return nil
}

// IconSize returns the parsed tree icon size. Load has already validated it.
func (c Config) IconSize() arbor.IconSize {
	s, _ := ParseIconSize(c.Tree.IconSize)
	return s
}

// ParseIconSize accepts a size name (xsmall, small, medium) or its pixel
// width (16, 24, 32).
func ParseIconSize(s string) (arbor.IconSize, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, size := range []arbor.IconSize{arbor.IconXSmall, arbor.IconSmall, arbor.IconMedium} {
		if s == size.String() || s == strconv.Itoa(int(size)) {
			return size, nil
		}
	}
	return 0, fmt.Errorf("config: unsupported icon size %q", s)
}
