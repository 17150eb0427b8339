package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	texerrors "github.com/texhue/texhue/pkg/errors"
)

// Config is the application configuration loaded from config.yaml. Zero
// values fall back to defaults; a missing file yields the default config.
type Config struct {
	Theme       string `yaml:"theme,omitempty" validate:"omitempty,theme_name"`
	Document    string `yaml:"document,omitempty"`
	LogLevel    string `yaml:"log_level,omitempty" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	LogFile     string `yaml:"log_file,omitempty"`
	PaletteRepo string `yaml:"palette_repo,omitempty" validate:"omitempty,git_url"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Theme:    "tex-dark",
		Document: filepath.Join(Dir(), "styles.yaml"),
		LogLevel: "info",
		LogFile:  filepath.Join(Dir(), "texhue.log"),
	}
}

// Load reads the configuration file at path, applies defaults to unset
// fields, and validates the result. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, texerrors.NewParseError(path, 0, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, texerrors.NewParseError(path, 0, err)
	}

	cfg.applyDefaults()

	if err := Validate(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Theme == "" {
		c.Theme = def.Theme
	}
	if c.Document == "" {
		c.Document = def.Document
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.LogFile == "" {
		c.LogFile = def.LogFile
	}
}

// Dir returns the texhue configuration directory. TEXHUE_CONFIG_DIR
// overrides it, which tests and scripted runs rely on.
func Dir() string {
	if dir := os.Getenv("TEXHUE_CONFIG_DIR"); dir != "" {
		return dir
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return ".texhue"
	}
	return filepath.Join(base, "texhue")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// PacksDir returns the directory palette packs are synced into.
func PacksDir() string {
	return filepath.Join(Dir(), "packs")
}
