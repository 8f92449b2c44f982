package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/countdownctl/internal/constants"
	"github.com/julianstephens/countdownctl/internal/utils"
)

// Config represents the countdownctl configuration file
type Config struct {
	Device   DeviceConfig   `yaml:"device"`
	Emulator EmulatorConfig `yaml:"emulator"`
	Log      LogConfig      `yaml:"log"`

	// Path is the file the configuration was loaded from (not serialized)
	Path string `yaml:"-"`
}

// DeviceConfig describes how to reach the countdown display
type DeviceConfig struct {
	URL string `yaml:"url"`
	// Timeout is the client-wide HTTP timeout. Zero means no timeout.
	Timeout   time.Duration `yaml:"timeout"`
	ScanDelay time.Duration `yaml:"scan_delay"`
}

// EmulatorConfig configures the in-process device emulator
type EmulatorConfig struct {
	Listen string `yaml:"listen"`
	// Store is a sqlite file path, a postgres:// URL, or "keyring"
	Store string `yaml:"store"`
}

// LogConfig configures logging
type LogConfig struct {
	Debug bool `yaml:"debug"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Device: DeviceConfig{
			URL:       constants.DefaultDeviceURL,
			ScanDelay: constants.DefaultScanDelay,
		},
		Emulator: EmulatorConfig{
			Listen: constants.DefaultListen,
			Store:  constants.DefaultStorePath,
		},
	}
}

// DefaultPath returns the expanded default config file location
func DefaultPath() (string, error) {
	dir, err := utils.ExpandHome(constants.DefaultConfigDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.DefaultConfigFile), nil
}

// Load reads the configuration at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	expanded, err := utils.ExpandHome(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	cfg := Default()
	cfg.Path = expanded

	data, err := os.ReadFile(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", expanded, err)
	}

	return cfg, cfg.Validate()
}

// Validate checks the loaded values
func (c *Config) Validate() error {
	if c.Device.URL == "" {
		return errors.New("device.url must not be empty")
	}
	if c.Device.Timeout < 0 {
		return errors.New("device.timeout must not be negative")
	}
	if c.Device.ScanDelay < 0 {
		return errors.New("device.scan_delay must not be negative")
	}
	return nil
}

// Save writes the configuration to path, creating parent directories
func (c *Config) Save(path string) error {
	expanded, err := utils.ExpandHome(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(expanded, data, 0o644)
}
