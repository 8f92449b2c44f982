package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/countdownctl/internal/constants"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultDeviceURL, cfg.Device.URL)
	assert.Equal(t, constants.DefaultScanDelay, cfg.Device.ScanDelay)
	assert.Zero(t, cfg.Device.Timeout)
	assert.Equal(t, constants.DefaultListen, cfg.Emulator.Listen)
	assert.Equal(t, path, cfg.Path)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `device:
  url: http://10.0.0.42
  timeout: 3s
log:
  debug: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://10.0.0.42", cfg.Device.URL)
	assert.Equal(t, 3*time.Second, cfg.Device.Timeout)
	// Keys absent from the file keep their defaults
	assert.Equal(t, constants.DefaultScanDelay, cfg.Device.ScanDelay)
	assert.True(t, cfg.Log.Debug)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("device: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "empty url", mutate: func(c *Config) { c.Device.URL = "" }, wantErr: true},
		{name: "negative timeout", mutate: func(c *Config) { c.Device.Timeout = -time.Second }, wantErr: true},
		{name: "negative scan delay", mutate: func(c *Config) { c.Device.ScanDelay = -time.Millisecond }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Device.URL = "http://countdown.local"
	cfg.Emulator.Store = "keyring"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Device, loaded.Device)
	assert.Equal(t, cfg.Emulator, loaded.Emulator)
}
