package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbfkit/dbfkit/pkg/dbf"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "./data", config.DataDir)
	assert.Equal(t, 8080, config.Port)
	assert.Equal(t, "127.0.0.1", config.Bind)
	assert.Equal(t, "latin1", config.Decode.Encoding)
	assert.Equal(t, "strict", config.Decode.Mode)
	assert.False(t, config.Decode.IncludeDeleted)
	assert.Equal(t, 1000, config.Decode.MaxBatchRecords)
	assert.Equal(t, "info", config.Logging.Level)
	assert.NoError(t, config.Validate())
}

func TestDecodeOptions(t *testing.T) {
	decode := Decode{
		Encoding:       "cp1252",
		FieldEncodings: map[string]string{"NOTES": "koi8-r"},
		Mode:           "loose",
		IncludeDeleted: true,
	}

	opts := decode.Options()
	assert.Equal(t, "cp1252", opts.Encoding)
	assert.Equal(t, "koi8-r", opts.FieldEncodings["NOTES"])
	assert.Equal(t, dbf.ModeLoose, opts.Mode)
	assert.True(t, opts.IncludeDeleted)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}},
		{name: "empty data dir", mutate: func(c *Config) { c.DataDir = "" }, wantErr: true},
		{name: "port too large", mutate: func(c *Config) { c.Port = 70000 }, wantErr: true},
		{name: "port zero", mutate: func(c *Config) { c.Port = 0 }, wantErr: true},
		{name: "bad decode mode", mutate: func(c *Config) { c.Decode.Mode = "sloppy" }, wantErr: true},
		{name: "empty decode mode", mutate: func(c *Config) { c.Decode.Mode = "" }},
		{name: "negative batch cap", mutate: func(c *Config) { c.Decode.MaxBatchRecords = -1 }, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			config := DefaultConfig()
			tc.mutate(config)
			err := config.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("load existing config", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.yaml")

		content := []byte("data_dir: /srv/tables\nport: 9000\nbind: 0.0.0.0\ndecode:\n  encoding: cp850\n  mode: loose\nlogging:\n  level: debug\n")
		require.NoError(t, os.WriteFile(configPath, content, 0600))

		config, err := LoadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, "/srv/tables", config.DataDir)
		assert.Equal(t, 9000, config.Port)
		assert.Equal(t, "cp850", config.Decode.Encoding)
		assert.Equal(t, "loose", config.Decode.Mode)
		assert.Equal(t, "debug", config.Logging.Level)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("data_dir: x\nport: -1\n"), 0600))

		_, err := LoadConfig(configPath)
		assert.Error(t, err)
	})
}

func TestSaveAndReloadConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	config := DefaultConfig()
	config.Decode.FieldEncodings = map[string]string{"NAME": "cp1252"}
	require.NoError(t, SaveConfig(config, configPath))
	assert.True(t, ConfigExists(configPath))

	loaded, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, config, loaded)
}
