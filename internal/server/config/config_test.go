package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, ":8080", cfg.EndpointAddr)
	assert.Equal(t, time.Hour, cfg.TokenValidityDuration)
	assert.Empty(t, cfg.SecretKey, "secret key must have no default")
}

func TestValidate_MissingSecret(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.ErrorIs(t, cfg.Validate(), ErrMissingSecret)

	cfg.SecretKey = "s"
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_FlagsOverrideDefaults(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"server", "-a", ":9090", "-s", "flag-secret", "-t", "120"}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.EndpointAddr)
	assert.Equal(t, "flag-secret", cfg.SecretKey)
	assert.Equal(t, 2*time.Minute, cfg.TokenValidityDuration)
}

func TestLoadConfig_FailsWithoutSecret(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"server", "-a", ":9090"}

	_, err := LoadConfig()
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestParseJson_Overlay(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	content := map[string]any{
		"endpoint_addr":           ":7070",
		"secret_key":              "json-secret",
		"token_validity_duration": "300s",
	}
	b, err := json.Marshal(content)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, b, 0o600))

	os.Args = []string{"server", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NoError(t, parseJson(cfg))

	assert.Equal(t, ":7070", cfg.EndpointAddr)
	assert.Equal(t, "json-secret", cfg.SecretKey)
	assert.Equal(t, 5*time.Minute, cfg.TokenValidityDuration)
	// fields absent from the file keep their defaults
	assert.Equal(t, "avatars", cfg.S3Bucket)
}
