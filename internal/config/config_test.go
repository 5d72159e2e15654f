package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TELETELA_API_URL", "")
	t.Setenv("TELETELA_STATE_DIR", "")
	t.Setenv("TELETELA_HTTP_TIMEOUT", "")
	t.Setenv("TELETELA_VIACEP_URL", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.APIURL)
	assert.Equal(t, filepath.Join("/tmp/xdg", "teletela"), cfg.StateDir)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Empty(t, cfg.ViaCEPURL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TELETELA_API_URL", "https://api.teletela.com.br")
	t.Setenv("TELETELA_STATE_DIR", "/var/lib/teletela")
	t.Setenv("TELETELA_HTTP_TIMEOUT", "5s")
	t.Setenv("TELETELA_VIACEP_URL", "http://localhost:9999")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://api.teletela.com.br", cfg.APIURL)
	assert.Equal(t, "/var/lib/teletela", cfg.StateDir)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "http://localhost:9999", cfg.ViaCEPURL)
}

func TestLoad_BadTimeout(t *testing.T) {
	t.Setenv("TELETELA_HTTP_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}
