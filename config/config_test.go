package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileYieldsDefaults(t *testing.T) {
	cfg := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Equal(t, DefaultAppConfig.Web.Port, cfg.Web.Port)
	assert.Equal(t, DefaultAppConfig.Backend.BaseURL, cfg.Backend.BaseURL)
}

func TestLoadConfig_FileOverlayAndEnvOverride(t *testing.T) {
	cfile := filepath.Join(t.TempDir(), "medshop.yml")
	require.NoError(t, os.WriteFile(cfile, []byte(`
web:
  port: 9000
backend:
  baseurl: http://backend.local/api
`), 0o644))

	t.Setenv("MEDSHOP_WEB_PORT", "9100")
	t.Setenv("MEDSHOP_BACKEND_TIMEOUT", "30")

	cfg := LoadConfig(cfile)
	// env wins over file, file wins over defaults
	assert.Equal(t, 9100, cfg.Web.Port)
	assert.Equal(t, "http://backend.local/api", cfg.Backend.BaseURL)
	assert.Equal(t, 30, cfg.Backend.Timeout)
	assert.Equal(t, DefaultAppConfig.Web.Host, cfg.Web.Host)
}
