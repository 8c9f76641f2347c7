package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"TAX_FILES_DIR", "DATA_DIR", "STATE_FILE", "LOG_DIR",
		"UPLOAD_COMMAND", "FETCH_COMMAND", "PORT",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "tax_files", cfg.TaxFilesDir)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "beverage_replacement_state.json", cfg.StateFile)
	assert.Equal(t, ".", cfg.LogDir)
	assert.Equal(t, []string{"python3", "automation/auto_upload_simple.py"}, cfg.UploadCommand)
	assert.Equal(t, []string{"python3", "automation/auto_fetch_fabi.py"}, cfg.FetchCommand)
	assert.Equal(t, 5001, cfg.Port)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TAX_FILES_DIR", "/srv/tax")
	t.Setenv("UPLOAD_COMMAND", "/usr/local/bin/uploader --fast")
	t.Setenv("PORT", "8080")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/tax", cfg.TaxFilesDir)
	assert.Equal(t, []string{"/usr/local/bin/uploader", "--fast"}, cfg.UploadCommand)
	assert.Equal(t, 8080, cfg.Port)
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("PORT", "70000")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestGetLoggerConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	lc := cfg.GetLoggerConfig()
	assert.Equal(t, "debug", lc.Level)
	assert.Equal(t, "json", lc.Format)
}
