package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"resultctl/pkg/result"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME at a temp dir and clears overrides from the environment
func isolate(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir) // For Windows compatibility in tests
	for _, key := range []string{EnvAPIBaseURL, EnvCacheTTL, EnvTimeout, EnvWorkers} {
		t.Setenv(key, "")
	}
	// godotenv reads .env from the working directory
	wd, _ := os.Getwd()
	require.NoError(t, os.Chdir(tempDir))
	t.Cleanup(func() { os.Chdir(wd) })
	return tempDir
}

func TestConfigLoadSave(t *testing.T) {
	tempDir := isolate(t)

	// 1. Load with no existing file yields defaults
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, result.DefaultBaseURL, cfg.APIBaseURL)
	assert.Equal(t, time.Hour, cfg.TTL())
	assert.Equal(t, result.DefaultWorkers, cfg.Workers)

	// 2. Modify and save the file config
	fileCfg, err := LoadFile()
	require.NoError(t, err)
	fileCfg.APIBaseURL = "http://localhost:8006"
	fileCfg.CacheTTL = "30m"
	fileCfg.DefaultStudentID = "221-15-1234"
	fileCfg.OutputDir = "/tmp/transcripts"
	require.NoError(t, Save(fileCfg))

	// Verify the file was actually created
	configPath := filepath.Join(tempDir, ".resultctl.json")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Errorf("expected config file to be created at %s", configPath)
	}

	// 3. LoadFile round-trips exactly what was saved
	loadedFile, err := LoadFile()
	require.NoError(t, err)
	if !reflect.DeepEqual(fileCfg, loadedFile) {
		t.Errorf("loaded config does not match saved config.\nGot: %+v\nExpected: %+v", loadedFile, fileCfg)
	}

	// 4. Load applies defaults only to the missing fields
	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8006", loaded.APIBaseURL)
	assert.Equal(t, 30*time.Minute, loaded.TTL())
	assert.Equal(t, result.DefaultWorkers, loaded.Workers)
}

func TestConfigEnvOverrides(t *testing.T) {
	isolate(t)

	require.NoError(t, Save(&AppConfig{APIBaseURL: "http://from-file"}))

	t.Setenv(EnvAPIBaseURL, "http://from-env")
	t.Setenv(EnvWorkers, "4")
	t.Setenv(EnvTimeout, "3s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://from-env", cfg.APIBaseURL)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 3*time.Second, cfg.Timeout())
}

func TestConfigDotEnv(t *testing.T) {
	tempDir := isolate(t)
	os.Unsetenv(EnvCacheTTL)

	require.NoError(t, os.WriteFile(filepath.Join(tempDir, ".env"), []byte(EnvCacheTTL+"=5m\n"), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, cfg.TTL())
}

func TestConfigParseError(t *testing.T) {
	tempDir := isolate(t)

	// Write invalid JSON to the config file
	configPath := filepath.Join(tempDir, ".resultctl.json")
	require.NoError(t, os.WriteFile(configPath, []byte("invalid json { content"), 0644))

	_, err := Load()
	assert.Error(t, err, "expected error when loading invalid json")
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, (&AppConfig{}).Validate())
	assert.Error(t, (&AppConfig{CacheTTL: "soon"}).Validate())
	assert.Error(t, (&AppConfig{CacheTTL: "-1h"}).Validate())
	assert.Error(t, (&AppConfig{RequestTimeout: "0s"}).Validate())
	assert.Error(t, (&AppConfig{Workers: -2}).Validate())

	isolate(t)
	assert.Error(t, Save(&AppConfig{CacheTTL: "soon"}))
}

func TestConfigBadEnvWorkers(t *testing.T) {
	isolate(t)
	t.Setenv(EnvWorkers, "many")

	_, err := Load()
	assert.Error(t, err)
}
