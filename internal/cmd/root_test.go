package cmd

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/renato0307/covdir/internal/config"
	"github.com/renato0307/covdir/internal/domain"
	"github.com/renato0307/covdir/internal/logging"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func newDefaultCLI() *CLI {
	return &CLI{
		MaxLogFiles: logging.DefaultMaxLogFiles,
		Timeout:     defaultTimeout,
	}
}

func TestApplySettings_Defaults(t *testing.T) {
	unsetEnv(t, "COVDIR_DEBUG", "COVDIR_MAX_LOG_FILES")
	cli := newDefaultCLI()

	cli.applySettings()

	assert.Equal(t, config.DefaultEndpoint, cli.Endpoint)
	assert.Equal(t, domain.DefaultRepoSource, cli.Repo)
	assert.Equal(t, defaultTimeout, cli.Timeout)
	assert.False(t, cli.NoCache)
	assert.False(t, cli.Debug)
}

func TestApplySettings_SettingsFillUnsetFlags(t *testing.T) {
	unsetEnv(t, "COVDIR_DEBUG", "COVDIR_MAX_LOG_FILES")
	timeout := 5
	maxLogs := 10
	debug := true
	cacheEnabled := false
	cli := newDefaultCLI()
	cli.SetSettings(&config.Settings{
		CacheEnabled:   &cacheEnabled,
		Debug:          &debug,
		DefaultRepo:    "autoland",
		Endpoint:       "http://settings.test/",
		MaxLogFiles:    &maxLogs,
		TimeoutSeconds: &timeout,
	})

	cli.applySettings()

	assert.Equal(t, "http://settings.test", cli.Endpoint)
	assert.Equal(t, "autoland", cli.Repo)
	assert.Equal(t, 5*time.Second, cli.Timeout)
	assert.Equal(t, 10, cli.MaxLogFiles)
	assert.True(t, cli.Debug)
	assert.True(t, cli.NoCache)
}

func TestApplySettings_FlagsWin(t *testing.T) {
	unsetEnv(t, "COVDIR_DEBUG", "COVDIR_MAX_LOG_FILES")
	timeout := 5
	cli := newDefaultCLI()
	cli.Endpoint = "http://flag.test"
	cli.Repo = "try"
	cli.Timeout = time.Minute
	cli.SetSettings(&config.Settings{
		DefaultRepo:    "autoland",
		Endpoint:       "http://settings.test",
		TimeoutSeconds: &timeout,
	})

	cli.applySettings()

	assert.Equal(t, "http://flag.test", cli.Endpoint)
	assert.Equal(t, "try", cli.Repo)
	assert.Equal(t, time.Minute, cli.Timeout)
}

func TestApplySettings_EnvBlocksSettingsDebug(t *testing.T) {
	t.Setenv("COVDIR_DEBUG", "0")
	unsetEnv(t, "COVDIR_MAX_LOG_FILES")
	debug := true
	cli := newDefaultCLI()
	cli.SetSettings(&config.Settings{Debug: &debug})

	cli.applySettings()

	assert.False(t, cli.Debug)
}
