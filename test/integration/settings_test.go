package integration_test

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/covdir/test/integration/harness"
)

func TestSettingsMeta(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		validate func(t *testing.T, result harness.CommandResult)
	}{
		{
			name: "table format (default)",
			args: []string{"settings", "meta"},
			validate: func(t *testing.T, result harness.CommandResult) {
				harness.AssertStdoutContains(t, result, "Settings file:")
				harness.AssertStdoutContains(t, result, "coverage_thresholds.low")
			},
		},
		{
			name: "json format",
			args: []string{"settings", "meta", "--format", "json"},
			validate: func(t *testing.T, result harness.CommandResult) {
				var output map[string]any
				harness.AssertValidJSON(t, result, &output)
				assert.Contains(t, output, "settings_file")
				assert.Contains(t, output, "format")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := harness.NewTestEnvironment(t)

			result := harness.RunCommand(t, env, tt.args...)

			harness.AssertSuccess(t, result)
			tt.validate(t, result)
		})
	}
}

func TestSettingsSet_PersistsValue(t *testing.T) {
	env := harness.NewTestEnvironment(t)

	result := harness.RunCommand(t, env, "settings", "set", "coverage_thresholds.low", "30")
	harness.AssertSuccess(t, result)

	data, err := os.ReadFile(env.SettingsPath())
	require.NoError(t, err)
	var settings map[string]any
	require.NoError(t, json.Unmarshal(data, &settings))
	assert.Equal(t, map[string]any{"low": float64(30)}, settings["coverage_thresholds"])
}

func TestSettingsSet_RejectsUnknownKey(t *testing.T) {
	env := harness.NewTestEnvironment(t)

	result := harness.RunCommand(t, env, "settings", "set", "colour", "red")

	harness.AssertFailure(t, result)
	harness.AssertStderrContains(t, result, "unknown setting")
	harness.AssertStderrContains(t, result, "valid keys")
}

func TestSettingsSet_EndpointUsedByList(t *testing.T) {
	env, server := newCoverageEnv(t)
	env.SetEnv("COVDIR_ENDPOINT", "")

	harness.AssertSuccess(t, harness.RunCommand(t, env, "settings", "set", "endpoint", server.URL()))

	result := harness.RunCommand(t, env, "list", "abcdef123456", "--format", "links")
	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, "path=dom/")
}
