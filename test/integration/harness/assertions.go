package harness

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertSuccess verifies covdir exited 0 without writing an error
func AssertSuccess(tb testing.TB, result CommandResult) {
	tb.Helper()
	assert.Equal(tb, 0, result.ExitCode, "expected success\n%s", result)
	AssertStderrEmpty(tb, result)
}

// AssertFailure verifies covdir exited non-zero and printed an Error: line
func AssertFailure(tb testing.TB, result CommandResult) {
	tb.Helper()
	assert.NotEqual(tb, 0, result.ExitCode, "expected failure\n%s", result)
	assert.NotEqual(tb, exitTimedOut, result.ExitCode, "command did not finish\n%s", result)
	AssertStderrContains(tb, result, "Error: ")
}

// AssertStdoutContains verifies stdout contains expected
func AssertStdoutContains(tb testing.TB, result CommandResult, expected string) {
	tb.Helper()
	assert.Contains(tb, result.Stdout, expected, "%s", result)
}

// AssertStdoutNotContains verifies stdout does not contain unexpected
func AssertStdoutNotContains(tb testing.TB, result CommandResult, unexpected string) {
	tb.Helper()
	assert.NotContains(tb, result.Stdout, unexpected, "%s", result)
}

// AssertStderrContains verifies stderr contains expected
func AssertStderrContains(tb testing.TB, result CommandResult, expected string) {
	tb.Helper()
	assert.Contains(tb, result.Stderr, expected, "%s", result)
}

// AssertStdoutEmpty verifies nothing but whitespace reached stdout
func AssertStdoutEmpty(tb testing.TB, result CommandResult) {
	tb.Helper()
	assert.Empty(tb, strings.TrimSpace(result.Stdout), "%s", result)
}

// AssertStderrEmpty verifies nothing but whitespace reached stderr
func AssertStderrEmpty(tb testing.TB, result CommandResult) {
	tb.Helper()
	assert.Empty(tb, strings.TrimSpace(result.Stderr), "%s", result)
}

// AssertValidJSON decodes stdout into target
func AssertValidJSON(tb testing.TB, result CommandResult, target any) {
	tb.Helper()
	require.NoError(tb, json.Unmarshal([]byte(result.Stdout), target), "%s", result)
}

// AssertJSONContains verifies a top-level key of the JSON object on stdout
func AssertJSONContains(tb testing.TB, result CommandResult, key string, expected any) {
	tb.Helper()
	var data map[string]any
	AssertValidJSON(tb, result, &data)
	assert.Equal(tb, expected, data[key], "JSON key %q\n%s", key, result)
}

// AssertLinks verifies the lines printed by list --format links
func AssertLinks(tb testing.TB, result CommandResult, expected ...string) {
	tb.Helper()
	lines := strings.Split(strings.TrimSpace(result.Stdout), "\n")
	if len(expected) == 0 {
		AssertStdoutEmpty(tb, result)
		return
	}
	assert.Equal(tb, expected, lines, "%s", result)
}

// AssertQueries verifies how many lookups reached the fake coverage server
func AssertQueries(tb testing.TB, server *FakeCoverageServer, expected int, msgAndArgs ...any) {
	tb.Helper()
	assert.Equal(tb, expected, server.Queries(), msgAndArgs...)
}
