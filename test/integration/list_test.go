package integration_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/covdir/test/integration/harness"
)

type listedEntry struct {
	IsDirectory bool   `json:"is_directory"`
	Link        string `json:"link"`
	Name        string `json:"name"`
	Percent     *int   `json:"percent"`
}

type listed struct {
	Entries  []listedEntry `json:"entries"`
	Path     string        `json:"path"`
	Repo     string        `json:"repo"`
	Revision string        `json:"revision"`
}

func TestList_JSONIsNormalized(t *testing.T) {
	env, _ := newCoverageEnv(t)

	result := harness.RunCommand(t, env, "list", "abcdef123456", "--format", "json")

	harness.AssertSuccess(t, result)
	var out listed
	harness.AssertValidJSON(t, result, &out)

	names := make([]string, 0, len(out.Entries))
	for _, e := range out.Entries {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"dom", "testing", "Makefile.in", "README.md"}, names)
	assert.Equal(t, "mozilla-central", out.Repo)
	require.NotNil(t, out.Entries[0].Percent)
	assert.Equal(t, 90, *out.Entries[0].Percent)
	assert.Nil(t, out.Entries[3].Percent)
}

func TestList_Table(t *testing.T) {
	env, _ := newCoverageEnv(t)

	result := harness.RunCommand(t, env, "list", "abcdef123456", "dom")

	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, "Path: dom/")
	harness.AssertStdoutContains(t, result, "base/")
	harness.AssertStdoutContains(t, result, "Document.cpp")
	harness.AssertStdoutContains(t, result, "89%")
	harness.AssertStdoutNotContains(t, result, "Element.cpp")
}

func TestList_FiltersNoiseEntries(t *testing.T) {
	env, _ := newCoverageEnv(t)

	result := harness.RunCommand(t, env, "list", "abcdef123456")

	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, "Makefile.in")
	harness.AssertStdoutNotContains(t, result, "obj-firefox")
}

func TestList_MalformedCountsFail(t *testing.T) {
	env, server := newCoverageEnv(t)
	server.SetListing("js/", []any{"b.js", false, 5, -1})

	result := harness.RunCommand(t, env, "list", "abcdef123456", "js")

	harness.AssertFailure(t, result)
	harness.AssertStderrContains(t, result, "DecodeError")
	harness.AssertStdoutEmpty(t, result)
}

func TestList_Links(t *testing.T) {
	env, _ := newCoverageEnv(t)

	result := harness.RunCommand(t, env, "list", "abcdef123456", "dom/", "--format", "links")

	harness.AssertSuccess(t, result)
	harness.AssertLinks(t, result,
		"/#/file?revision=abcdef123456&path=dom/base/",
		"/#/file?revision=abcdef123456&path=dom/Document.cpp",
	)
}

func TestList_LinksEscapeQueryCharacters(t *testing.T) {
	env, server := newCoverageEnv(t)
	server.SetListing("gfx/",
		[]any{"a&b.cpp", false, 1, 1},
		[]any{"c#.js", false, 1, 1},
	)

	result := harness.RunCommand(t, env, "list", "abcdef123456", "gfx", "--format", "links")

	harness.AssertSuccess(t, result)
	harness.AssertLinks(t, result,
		"/#/file?revision=abcdef123456&path=gfx/a%26b.cpp",
		"/#/file?revision=abcdef123456&path=gfx/c%23.js",
	)
}

func TestList_EmptyDirectory(t *testing.T) {
	env, _ := newCoverageEnv(t)

	result := harness.RunCommand(t, env, "list", "abcdef123456", "nowhere")

	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, "No entries in this directory")
}

func TestList_MissingRevisionFails(t *testing.T) {
	env, server := newCoverageEnv(t)

	result := harness.RunCommand(t, env, "list", "")

	harness.AssertFailure(t, result)
	harness.AssertStderrContains(t, result, "revision is required")
	harness.AssertQueries(t, server, 0)
}

func TestList_ServiceFailureFails(t *testing.T) {
	env, server := newCoverageEnv(t)
	server.FailWith(http.StatusServiceUnavailable)

	result := harness.RunCommand(t, env, "list", "abcdef123456")

	harness.AssertFailure(t, result)
	harness.AssertStderrContains(t, result, "HTTPError")
	harness.AssertStdoutEmpty(t, result)
}

func TestList_RepoFromEnv(t *testing.T) {
	env, _ := newCoverageEnv(t)
	env.SetEnv("COVDIR_REPO", "autoland")

	result := harness.RunCommand(t, env, "list", "abcdef123456", "--format", "json")

	harness.AssertSuccess(t, result)
	harness.AssertJSONContains(t, result, "repo", "autoland")
}

func TestList_UsesCache(t *testing.T) {
	env, server := newCoverageEnv(t)

	harness.AssertSuccess(t, harness.RunCommand(t, env, "list", "abcdef123456"))
	harness.AssertSuccess(t, harness.RunCommand(t, env, "list", "abcdef123456"))
	harness.AssertQueries(t, server, 1)

	harness.AssertSuccess(t, harness.RunCommand(t, env, "--no-cache", "list", "abcdef123456"))
	harness.AssertQueries(t, server, 2)
}
