package harness

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// commandTimeout bounds each covdir invocation; the fake server answers at once
const commandTimeout = 30 * time.Second

// exitTimedOut marks a command killed by commandTimeout or one that never started
const exitTimedOut = -1

var covdir struct {
	err  error
	once sync.Once
	path string
}

// CommandResult holds the outcome of one covdir invocation
type CommandResult struct {
	Args     []string
	ExitCode int
	Stderr   string
	Stdout   string
}

// String renders the result for assertion messages
func (r CommandResult) String() string {
	return fmt.Sprintf("covdir %s (exit %d)\nstdout: %s\nstderr: %s",
		strings.Join(r.Args, " "), r.ExitCode, r.Stdout, r.Stderr)
}

// BuildBinary compiles ./cmd into a temp directory once per test run.
// Call it from TestMain.
func BuildBinary() (string, error) {
	covdir.once.Do(func() {
		root, err := moduleRoot()
		if err != nil {
			covdir.err = err
			return
		}

		dir, err := os.MkdirTemp("", "covdir-integration-test-*")
		if err != nil {
			covdir.err = err
			return
		}
		covdir.path = filepath.Join(dir, "covdir")

		build := exec.Command("go", "build", "-o", covdir.path, "./cmd")
		build.Dir = root
		build.Stdout = os.Stdout
		build.Stderr = os.Stderr
		covdir.err = build.Run()
	})
	return covdir.path, covdir.err
}

// CleanupBinary removes the temp directory holding the binary
func CleanupBinary() {
	if covdir.path == "" {
		return
	}
	if err := os.RemoveAll(filepath.Dir(covdir.path)); err != nil {
		log.Printf("Warning: failed to cleanup binary directory: %v", err)
	}
}

// RunCommand runs covdir with args inside env
func RunCommand(tb testing.TB, env *TestEnvironment, args ...string) CommandResult {
	tb.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, covdir.path, args...)
	cmd.Env = env.Environ()
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	result := CommandResult{Args: args}
	err := cmd.Run()
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()

	var exitErr *exec.ExitError
	switch {
	case ctx.Err() != nil:
		tb.Logf("covdir %v timed out after %v", args, commandTimeout)
		result.ExitCode = exitTimedOut
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	case err != nil:
		tb.Logf("covdir %v did not run: %v", args, err)
		result.ExitCode = exitTimedOut
	}
	return result
}

// moduleRoot locates the directory of the enclosing go.mod
func moduleRoot() (string, error) {
	out, err := exec.Command("go", "env", "GOMOD").Output()
	if err != nil {
		return "", err
	}
	gomod := strings.TrimSpace(string(out))
	if gomod == "" || gomod == os.DevNull {
		return "", errors.New("integration tests must run inside the covdir module")
	}
	return filepath.Dir(gomod), nil
}
