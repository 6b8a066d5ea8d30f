// Package harness provides utilities for integration testing the covdir CLI.
// It handles binary compilation, environment isolation, command execution
// and a fake coverage endpoint.
//
// Environment variables managed:
//   - COVDIR_HOME: Isolated per test (temp directory)
//   - COVDIR_DEBUG: Disabled to reduce noise
//   - COVDIR_ENDPOINT: Points at the fake coverage server when one is attached
package harness
