// Package testutil provides shared test helpers used across integration
// and unit test packages.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// RepoRoot returns the absolute path to the repository root by walking
// up from the current working directory. It fails the test if the
// working directory cannot be determined.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(dir, "..", ".."))
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path string, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// StubLopper installs a shell script that stands in for lopper. Every
// invocation appends its arguments to the returned log file; the topology
// extraction lop prints the given table.
func StubLopper(t *testing.T, topology string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	table := WriteFile(t, filepath.Join(dir, "topology.table"), topology)
	calls := filepath.Join(dir, "calls.log")
	script := strings.Join([]string{
		"#!/bin/sh",
		`echo "$@" >> "` + calls + `"`,
		`for arg in "$@"; do`,
		`  case "$arg" in`,
		`    *lop-xilinx-id-cpus.dts) cat "` + table + `" ;;`,
		`  esac`,
		`done`,
		`exit 0`,
		"",
	}, "\n")
	binary := filepath.Join(dir, "bin", "lopper")
	WriteFile(t, binary, script)
	require.NoError(t, os.Chmod(binary, 0o755))
	return binary, calls
}

// CallCount returns the number of stub invocations recorded in log.
func CallCount(t *testing.T, log string) int {
	t.Helper()
	content, err := os.ReadFile(log)
	if os.IsNotExist(err) {
		return 0
	}
	require.NoError(t, err)
	return strings.Count(string(content), "\n")
}
