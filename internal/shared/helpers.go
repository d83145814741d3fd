// Package shared provides common utility functions used across multiple
// packages in the gen-machineconf codebase.
package shared

import (
	"fmt"
	"strings"
)

// NormalizeTargetName lowercases a multiconfig target name and replaces
// underscores with hyphens, matching how Kconfig symbols map back to names.
func NormalizeTargetName(value string) string {
	lower := strings.ToLower(strings.TrimSpace(value))
	return strings.ReplaceAll(lower, "_", "-")
}

// TargetSymbol is the inverse of NormalizeTargetName: the Kconfig symbol
// suffix for a multiconfig target.
func TargetSymbol(name string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(name), "-", "_"))
}

// NormalizeFamily maps architecture strings such as "arm,cortex-a53" to
// the registry key "arm-cortex-a53".
func NormalizeFamily(architecture string) string {
	lower := strings.ToLower(strings.TrimSpace(architecture))
	return strings.ReplaceAll(lower, ",", "-")
}

// CommandError wraps a command execution error with its trimmed output
// for cleaner error messages.
func CommandError(output []byte, err error) error {
	return fmt.Errorf("%s: %w", strings.TrimSpace(string(output)), err)
}
