package adapters

import (
	"bufio"
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"gen-machineconf/internal/ports"
	"gen-machineconf/internal/shared"
	"gen-machineconf/internal/types"
)

// ConfigStoreAdapter reads a resolved Kconfig-style configuration store made
// of KEY=value lines.
type ConfigStoreAdapter struct{}

func NewConfigStoreAdapter() ConfigStoreAdapter {
	return ConfigStoreAdapter{}
}

func (a ConfigStoreAdapter) ReadConfig(path string) (types.SystemConfig, error) {
	macros, err := readMacroFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return types.SystemConfig{}, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("configuration store not found: " + path).
				WithCause(err)
		}
		return types.SystemConfig{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to read configuration store: " + path).
			WithCause(err)
	}

	config := types.SystemConfig{
		SocFamily:  macros[types.ConfigSocFamily],
		SocVariant: macros[types.ConfigSocVariant],
		Machine:    macros[types.ConfigMachineName],
	}
	for _, key := range sortedMacroKeys(macros) {
		if !strings.HasPrefix(key, types.ConfigTargetPrefix) || macros[key] != "y" {
			continue
		}
		target := shared.NormalizeTargetName(strings.TrimPrefix(key, types.ConfigTargetPrefix))
		if target != "" {
			config.EnabledTargets = append(config.EnabledTargets, target)
		}
	}
	return config, nil
}

// readMacroFile parses KEY=value lines. Comments, blank lines and lines
// without '=' are ignored; surrounding double quotes are stripped. A later
// line for the same key wins.
func readMacroFile(path string) (map[string]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	macros := map[string]string{}
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		macros[strings.TrimSpace(key)] = strings.Trim(strings.TrimSpace(value), `"`)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return macros, nil
}

// updateMacroFile drops every line for key and appends key=value, creating
// the file when needed.
func updateMacroFile(path string, key string, value string) error {
	var kept []string
	content, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	for _, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if current, _, ok := strings.Cut(trimmed, "="); ok && strings.TrimSpace(current) == key {
			continue
		}
		kept = append(kept, line)
	}
	kept = append(kept, key+"="+value)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(strings.Join(kept, "\n")+"\n"), 0644)
}

func sortedMacroKeys(macros map[string]string) []string {
	keys := make([]string, 0, len(macros))
	for key := range macros {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

var _ ports.ConfigStorePort = ConfigStoreAdapter{}
