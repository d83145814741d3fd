package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"gen-machineconf/internal/ports"
	"gen-machineconf/internal/types"
)

const (
	DependencyMapFile = "multiconfig.deps"
	ReportFile        = "multiconfig.yaml"
)

type OutputFileAdapter struct {
	Dir string
}

func NewOutputFileAdapter(dir string) OutputFileAdapter {
	return OutputFileAdapter{Dir: dir}
}

// WriteDependencyMap writes key=value lines sorted by key.
func (a OutputFileAdapter) WriteDependencyMap(deps types.DependencyMap) error {
	path, err := a.ensurePath(DependencyMapFile)
	if err != nil {
		return err
	}
	var lines []string
	for _, key := range sortedMacroKeys(deps) {
		lines = append(lines, fmt.Sprintf("%s=%s", key, deps[key]))
	}
	content := strings.Join(lines, "\n")
	if content != "" {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write " + DependencyMapFile).
			WithCause(err)
	}
	return nil
}

func (a OutputFileAdapter) WriteReport(report types.ResolutionReport) error {
	path, err := a.ensurePath(ReportFile)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(report)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode report").
			WithCause(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write " + ReportFile).
			WithCause(err)
	}
	return nil
}

func (a OutputFileAdapter) ensurePath(filename string) (string, error) {
	if a.Dir == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is empty")
	}
	if err := os.MkdirAll(a.Dir, 0755); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	return filepath.Join(a.Dir, filename), nil
}

var _ ports.OutputPort = OutputFileAdapter{}
