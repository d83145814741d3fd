package adapters

import (
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"gen-machineconf/internal/ports"
	"gen-machineconf/internal/types"
)

type OutputReaderAdapter struct{}

func NewOutputReaderAdapter() OutputReaderAdapter {
	return OutputReaderAdapter{}
}

func (a OutputReaderAdapter) ReadDependencyMap(path string) (types.DependencyMap, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(DependencyMapFile + " not found").
			WithCause(err)
	}
	deps := types.DependencyMap{}
	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("invalid " + DependencyMapFile + " format")
		}
		deps[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return deps, nil
}

func (a OutputReaderAdapter) ReadReport(path string) (types.ResolutionReport, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return types.ResolutionReport{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(ReportFile + " not found").
			WithCause(err)
	}
	var report types.ResolutionReport
	if err := yaml.Unmarshal(content, &report); err != nil {
		return types.ResolutionReport{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse " + ReportFile).
			WithCause(err)
	}
	if strings.TrimSpace(report.SocFamily) == "" {
		return types.ResolutionReport{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(ReportFile + " missing soc_family")
	}
	return report, nil
}

var _ ports.OutputReaderPort = OutputReaderAdapter{}
