package app

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"gen-machineconf/internal/adapters"
	"gen-machineconf/internal/types"
)

func (s Service) Inspect(req InspectRequest) (InspectResult, error) {
	outputDir := strings.TrimSpace(req.OutputDir)
	if outputDir == "" {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is required")
	}
	report, err := s.OutputReader.ReadReport(filepath.Join(outputDir, adapters.ReportFile))
	if err != nil {
		return InspectResult{}, err
	}
	deps, err := s.OutputReader.ReadDependencyMap(filepath.Join(outputDir, adapters.DependencyMapFile))
	if err != nil {
		return InspectResult{}, err
	}

	stats := summarizeUnits(report.Units)
	var stacks []InspectStackSummary
	for _, stack := range sortedKeys(stats) {
		stat := stats[stack]
		sort.Strings(stat.Units)
		stacks = append(stacks, InspectStackSummary{
			Stack:     stack,
			Count:     len(stat.Units),
			Generated: stat.Generated,
			Units:     stat.Units,
		})
	}
	return InspectResult{
		Report:       report,
		Dependencies: deps,
		Stacks:       stacks,
	}, nil
}

type stackSummary struct {
	Units     []string
	Generated int
}

func summarizeUnits(units []types.ReportUnit) map[types.Stack]stackSummary {
	result := map[types.Stack]stackSummary{}
	for _, unit := range units {
		stat := result[unit.Stack]
		stat.Units = append(stat.Units, unit.Name)
		if unit.Generated {
			stat.Generated++
		}
		result[unit.Stack] = stat
	}
	return result
}

func sortedKeys[K comparable, V any](input map[K]V) []K {
	keys := make([]K, 0, len(input))
	for key := range input {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i]) < fmt.Sprint(keys[j])
	})
	return keys
}
