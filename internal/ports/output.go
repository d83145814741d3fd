package ports

import "gen-machineconf/internal/types"

type OutputPort interface {
	WriteDependencyMap(deps types.DependencyMap) error
	WriteReport(report types.ResolutionReport) error
}
