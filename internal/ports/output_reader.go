package ports

import "gen-machineconf/internal/types"

type OutputReaderPort interface {
	ReadDependencyMap(path string) (types.DependencyMap, error)
	ReadReport(path string) (types.ResolutionReport, error)
}
