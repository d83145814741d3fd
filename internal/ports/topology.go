package ports

import (
	"context"

	"gen-machineconf/internal/types"
)

// TopologyPort loads the per-core record table produced by the hardware
// description extraction tool.
type TopologyPort interface {
	LoadTopology(path string) (*types.Topology, error)
}

// TopologyExtractorPort runs the extraction tool itself.
type TopologyExtractorPort interface {
	ExtractTopology(ctx context.Context, hwFile string, outputDir string) (string, error)
}
