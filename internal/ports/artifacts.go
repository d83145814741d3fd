package ports

import (
	"context"

	"gen-machineconf/internal/types"
)

// ArtifactGeneratorPort performs the expensive per-unit side effects of a
// generation pass. Each Generate call returns the artifact paths it wrote,
// keyed by the types.Artifact* constants.
type ArtifactGeneratorPort interface {
	GenerateBaremetal(ctx context.Context, req types.ArtifactRequest) (map[string]string, error)
	GenerateLinux(ctx context.Context, req types.ArtifactRequest) (map[string]string, error)
	GenerateTuneFeatures(ctx context.Context) error
}
