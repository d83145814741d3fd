package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"gen-machineconf/internal/adapters"
	"gen-machineconf/internal/core"
	"gen-machineconf/internal/policies"
	"gen-machineconf/internal/ports"
	"gen-machineconf/internal/types"
)

// loadTopology reads an explicit topology table, or extracts one from the
// hardware file. Extraction is skipped while the hardware file digest is
// unchanged and the previous cpus.info is still there.
func (s Service) loadTopology(ctx context.Context, source TopologySource, strict bool, store ports.ChangeDetectorPort, runner ports.ToolRunnerPort) (*types.Topology, error) {
	loader := adapters.NewTopologyFileAdapter(policies.NewDuplicateCorePolicy(strict))
	if path := strings.TrimSpace(source.TopologyFile); path != "" {
		return loader.LoadTopology(path)
	}

	hwFile := strings.TrimSpace(source.HWFile)
	outputDir := strings.TrimSpace(source.OutputDir)
	if hwFile == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("topology file or hardware file is required")
	}
	if outputDir == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is required to extract the topology")
	}

	cpuInfo := filepath.Join(outputDir, adapters.CPUInfoFile)
	status, err := store.CheckAndUpdate(types.CacheKeyTopologyHWFile, hwFile, false)
	if err != nil {
		return nil, err
	}
	if status == types.CacheUnchanged && fileExists(cpuInfo) {
		log.Ctx(ctx).Debug().Str("topology", cpuInfo).Msg("hardware file unchanged, reusing topology")
		return loader.LoadTopology(cpuInfo)
	}

	lopper := adapters.NewLopperAdapter(runner, s.LopperBinary)
	log.Ctx(ctx).Info().Str("hw_file", hwFile).Msg("extracting topology from hardware file")
	path, err := lopper.ExtractTopology(ctx, hwFile, outputDir)
	if err != nil {
		return nil, err
	}
	topology, err := loader.LoadTopology(path)
	if err != nil {
		return nil, err
	}
	if _, err := store.CheckAndUpdate(types.CacheKeyTopologyHWFile, hwFile, true); err != nil {
		return nil, err
	}
	return topology, nil
}

func (s Service) readConfig(path string) (types.SystemConfig, error) {
	if strings.TrimSpace(path) == "" {
		return types.SystemConfig{}, nil
	}
	return s.ConfigStore.ReadConfig(path)
}

// settleSoc picks the SoC family and variant. Explicit values win over the
// configuration store, which wins over detection.
func settleSoc(topology *types.Topology, cfg types.SystemConfig, family string, variant string, deviceID string) (string, string, error) {
	family = firstNonEmpty(family, cfg.SocFamily)
	if family == "" {
		detected, err := core.DetectSocFamily(topology)
		if err != nil {
			return "", "", err
		}
		family = detected
	}
	family = strings.ToLower(family)
	variant = firstNonEmpty(variant, cfg.SocVariant, core.DetectSocVariant(family, deviceID))
	return family, variant, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
