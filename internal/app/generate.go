package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"gen-machineconf/internal/adapters"
	"gen-machineconf/internal/core"
	"gen-machineconf/internal/policies"
	"gen-machineconf/internal/ports"
	"gen-machineconf/internal/types"
)

// Generate runs one full generation pass: topology, selection, per-unit
// artifacts, the dependency map and the report. When the inputs are
// unchanged since the last successful pass and its outputs still exist, the
// persisted dependency map is returned without running any external tool.
func (s Service) Generate(ctx context.Context, req GenerateRequest) (GenerateResult, error) {
	if err := s.validator().Struct(req); err != nil {
		return GenerateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("hardware file and output directory are required").
			WithCause(err)
	}
	runID := s.runID()
	logger := s.logger().With().Str("run_id", runID).Logger()
	ctx = logger.WithContext(ctx)

	metrics := adapters.NewMetricsAdapter(req.MetricsFile)
	defer func() {
		if err := metrics.Flush(); err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("failed to write metrics")
		}
	}()
	runner := s.toolRunner(metrics)
	store := adapters.NewDigestStoreAdapter(req.OutputDir)
	store.Metrics = metrics

	topology, err := s.loadTopology(ctx, TopologySource{
		TopologyFile: req.TopologyFile,
		HWFile:       req.HWFile,
		OutputDir:    req.OutputDir,
	}, req.StrictTopology, store, runner)
	if err != nil {
		return GenerateResult{}, err
	}
	cfg, err := s.readConfig(req.ConfigFile)
	if err != nil {
		return GenerateResult{}, err
	}
	family, variant, err := settleSoc(topology, cfg, req.SocFamily, req.SocVariant, req.DeviceID)
	if err != nil {
		return GenerateResult{}, err
	}
	if !core.SupportedSocFamily(family) {
		return GenerateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("unsupported soc family: " + family)
	}
	machine := firstNonEmpty(req.Machine, cfg.Machine, family)
	options := generationOptions(req, family, machine)
	fingerprint, err := optionsFingerprint(machine, options)
	if err != nil {
		return GenerateResult{}, err
	}

	resolver := core.NewMultiConfigResolver(s.Registry, nil)
	discovery, err := resolver.Discover(ctx, topology, family)
	if err != nil {
		return GenerateResult{}, err
	}
	selection, err := core.NewSelectionFilter(policies.NewSelectionPolicy(req.StrictSelection)).
		Resolve(ctx, cfg.EnabledTargets, discovery)
	if err != nil {
		return GenerateResult{}, err
	}

	result := GenerateResult{
		RunID:      runID,
		SocFamily:  family,
		SocVariant: variant,
		Machine:    machine,
		Full:       discovery.Full,
		Minimal:    discovery.Minimal,
		Enabled:    selection.Enabled,
		OutputDir:  req.OutputDir,
	}

	depsPath := filepath.Join(req.OutputDir, adapters.DependencyMapFile)
	if !req.Force && s.outputsCurrent(ctx, store, req, fingerprint, options.DTSPath, depsPath) {
		deps, err := s.OutputReader.ReadDependencyMap(depsPath)
		if err == nil {
			log.Ctx(ctx).Info().
				Str("output_dir", req.OutputDir).
				Msg("inputs unchanged, reusing generated multiconfigs")
			result.Cached = true
			result.Dependencies = deps
			return result, nil
		}
		log.Ctx(ctx).Warn().Err(err).Msg("cached dependency map unreadable, regenerating")
	}

	artifacts := adapters.NewArtifactGeneratorAdapter(adapters.NewLopperAdapter(runner, s.LopperBinary), options)
	if err := artifacts.Prepare(); err != nil {
		return GenerateResult{}, err
	}
	resolver.Artifacts = artifacts
	resolver.Metrics = metrics
	generation, err := resolver.Generate(ctx, topology, family, selection.Enabled)
	if err != nil {
		return GenerateResult{}, err
	}

	output := adapters.NewOutputFileAdapter(req.OutputDir)
	if err := output.WriteDependencyMap(generation.Dependencies); err != nil {
		return GenerateResult{}, err
	}
	if err := output.WriteReport(buildReport(result, generation)); err != nil {
		return GenerateResult{}, err
	}
	if err := commitDigests(store, cacheInputs(req), fingerprint); err != nil {
		return GenerateResult{}, err
	}

	log.Ctx(ctx).Info().
		Str("soc_family", family).
		Int("units", len(generation.Units)).
		Int("generated", len(generation.Generated)).
		Msg("multiconfig generation finished")
	result.Generated = generation.Generated
	result.Dependencies = generation.Dependencies
	return result, nil
}

func generationOptions(req GenerateRequest, family string, machine string) types.GenerationOptions {
	configDir := firstNonEmpty(req.ConfigDir, req.OutputDir)
	return types.GenerationOptions{
		SocFamily:    family,
		OutputDir:    req.OutputDir,
		HWFile:       req.HWFile,
		DTSPath:      firstNonEmpty(req.DTSPath, filepath.Join(configDir, "dts", machine)),
		ConfigDir:    configDir,
		BBConfDir:    firstNonEmpty(req.BBConfDir, filepath.Join(configDir, "machine", "include", machine)),
		DomainFile:   req.DomainFile,
		PSUInitPath:  firstNonEmpty(req.PSUInitPath, filepath.Dir(req.HWFile)),
		Overlay:      req.Overlay,
		ExternalFPGA: req.ExternalFPGA,
	}
}

// cacheInputs maps digest keys to the input files a generation depends on.
func cacheInputs(req GenerateRequest) map[string]string {
	inputs := map[string]string{types.CacheKeyHWFile: req.HWFile}
	if path := strings.TrimSpace(req.ConfigFile); path != "" {
		inputs[types.CacheKeySystemConf] = path
	}
	if path := strings.TrimSpace(req.TopologyFile); path != "" {
		inputs[types.CacheKeyTopologyFile] = path
	}
	return inputs
}

// optionsFingerprint serializes everything besides the input files that
// shapes the generated outputs. Output paths are part of it, so moving the
// DTS or bitbake conf directories also regenerates.
func optionsFingerprint(machine string, options types.GenerationOptions) ([]byte, error) {
	content, err := yaml.Marshal(struct {
		Machine string                  `yaml:"machine"`
		Options types.GenerationOptions `yaml:"options"`
	}{Machine: machine, Options: options})
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode generation options").
			WithCause(err)
	}
	return content, nil
}

// outputsCurrent pre-checks every input digest and the options fingerprint
// without updating the store, and requires the previous outputs to still be
// on disk.
func (s Service) outputsCurrent(ctx context.Context, store ports.ChangeDetectorPort, req GenerateRequest, fingerprint []byte, dtsPath string, depsPath string) bool {
	inputs := cacheInputs(req)
	current := true
	status, err := store.CheckAndUpdateValue(types.CacheKeyGenerationOptions, fingerprint, false)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("options digest check failed, regenerating")
		return false
	}
	if status == types.CacheChanged {
		log.Ctx(ctx).Debug().Str("key", types.CacheKeyGenerationOptions).Msg("generation options changed")
		current = false
	}
	for _, key := range sortedKeys(inputs) {
		status, err := store.CheckAndUpdate(key, inputs[key], false)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("digest check failed, regenerating")
			return false
		}
		if status == types.CacheChanged {
			log.Ctx(ctx).Debug().Str("key", key).Msg("input changed")
			current = false
		}
	}
	if !current {
		return false
	}
	for _, path := range []string{dtsPath, depsPath} {
		if !fileExists(path) {
			log.Ctx(ctx).Debug().Str("path", path).Msg("generated output missing")
			return false
		}
	}
	return true
}

func commitDigests(store ports.ChangeDetectorPort, inputs map[string]string, fingerprint []byte) error {
	for _, key := range sortedKeys(inputs) {
		if _, err := store.CheckAndUpdate(key, inputs[key], true); err != nil {
			return err
		}
	}
	_, err := store.CheckAndUpdateValue(types.CacheKeyGenerationOptions, fingerprint, true)
	return err
}

func buildReport(result GenerateResult, generation core.Generation) types.ResolutionReport {
	generated := make(map[string]struct{}, len(generation.Generated))
	for _, name := range generation.Generated {
		generated[name] = struct{}{}
	}
	units := make([]types.ReportUnit, 0, len(generation.Units))
	for _, unit := range generation.Units {
		_, ran := generated[unit.Name]
		units = append(units, types.ReportUnit{
			Name:        unit.Name,
			Stack:       unit.Stack,
			Flavor:      unit.Flavor,
			Core:        unit.Core,
			Required:    unit.Required,
			Multiconfig: unit.Multiconfig,
			Generated:   ran,
		})
	}
	return types.ResolutionReport{
		RunID:        result.RunID,
		SocFamily:    result.SocFamily,
		SocVariant:   result.SocVariant,
		Full:         result.Full,
		Minimal:      result.Minimal,
		Enabled:      result.Enabled,
		Units:        units,
		Dependencies: generation.Dependencies,
	}
}
