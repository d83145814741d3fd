package core

import (
	"context"
	"sort"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"gen-machineconf/internal/ports"
	"gen-machineconf/internal/types"
)

// MultiConfigResolver runs the classifier over a whole topology.
type MultiConfigResolver struct {
	Registry  Registry
	Artifacts ports.ArtifactGeneratorPort
	Metrics   ports.MetricsPort
}

// Discovery is the outcome of a names-only pass.
type Discovery struct {
	Full    []string
	Minimal []string
	Units   []types.BuildUnit
	Skipped []string
}

// Generation is the outcome of a pass that ran side effects.
type Generation struct {
	Dependencies types.DependencyMap
	Units        []types.BuildUnit
	Generated    []string
	Skipped      []string
}

func NewMultiConfigResolver(registry Registry, artifacts ports.ArtifactGeneratorPort) MultiConfigResolver {
	return MultiConfigResolver{
		Registry:  registry,
		Artifacts: artifacts,
	}
}

// Discover classifies every core with all side effects suppressed and
// returns the candidate names and their required subset.
func (r MultiConfigResolver) Discover(ctx context.Context, topology *types.Topology, socFamily string) (Discovery, error) {
	if topology == nil {
		return Discovery{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("resolver requires a topology")
	}
	assert.NotEmpty(ctx, socFamily, "soc family must be set")

	p := r.newPass(NewDiscoveryContext(socFamily))
	if err := r.run(ctx, p, topology); err != nil {
		return Discovery{}, err
	}
	log.Ctx(ctx).Debug().
		Int("full", len(p.full)).
		Int("minimal", len(p.minimal)).
		Msg("multiconfig discovery completed")
	return Discovery{
		Full:    p.full,
		Minimal: p.minimal,
		Units:   p.units,
		Skipped: p.skipped,
	}, nil
}

// Generate classifies every core and runs the artifact side effects for the
// enabled units. Required units always run, whatever the selection says.
// Any side-effect failure aborts the pass with no result.
func (r MultiConfigResolver) Generate(ctx context.Context, topology *types.Topology, socFamily string, enabled []string) (Generation, error) {
	if topology == nil {
		return Generation{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("resolver requires a topology")
	}
	if r.Artifacts == nil {
		return Generation{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("resolver requires an artifact generator")
	}
	assert.NotEmpty(ctx, socFamily, "soc family must be set")

	p := r.newPass(NewGenerationContext(socFamily, enabled))
	if err := r.run(ctx, p, topology); err != nil {
		return Generation{}, err
	}
	linkMainBuild(p.units)
	log.Ctx(ctx).Debug().
		Int("units", len(p.units)).
		Int("generated", len(p.generated)).
		Msg("multiconfig generation completed")
	return Generation{
		Dependencies: p.deps,
		Units:        p.units,
		Generated:    p.generated,
		Skipped:      p.skipped,
	}, nil
}

func (r MultiConfigResolver) newPass(rc *ResolutionContext) *pass {
	return &pass{
		rc:        rc,
		artifacts: r.Artifacts,
		metrics:   r.Metrics,
		deps:      types.DependencyMap{},
	}
}

func (r MultiConfigResolver) run(ctx context.Context, p *pass, topology *types.Topology) error {
	for _, core := range topology.Cores() {
		handler, ok := r.Registry.Lookup(core.Architecture)
		if !ok {
			log.Ctx(ctx).Warn().
				Str("core", core.Name).
				Str("architecture", core.Architecture).
				Strs("supported", r.Registry.Families()).
				Msg("unsupported architecture, skipping core")
			p.skipped = append(p.skipped, core.Name)
			continue
		}
		if err := handler.Classify(ctx, p, core); err != nil {
			return err
		}
	}
	return nil
}

// linkMainBuild makes the main Linux build depend on every required
// multiconfig, which is what the firmware dependency entries express.
func linkMainBuild(units []types.BuildUnit) {
	var required []string
	for _, unit := range units {
		if unit.Required && unit.Multiconfig {
			required = append(required, unit.Name)
		}
	}
	for i := range units {
		if units[i].Stack == types.StackLinux && !units[i].Multiconfig {
			units[i].DependsOn = required
		}
	}
}

// pass accumulates the result of one traversal.
type pass struct {
	rc        *ResolutionContext
	artifacts ports.ArtifactGeneratorPort
	metrics   ports.MetricsPort
	units     []types.BuildUnit
	full      []string
	minimal   []string
	generated []string
	skipped   []string
	deps      types.DependencyMap
}

type generateFunc func(ctx context.Context) (map[string]string, error)

// record adds the unit to the pass. When side effects are allowed for the
// unit, generate runs first and its artifact paths are attached.
func (p *pass) record(ctx context.Context, unit types.BuildUnit, generate generateFunc) error {
	ran := false
	if p.shouldGenerate(unit) {
		log.Ctx(ctx).Info().
			Str("unit", unit.Name).
			Str("stack", string(unit.Stack)).
			Str("core", unit.Core).
			Str("domain", unit.Domain).
			Msg("generating multiconfig artifacts")
		paths, err := generate(ctx)
		if err != nil {
			return err
		}
		unit.ArtifactPaths = paths
		p.generated = append(p.generated, unit.Name)
		ran = true
	} else if !p.rc.FileNamesOnly {
		log.Ctx(ctx).Debug().Str("unit", unit.Name).Msg("unit not enabled, skipping artifacts")
	}

	p.units = append(p.units, unit)
	if unit.Multiconfig {
		p.full = append(p.full, unit.Name)
		if unit.Required {
			p.minimal = append(p.minimal, unit.Name)
		}
	}
	if p.metrics != nil {
		p.metrics.UnitResolved(unit, ran)
	}
	return nil
}

func (p *pass) shouldGenerate(unit types.BuildUnit) bool {
	if p.rc.FileNamesOnly {
		return false
	}
	if !unit.Multiconfig || unit.Required {
		return true
	}
	return p.rc.IsEnabled(unit.Name)
}

func (p *pass) addDependencies(entries map[string]string) {
	for key, value := range entries {
		p.deps[key] = value
	}
}

func sortedKeys[V any](input map[string]V) []string {
	keys := make([]string, 0, len(input))
	for key := range input {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
