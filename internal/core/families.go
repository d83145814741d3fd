package core

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"gen-machineconf/internal/policies"
	"gen-machineconf/internal/types"
)

const (
	distroStandalone = "xilinx-standalone"
	distroFreeRTOS   = "xilinx-freertos"
	fsblRecipe       = "fsbl-firmware"
	bootloaderCore   = "0"
)

// bootloaderRule makes a family synthesize a first-stage boot firmware unit
// once per pass, on core 0 of that family.
type bootloaderRule struct {
	role string
	// socFamilies restricts the rule; empty means every SoC family.
	socFamilies []string
}

func (r bootloaderRule) appliesTo(socFamily string) bool {
	if len(r.socFamilies) == 0 {
		return true
	}
	for _, family := range r.socFamilies {
		if family == socFamily {
			return true
		}
	}
	return false
}

// armFamily handles application and real-time ARM clusters.
type armFamily struct {
	tune        string
	imuxDTS     string
	linuxDTS    []string
	stacks      []types.Stack
	bootloader  *bootloaderRule
	alwaysNoLTO bool
}

func (f armFamily) Classify(ctx context.Context, p *pass, core types.CoreDescriptor) error {
	if f.bootloader != nil && core.CoreIndex == bootloaderCore &&
		f.bootloader.appliesTo(p.rc.SocFamily) && p.rc.claimBootloader(f.tune) {
		if err := f.baremetal(ctx, p, core, bootloaderDomain); err != nil {
			return err
		}
	}

	intent := policies.ParseOSHint(core.OSHint)
	if intent == types.OSIntentUnset {
		for _, stack := range f.stacks {
			if err := f.generate(ctx, p, core, stack); err != nil {
				return err
			}
		}
		return nil
	}

	stack, ok := policies.StackForIntent(intent)
	if !ok || !f.supports(stack) {
		log.Ctx(ctx).Warn().
			Str("core", core.Name).
			Str("architecture", core.Architecture).
			Str("os_hint", core.OSHint).
			Msg("unknown os hint, falling back to baremetal")
		stack = types.StackBaremetal
	}
	return f.generate(ctx, p, core, stack)
}

func (f armFamily) supports(stack types.Stack) bool {
	for _, candidate := range f.stacks {
		if candidate == stack {
			return true
		}
	}
	return false
}

func (f armFamily) generate(ctx context.Context, p *pass, core types.CoreDescriptor, stack types.Stack) error {
	switch stack {
	case types.StackLinux:
		if !p.rc.claimLinuxDTS() {
			return nil
		}
		return f.linux(ctx, p, core)
	case types.StackFreeRTOS:
		return f.freertos(ctx, p, core)
	default:
		return f.baremetal(ctx, p, core, core.Domain)
	}
}

func (f armFamily) baremetal(ctx context.Context, p *pass, core types.CoreDescriptor, domain string) error {
	name := baremetalUnitName(f.tune, core.CoreIndex, p.rc.SocFamily, domain)
	boot := domain == bootloaderDomain
	unit := types.BuildUnit{
		Name:         name,
		Stack:        types.StackBaremetal,
		Flavor:       types.UnitFlavorGeneral,
		Architecture: core.Architecture,
		Core:         core.CoreIndex,
		Domain:       domain,
		Multiconfig:  true,
	}
	if boot {
		unit.Flavor = types.UnitFlavorBootFirmware
		unit.Required = true
	}
	distro := distroStandalone
	if f.alwaysNoLTO || domainSuffix(domain) == "" {
		distro += "-nolto"
	}
	return p.record(ctx, unit, func(ctx context.Context) (map[string]string, error) {
		paths, err := p.artifacts.GenerateBaremetal(ctx, types.ArtifactRequest{
			Unit:        unit,
			CPUName:     core.Name,
			Tune:        f.tune,
			Distro:      distro,
			DomainFiles: []string{f.imuxDTS},
		})
		if err != nil {
			return nil, err
		}
		if boot {
			p.addDependencies(firmwareDependencies(f.bootloader.role, name, fsblRecipe))
		}
		return paths, nil
	})
}

func (f armFamily) freertos(ctx context.Context, p *pass, core types.CoreDescriptor) error {
	unit := types.BuildUnit{
		Name:         freertosUnitName(f.tune, core.CoreIndex, p.rc.SocFamily, core.Domain),
		Stack:        types.StackFreeRTOS,
		Flavor:       types.UnitFlavorGeneral,
		Architecture: core.Architecture,
		Core:         core.CoreIndex,
		Domain:       core.Domain,
		Multiconfig:  true,
	}
	return p.record(ctx, unit, func(ctx context.Context) (map[string]string, error) {
		return p.artifacts.GenerateBaremetal(ctx, types.ArtifactRequest{
			Unit:        unit,
			CPUName:     core.Name,
			Tune:        f.tune,
			Distro:      distroFreeRTOS,
			DomainFiles: []string{f.imuxDTS},
		})
	})
}

func (f armFamily) linux(ctx context.Context, p *pass, core types.CoreDescriptor) error {
	name, multiconfig := linuxUnitName(f.tune, p.rc.SocFamily, core.Domain)
	unit := types.BuildUnit{
		Name:         name,
		Stack:        types.StackLinux,
		Flavor:       types.UnitFlavorGeneral,
		Architecture: core.Architecture,
		Core:         core.CoreIndex,
		Domain:       core.Domain,
		Multiconfig:  multiconfig,
	}
	return p.record(ctx, unit, func(ctx context.Context) (map[string]string, error) {
		domainFiles := append([]string{f.imuxDTS}, f.linuxDTS...)
		paths, err := p.artifacts.GenerateLinux(ctx, types.ArtifactRequest{
			Unit:        unit,
			CPUName:     core.Name,
			Tune:        f.tune,
			DomainFiles: domainFiles,
		})
		if err != nil {
			return nil, err
		}
		p.addDependencies(map[string]string{types.RoleLinuxDT: paths[types.ArtifactDTS]})
		return paths, nil
	})
}

// firmwareFamily handles the fixed management microcontrollers. They ignore
// the os hint and always build exactly one required baremetal firmware.
type firmwareFamily struct {
	unit   string
	role   string
	recipe string
	tune   string
	cflags string
}

func (f firmwareFamily) Classify(ctx context.Context, p *pass, core types.CoreDescriptor) error {
	unit := types.BuildUnit{
		Name:         f.unit,
		Stack:        types.StackBaremetal,
		Flavor:       types.UnitFlavorManagementFirmware,
		Architecture: core.Architecture,
		Core:         core.CoreIndex,
		Required:     true,
		Multiconfig:  true,
	}
	return p.record(ctx, unit, func(ctx context.Context) (map[string]string, error) {
		if p.rc.claimTuneFeatures() {
			if err := p.artifacts.GenerateTuneFeatures(ctx); err != nil {
				return nil, err
			}
		}
		paths, err := p.artifacts.GenerateBaremetal(ctx, types.ArtifactRequest{
			Unit:      unit,
			CPUName:   core.Name,
			Tune:      f.tune,
			Distro:    distroStandalone,
			ExtraConf: fmt.Sprintf("TARGET_CFLAGS += \"%s\"\n", f.cflags),
		})
		if err != nil {
			return nil, err
		}
		p.addDependencies(firmwareDependencies(f.role, f.unit, f.recipe))
		return paths, nil
	})
}

// softMicroblaze covers soft cores in programmable logic. Only the shared
// tune features are produced for them.
type softMicroblaze struct{}

func (softMicroblaze) Classify(ctx context.Context, p *pass, core types.CoreDescriptor) error {
	if !p.rc.FileNamesOnly && p.rc.claimTuneFeatures() {
		if err := p.artifacts.GenerateTuneFeatures(ctx); err != nil {
			return err
		}
	}
	log.Ctx(ctx).Warn().
		Str("core", core.Name).
		Str("os_hint", core.OSHint).
		Msg("soft microblaze cores have no build units yet")
	return nil
}
