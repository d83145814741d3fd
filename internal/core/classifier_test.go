package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gen-machineconf/internal/types"
)

func TestRegistryNormalizesFamilyKeys(t *testing.T) {
	registry := DefaultRegistry()

	comma, ok := registry.Lookup("arm,cortex-a53")
	assert.True(t, ok)
	dash, ok := registry.Lookup("ARM-Cortex-A53")
	assert.True(t, ok)
	assert.Equal(t, comma, dash)

	_, ok = registry.Lookup("arm,cortex-a9")
	assert.False(t, ok)
}

func TestRegistryFamilies(t *testing.T) {
	assert.Equal(t, []string{
		"arm-cortex-a53",
		"arm-cortex-a72",
		"arm-cortex-r5",
		"pmc-microblaze",
		"pmu-microblaze",
		"psm-microblaze",
		"xlnx-microblaze",
	}, DefaultRegistry().Families())
}

func TestZeroRegistryIgnoresRegister(t *testing.T) {
	var registry Registry
	registry.Register("arm,cortex-a53", softMicroblaze{})
	_, ok := registry.Lookup("arm,cortex-a53")
	assert.False(t, ok)
}

func TestUnitNames(t *testing.T) {
	assert.Equal(t, "cortexa53-0-zynqmp-baremetal", baremetalUnitName("cortexa53", "0", "zynqmp", types.NoneValue))
	assert.Equal(t, "cortexr5-1-zynqmp-rpu-baremetal", baremetalUnitName("cortexr5", "1", "zynqmp", "rpu"))
	assert.Equal(t, "cortexa72-0-versal-freertos", freertosUnitName("cortexa72", "0", "versal", ""))

	name, multiconfig := linuxUnitName("cortexa72", "versal", types.NoneValue)
	assert.Equal(t, "cortexa72-versal-linux", name)
	assert.False(t, multiconfig)

	name, multiconfig = linuxUnitName("cortexa72", "versal", "apu")
	assert.Equal(t, "cortexa72-versal-apu-linux", name)
	assert.True(t, multiconfig)
}

func TestRenderDependency(t *testing.T) {
	ref := types.DependencyRef{Role: types.FirmwareRolePLM, Unit: "microblaze-0-pmc", Recipe: "plm-firmware", Task: "do_deploy"}
	assert.Equal(t, "mc::microblaze-0-pmc:plm-firmware:do_deploy", RenderDependency(ref))
	assert.Equal(t, "${BASE_TMPDIR}/tmp-microblaze-0-pmc/deploy/images/${MACHINE}", RenderDeployDir("microblaze-0-pmc"))

	entries := firmwareDependencies(types.FirmwareRolePLM, "microblaze-0-pmc", "plm-firmware")
	assert.Equal(t, map[string]string{
		"plm-depends":    "mc::microblaze-0-pmc:plm-firmware:do_deploy",
		"plm-deploy-dir": "${BASE_TMPDIR}/tmp-microblaze-0-pmc/deploy/images/${MACHINE}",
	}, entries)
}

func TestResolutionContextClaims(t *testing.T) {
	rc := NewGenerationContext("zynqmp", []string{"Microblaze_0_PMU"})
	assert.True(t, rc.IsEnabled("microblaze-0-pmu"))
	assert.False(t, rc.IsEnabled("microblaze-0-pmc"))
	assert.True(t, rc.claimBootloader("cortexa53"))
	assert.False(t, rc.claimBootloader("cortexa53"))
	assert.True(t, rc.claimBootloader("cortexr5"))
	assert.True(t, rc.claimLinuxDTS())
	assert.False(t, rc.claimLinuxDTS())
	assert.True(t, rc.claimTuneFeatures())
	assert.False(t, rc.claimTuneFeatures())

	discovery := NewDiscoveryContext("zynqmp")
	assert.False(t, discovery.IsEnabled("microblaze-0-pmu"))
}
