package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateReportsUnknownTargets(t *testing.T) {
	env := newTestEnv(t, zynqmpConfig+"CONFIG_YOCTO_BBMC_CORTEXR5_0_ZYNQMP_BAREMETAL=y\nCONFIG_YOCTO_BBMC_TYPO=y\n")
	table := filepath.Join(env.dir, "cpus.info")
	require.NoError(t, os.WriteFile(table, []byte(zynqmpCPUInfo), 0o644))

	result, err := env.service.Validate(t.Context(), ValidateRequest{
		Source:     TopologySource{TopologyFile: table},
		ConfigFile: env.config,
	})
	require.NoError(t, err)

	assert.Equal(t, "zynqmp", result.SocFamily)
	assert.Equal(t, 4, result.Cores)
	assert.Equal(t, []string{
		"cortexa53-0-zynqmp-fsbl-baremetal",
		"cortexr5-0-zynqmp-fsbl-baremetal",
		"cortexr5-0-zynqmp-baremetal",
		"microblaze-0-pmu",
	}, result.Enabled)
	assert.Equal(t, []string{"typo"}, result.Unknown)
}

func TestValidateStrictSelection(t *testing.T) {
	env := newTestEnv(t, zynqmpConfig+"CONFIG_YOCTO_BBMC_TYPO=y\n")
	table := filepath.Join(env.dir, "cpus.info")
	require.NoError(t, os.WriteFile(table, []byte(zynqmpCPUInfo), 0o644))

	_, err := env.service.Validate(t.Context(), ValidateRequest{
		Source:          TopologySource{TopologyFile: table},
		ConfigFile:      env.config,
		StrictSelection: true,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown multiconfig targets selected: typo")
}

func TestValidateStrictTopologyRejectsDuplicates(t *testing.T) {
	env := newTestEnv(t, zynqmpConfig)
	table := filepath.Join(env.dir, "cpus.info")
	require.NoError(t, os.WriteFile(table, []byte(zynqmpCPUInfo+"arm,cortex-a53 2 None psu_cortexa53_0 None\n"), 0o644))

	_, err := env.service.Validate(t.Context(), ValidateRequest{
		Source:         TopologySource{TopologyFile: table},
		ConfigFile:     env.config,
		StrictTopology: true,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate core name psu_cortexa53_0")
}
