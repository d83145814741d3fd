package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gen-machineconf/internal/policies"
	"gen-machineconf/internal/types"
)

const zynqmpTable = `# cpu core domain name os_hint
arm,cortex-a53 0 None psu_cortexa53_0 None
arm,cortex-a53 1 APU_Linux psu_cortexa53_1 linux smp extra
arm,cortex-r5 0 None psu_cortexr5_0 None

pmu-microblaze 0 None psu_pmu_0 None
`

func TestParseTopology(t *testing.T) {
	adapter := NewTopologyFileAdapter(policies.NewDuplicateCorePolicy(false))

	topology, err := adapter.ParseTopology("cpus.info", zynqmpTable)
	require.NoError(t, err)
	require.Equal(t, 4, topology.Len())

	var names []string
	for _, core := range topology.Cores() {
		names = append(names, core.Name)
	}
	if diff := cmp.Diff([]string{"psu_cortexa53_0", "psu_cortexa53_1", "psu_cortexr5_0", "psu_pmu_0"}, names); diff != "" {
		t.Fatalf("unexpected core order (-want +got):\n%s", diff)
	}

	core, ok := topology.Get("psu_cortexa53_1")
	require.True(t, ok)
	want := types.CoreDescriptor{
		Name:         "psu_cortexa53_1",
		Architecture: "arm,cortex-a53",
		CoreIndex:    "1",
		Domain:       "APU_Linux",
		OSHint:       "linux smp extra",
	}
	if diff := cmp.Diff(want, core); diff != "" {
		t.Fatalf("unexpected descriptor (-want +got):\n%s", diff)
	}
	assert.True(t, core.HasDomain())
}

func TestParseTopologyMalformedRecord(t *testing.T) {
	adapter := NewTopologyFileAdapter(policies.NewDuplicateCorePolicy(false))

	_, err := adapter.ParseTopology("cpus.info", "arm,cortex-a53 0 None psu_cortexa53_0\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed topology record at cpus.info:1")

	_, err = adapter.ParseTopology("cpus.info", "# header\narm,cortex-a53 0 None  None\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cpus.info:2")
}

func TestParseTopologyDuplicates(t *testing.T) {
	table := "arm,cortex-a53 0 None cpu None\narm,cortex-r5 0 None other None\narm,cortex-a72 1 None cpu linux\n"

	topology, err := NewTopologyFileAdapter(policies.NewDuplicateCorePolicy(false)).ParseTopology("t", table)
	require.NoError(t, err)
	require.Equal(t, 2, topology.Len())
	first := topology.Cores()[0]
	assert.Equal(t, "cpu", first.Name)
	assert.Equal(t, "arm,cortex-a72", first.Architecture)

	_, err = NewTopologyFileAdapter(policies.NewDuplicateCorePolicy(true)).ParseTopology("t", table)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate core name cpu at t:3")
}

func TestLoadTopology(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cpus.info")
	require.NoError(t, os.WriteFile(path, []byte(zynqmpTable), 0o644))

	topology, err := NewTopologyFileAdapter(policies.NewDuplicateCorePolicy(false)).LoadTopology(path)
	require.NoError(t, err)
	assert.Equal(t, 4, topology.Len())

	_, err = NewTopologyFileAdapter(policies.NewDuplicateCorePolicy(false)).LoadTopology(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "topology table not readable")
}
