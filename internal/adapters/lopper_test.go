package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLopper(runner *fakeRunner) LopperAdapter {
	return LopperAdapter{
		Runner:     runner,
		Binary:     "lopper",
		LopsDir:    "/sysroot/lops",
		EmbeddedSW: "/sysroot/share/embeddedsw",
		DTC:        "dtc",
	}
}

func TestRunDomainFilesArguments(t *testing.T) {
	runner := &fakeRunner{stdout: "ok"}
	lopper := testLopper(runner)

	stdout, err := lopper.RunDomainFiles(t.Context(), "/dts", "/out",
		[]string{"lop-a53-imux.dts", "", "/abs/domain.yaml"}, "/hw/system.dts", "/dts/unit.dts", []string{"-x", "*.yaml"})
	require.NoError(t, err)
	assert.Equal(t, "ok", stdout)
	require.Len(t, runner.calls, 1)

	call := runner.calls[0]
	assert.Equal(t, "lopper", call.Name)
	assert.Equal(t, "/dts", call.Dir)
	assert.Equal(t, []string{"LOPPER_DTC_FLAGS=-b 0 -@"}, call.Env)
	want := []string{
		"-O", "/out", "-f", "--enhanced", "-x", "*.yaml",
		"-i", "/sysroot/lops/lop-a53-imux.dts",
		"-i", "/abs/domain.yaml",
		"/hw/system.dts", "/dts/unit.dts",
	}
	if diff := cmp.Diff(want, call.Args); diff != "" {
		t.Fatalf("unexpected lopper args (-want +got):\n%s", diff)
	}
}

func TestSubcommandAndDriverListArguments(t *testing.T) {
	runner := &fakeRunner{}
	lopper := testLopper(runner)

	_, err := lopper.RunSubcommand(t.Context(), "/dts", "/out", "/hw/system.dts", []string{"xlnx_overlay_dt", "zynqmp", "partial"}, nil)
	require.NoError(t, err)
	require.NoError(t, lopper.BaremetalDriverList(t.Context(), "/dts", "/out", "psu_cortexa53_0", "/hw/system.dts", nil))
	require.NoError(t, lopper.CompileOverlay(t.Context(), "/dts/pl.dtsi", "/dts/pl.dtbo"))

	require.Len(t, runner.calls, 3)
	assert.Equal(t, []string{"-O", "/out", "/hw/system.dts", "--", "xlnx_overlay_dt", "zynqmp", "partial"}, runner.calls[0].Args)
	assert.Equal(t, []string{"-O", "/out", "-f", "/hw/system.dts", "--", "baremetaldrvlist_xlnx", "psu_cortexa53_0", "/sysroot/share/embeddedsw"}, runner.calls[1].Args)
	assert.Equal(t, "dtc", runner.calls[2].Name)
	assert.Equal(t, []string{"-q", "-O", "dtb", "-o", "/dts/pl.dtbo", "-b", "0", "-@", "/dts/pl.dtsi"}, runner.calls[2].Args)
}

func TestExtractTopologyWritesCPUInfo(t *testing.T) {
	runner := &fakeRunner{stdout: "arm,cortex-a53 0 None psu_cortexa53_0 None\n"}
	out := filepath.Join(t.TempDir(), "out")

	path, err := testLopper(runner).ExtractTopology(t.Context(), "/hw/system.dts", out)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, CPUInfoFile), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, runner.stdout, string(data))
	assert.Contains(t, runner.calls[0].Args, "/sysroot/lops/lop-xilinx-id-cpus.dts")
}

func TestLopperWithoutRunner(t *testing.T) {
	_, err := LopperAdapter{Binary: "lopper"}.RunDomainFiles(t.Context(), "", "", nil, "hw", "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no tool runner")
}
