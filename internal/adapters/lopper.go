package adapters

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"gen-machineconf/internal/ports"
	"gen-machineconf/internal/types"
)

const (
	lopperDTCFlags = "LOPPER_DTC_FLAGS=-b 0 -@"
	// CPUInfoFile holds the topology table extracted from the hardware file.
	CPUInfoFile = "cpus.info"
	cpuListLop  = "lop-xilinx-id-cpus.dts"
)

// LopperAdapter drives the lopper device-tree transformer and the dtc
// compiler through a ToolRunnerPort.
type LopperAdapter struct {
	Runner ports.ToolRunnerPort
	Binary string
	// LopsDir resolves relative domain files.
	LopsDir string
	// EmbeddedSW is the driver source tree passed to the driver-list lop.
	EmbeddedSW string
	DTC        string
}

// NewLopperAdapter locates the lops and embeddedsw trees relative to the
// lopper binary, the way the lopper sysroot installs them.
func NewLopperAdapter(runner ports.ToolRunnerPort, binary string) LopperAdapter {
	if binary == "" {
		binary = "lopper"
	}
	adapter := LopperAdapter{Runner: runner, Binary: binary, DTC: "dtc"}
	resolved, err := exec.LookPath(binary)
	if err != nil {
		log.Debug().Err(err).Str("lopper", binary).Msg("lopper not found in PATH")
		return adapter
	}
	prefix := filepath.Dir(filepath.Dir(resolved))
	if matches, _ := filepath.Glob(filepath.Join(prefix, "lib", "python*", "site-packages", "lopper", "lops")); len(matches) > 0 {
		adapter.LopsDir = matches[0]
	}
	adapter.EmbeddedSW = filepath.Join(prefix, "share", "embeddedsw")
	return adapter
}

// RunDomainFiles applies lops to the hardware file, writing dtsFile when it
// is set, and returns the tool's stdout.
func (a LopperAdapter) RunDomainFiles(ctx context.Context, dir string, outputDir string, domainFiles []string, hwFile string, dtsFile string, extraArgs []string) (string, error) {
	args := []string{"-O", outputDir, "-f", "--enhanced"}
	args = append(args, extraArgs...)
	for _, domain := range domainFiles {
		if domain == "" {
			continue
		}
		args = append(args, "-i", a.lopPath(domain))
	}
	args = append(args, hwFile)
	if dtsFile != "" {
		args = append(args, dtsFile)
	}
	return a.run(ctx, dir, args)
}

// RunSubcommand runs a lopper assist after the "--" separator.
func (a LopperAdapter) RunSubcommand(ctx context.Context, dir string, outputDir string, hwFile string, subcommand []string, extraArgs []string) (string, error) {
	args := []string{"-O", outputDir}
	args = append(args, extraArgs...)
	args = append(args, hwFile, "--")
	args = append(args, subcommand...)
	return a.run(ctx, dir, args)
}

// BaremetalDriverList writes libxil.conf and distro.conf for cpuName into
// outputDir.
func (a LopperAdapter) BaremetalDriverList(ctx context.Context, dir string, outputDir string, cpuName string, hwFile string, extraArgs []string) error {
	args := []string{"-O", outputDir, "-f"}
	args = append(args, extraArgs...)
	args = append(args, hwFile, "--", "baremetaldrvlist_xlnx", cpuName, a.EmbeddedSW)
	_, err := a.run(ctx, dir, args)
	return err
}

// CompileOverlay turns dtsi into a device-tree overlay blob.
func (a LopperAdapter) CompileOverlay(ctx context.Context, dtsi string, dtbo string) error {
	_, err := a.Runner.Run(ctx, types.ToolInvocation{
		Name: a.DTC,
		Args: []string{"-q", "-O", "dtb", "-o", dtbo, "-b", "0", "-@", dtsi},
	})
	return err
}

// ExtractTopology writes the per-core table of hwFile to
// <outputDir>/cpus.info and returns its path.
func (a LopperAdapter) ExtractTopology(ctx context.Context, hwFile string, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	stdout, err := a.RunDomainFiles(ctx, outputDir, outputDir, []string{cpuListLop}, hwFile, "", nil)
	if err != nil {
		return "", err
	}
	path := filepath.Join(outputDir, CPUInfoFile)
	if err := os.WriteFile(path, []byte(stdout), 0644); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write " + CPUInfoFile).
			WithCause(err)
	}
	return path, nil
}

func (a LopperAdapter) lopPath(domain string) string {
	if filepath.IsAbs(domain) || a.LopsDir == "" {
		return domain
	}
	return filepath.Join(a.LopsDir, domain)
}

func (a LopperAdapter) run(ctx context.Context, dir string, args []string) (string, error) {
	if a.Runner == nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("lopper adapter has no tool runner")
	}
	output, err := a.Runner.Run(ctx, types.ToolInvocation{
		Name: a.Binary,
		Args: args,
		Dir:  dir,
		Env:  []string{lopperDTCFlags},
	})
	if err != nil {
		return "", err
	}
	return output.Stdout, nil
}

var _ ports.TopologyExtractorPort = LopperAdapter{}
