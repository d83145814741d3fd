package adapters

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"gen-machineconf/internal/ports"
	"gen-machineconf/internal/types"
)

const (
	tuneFeaturesLop = "lop-microblaze-yocto.dts"
	socFamilyVersal = "versal"
)

var psuInitFiles = []string{"psu_init.c", "psu_init.h"}

// ArtifactGeneratorAdapter writes the device tree, driver configuration and
// multiconfig fragment of each generated unit.
type ArtifactGeneratorAdapter struct {
	Lopper  LopperAdapter
	Options types.GenerationOptions
}

func NewArtifactGeneratorAdapter(lopper LopperAdapter, options types.GenerationOptions) ArtifactGeneratorAdapter {
	return ArtifactGeneratorAdapter{Lopper: lopper, Options: options}
}

func (a ArtifactGeneratorAdapter) GenerateBaremetal(ctx context.Context, req types.ArtifactRequest) (map[string]string, error) {
	name := req.Unit.Name
	paths := a.unitPaths(name)
	paths[types.ArtifactLibxil] = filepath.Join(a.Options.BBConfDir, name+"-libxil.conf")
	paths[types.ArtifactFeatures] = filepath.Join(a.Options.BBConfDir, name+"-features.conf")

	domainFiles := append([]string(nil), req.DomainFiles...)
	var lopperArgs, driverArgs []string
	if a.Options.DomainFile != "" {
		domainFiles = append(domainFiles, a.Options.DomainFile)
		lopperArgs = []string{"-x", "*.yaml"}
		driverArgs = []string{"--enhanced", "-x", "*.yaml"}
	}
	if _, err := a.Lopper.RunDomainFiles(ctx, a.Options.DTSPath, a.Options.OutputDir, domainFiles, a.Options.HWFile, paths[types.ArtifactDTS], lopperArgs); err != nil {
		return nil, err
	}
	if err := a.Lopper.BaremetalDriverList(ctx, a.Options.DTSPath, a.Options.OutputDir, req.CPUName, a.Options.HWFile, driverArgs); err != nil {
		return nil, err
	}

	if _, err := moveIfExists(filepath.Join(a.Options.OutputDir, "libxil.conf"), paths[types.ArtifactLibxil]); err != nil {
		return nil, err
	}
	moved, err := moveIfExists(filepath.Join(a.Options.OutputDir, "distro.conf"), paths[types.ArtifactFeatures])
	if err != nil {
		return nil, err
	}
	if moved {
		if err := replaceInFile(paths[types.ArtifactFeatures], "DISTRO_FEATURES", "MACHINE_FEATURES"); err != nil {
			return nil, err
		}
	}

	extraConf := req.ExtraConf
	if req.Unit.Flavor == types.UnitFlavorBootFirmware {
		a.checkPSUInit(ctx)
		extraConf = "PSU_INIT_PATH = \"" + a.Options.PSUInitPath + "\"\n" + extraConf
	}
	conf := multiconfigConf{
		DTFile:    paths[types.ArtifactDTS],
		CPUName:   req.CPUName,
		Tune:      req.Tune,
		Unit:      name,
		Distro:    req.Distro,
		ExtraConf: extraConf,
	}
	if err := writeTextFile(paths[types.ArtifactConf], conf.render()); err != nil {
		return nil, err
	}
	return paths, nil
}

func (a ArtifactGeneratorAdapter) GenerateLinux(ctx context.Context, req types.ArtifactRequest) (map[string]string, error) {
	name := req.Unit.Name
	paths := a.unitPaths(name)
	if !req.Unit.Multiconfig {
		delete(paths, types.ArtifactConf)
	}

	if a.Options.Overlay {
		subcommand, extraArgs := a.overlayArgs()
		if _, err := a.Lopper.RunSubcommand(ctx, a.Options.DTSPath, a.Options.OutputDir, a.Options.HWFile, subcommand, extraArgs); err != nil {
			return nil, err
		}
		dtbo := filepath.Join(a.Options.DTSPath, "pl.dtbo")
		if err := a.Lopper.CompileOverlay(ctx, filepath.Join(a.Options.DTSPath, "pl.dtsi"), dtbo); err != nil {
			return nil, err
		}
		paths[types.ArtifactOverlay] = dtbo
	} else {
		var lopperArgs []string
		domainFiles := []string{a.Options.DomainFile}
		if a.Options.DomainFile != "" {
			lopperArgs = []string{"-x", "*.yaml"}
		}
		domainFiles = append(domainFiles, req.DomainFiles...)
		if _, err := a.Lopper.RunDomainFiles(ctx, a.Options.DTSPath, a.Options.OutputDir, domainFiles, a.Options.HWFile, paths[types.ArtifactDTS], lopperArgs); err != nil {
			return nil, err
		}
	}

	if conf, ok := paths[types.ArtifactConf]; ok {
		fragment := multiconfigConf{DTFile: paths[types.ArtifactDTS], Unit: name}
		if err := writeTextFile(conf, fragment.render()); err != nil {
			return nil, err
		}
	}
	return paths, nil
}

func (a ArtifactGeneratorAdapter) GenerateTuneFeatures(ctx context.Context) error {
	log.Ctx(ctx).Info().Msg("generating microblaze processor tunes")
	stdout, err := a.Lopper.RunDomainFiles(ctx, a.Options.OutputDir, a.Options.OutputDir, []string{tuneFeaturesLop}, a.Options.HWFile, "", nil)
	if err != nil {
		return err
	}
	return writeTextFile(filepath.Join(a.Options.BBConfDir, "microblaze.inc"), stdout+microblazeRequire)
}

func (a ArtifactGeneratorAdapter) unitPaths(name string) map[string]string {
	return map[string]string{
		types.ArtifactDTS:  filepath.Join(a.Options.DTSPath, name+".dts"),
		types.ArtifactConf: filepath.Join(a.Options.ConfigDir, "multiconfig", name+".conf"),
	}
}

// overlayArgs picks the overlay flavor. Versal has no partial
// reconfiguration overlay, so it always uses full.
func (a ArtifactGeneratorAdapter) overlayArgs() ([]string, []string) {
	subcommand := []string{"xlnx_overlay_dt", a.Options.SocFamily, "full"}
	if a.Options.SocFamily == socFamilyVersal {
		if a.Options.ExternalFPGA {
			return append(subcommand, "external_fpga"), []string{"-f"}
		}
		return subcommand, nil
	}
	if a.Options.ExternalFPGA {
		return subcommand, []string{"-f"}
	}
	return []string{"xlnx_overlay_dt", a.Options.SocFamily, "partial"}, nil
}

func (a ArtifactGeneratorAdapter) checkPSUInit(ctx context.Context) {
	for _, name := range psuInitFiles {
		path := filepath.Join(a.Options.PSUInitPath, name)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			log.Ctx(ctx).Warn().
				Str("file", name).
				Str("psu_init_path", a.Options.PSUInitPath).
				Msg("psu init file not found")
		}
	}
}

// Prepare creates the directories generated artifacts are written to.
func (a ArtifactGeneratorAdapter) Prepare() error {
	dirs := []string{a.Options.OutputDir, a.Options.DTSPath, a.Options.BBConfDir}
	if a.Options.ConfigDir != "" {
		dirs = append(dirs, filepath.Join(a.Options.ConfigDir, "multiconfig"))
	}
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := ensureDir(dir); err != nil {
			return err
		}
	}
	return nil
}

func ensureDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create directory " + path).
			WithCause(err)
	}
	return nil
}

var _ ports.ArtifactGeneratorPort = ArtifactGeneratorAdapter{}
