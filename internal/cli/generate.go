package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gen-machineconf/internal/app"
)

type generateOptions struct {
	Source          sourceOptions
	SystemConfig    string
	ConfigDir       string
	DTSPath         string
	BBConfDir       string
	Machine         string
	SocFamily       string
	SocVariant      string
	DeviceID        string
	DomainFile      string
	PSUInitPath     string
	Overlay         bool
	ExternalFPGA    bool
	Force           bool
	StrictSelection bool
	StrictTopology  bool
	MetricsFile     string
}

func newGenerateCommand() *cobra.Command {
	opts := generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate multiconfig artifacts and the dependency map",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd.Context(), cmd, opts)
		},
	}
	addGenerateFlags(cmd, &opts)
	return cmd
}

func addGenerateFlags(cmd *cobra.Command, opts *generateOptions) {
	addSourceFlags(cmd, &opts.Source)
	cmd.Flags().StringVar(&opts.SystemConfig, "system-config", "", "Resolved configuration store")
	cmd.Flags().StringVar(&opts.ConfigDir, "config-dir", "", "Layer conf directory (defaults to the output directory)")
	cmd.Flags().StringVar(&opts.DTSPath, "dts-path", "", "Device tree output directory")
	cmd.Flags().StringVar(&opts.BBConfDir, "bbconf-dir", "", "Machine include directory")
	cmd.Flags().StringVar(&opts.Machine, "machine", "", "Machine name")
	cmd.Flags().StringVar(&opts.SocFamily, "soc-family", "", "SoC family override")
	cmd.Flags().StringVar(&opts.SocVariant, "soc-variant", "", "SoC variant override")
	cmd.Flags().StringVar(&opts.DeviceID, "device-id", "", "Device id used to detect the SoC variant")
	cmd.Flags().StringVar(&opts.DomainFile, "domain-file", "", "Extra lopper domain file")
	cmd.Flags().StringVar(&opts.PSUInitPath, "psu-init-path", "", "Directory holding psu_init files")
	cmd.Flags().BoolVar(&opts.Overlay, "overlay", false, "Generate a PL overlay for the Linux device tree")
	cmd.Flags().BoolVar(&opts.ExternalFPGA, "external-fpga", false, "PL bitstream is loaded externally")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Regenerate even when inputs are unchanged")
	cmd.Flags().BoolVar(&opts.StrictSelection, "strict-selection", false, "Fail on selected targets that match no multiconfig")
	cmd.Flags().BoolVar(&opts.StrictTopology, "strict-topology", false, "Fail on duplicate core names")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "Write Prometheus text metrics to this file")

	_ = viper.BindPFlag("system_config", cmd.Flags().Lookup("system-config"))
	_ = viper.BindPFlag("config_dir", cmd.Flags().Lookup("config-dir"))
	_ = viper.BindPFlag("dts_path", cmd.Flags().Lookup("dts-path"))
	_ = viper.BindPFlag("bbconf_dir", cmd.Flags().Lookup("bbconf-dir"))
	_ = viper.BindPFlag("machine", cmd.Flags().Lookup("machine"))
	_ = viper.BindPFlag("soc_family", cmd.Flags().Lookup("soc-family"))
	_ = viper.BindPFlag("soc_variant", cmd.Flags().Lookup("soc-variant"))
	_ = viper.BindPFlag("device_id", cmd.Flags().Lookup("device-id"))
	_ = viper.BindPFlag("domain_file", cmd.Flags().Lookup("domain-file"))
	_ = viper.BindPFlag("psu_init_path", cmd.Flags().Lookup("psu-init-path"))
	_ = viper.BindPFlag("overlay", cmd.Flags().Lookup("overlay"))
	_ = viper.BindPFlag("external_fpga", cmd.Flags().Lookup("external-fpga"))
	_ = viper.BindPFlag("force", cmd.Flags().Lookup("force"))
	_ = viper.BindPFlag("selection.strict", cmd.Flags().Lookup("strict-selection"))
	_ = viper.BindPFlag("topology_strict", cmd.Flags().Lookup("strict-topology"))
	_ = viper.BindPFlag("metrics_file", cmd.Flags().Lookup("metrics-file"))
}

func generateRequest(cmd *cobra.Command, opts generateOptions) app.GenerateRequest {
	source := resolveSource(cmd, opts.Source)
	return app.GenerateRequest{
		HWFile:          source.HWFile,
		TopologyFile:    source.TopologyFile,
		OutputDir:       source.OutputDir,
		ConfigFile:      resolveString(cmd, opts.SystemConfig, "system_config", "system-config"),
		ConfigDir:       resolveString(cmd, opts.ConfigDir, "config_dir", "config-dir"),
		DTSPath:         resolveString(cmd, opts.DTSPath, "dts_path", "dts-path"),
		BBConfDir:       resolveString(cmd, opts.BBConfDir, "bbconf_dir", "bbconf-dir"),
		Machine:         resolveString(cmd, opts.Machine, "machine", "machine"),
		SocFamily:       resolveString(cmd, opts.SocFamily, "soc_family", "soc-family"),
		SocVariant:      resolveString(cmd, opts.SocVariant, "soc_variant", "soc-variant"),
		DeviceID:        resolveString(cmd, opts.DeviceID, "device_id", "device-id"),
		DomainFile:      resolveString(cmd, opts.DomainFile, "domain_file", "domain-file"),
		PSUInitPath:     resolveString(cmd, opts.PSUInitPath, "psu_init_path", "psu-init-path"),
		Overlay:         resolveBool(cmd, opts.Overlay, "overlay", "overlay"),
		ExternalFPGA:    resolveBool(cmd, opts.ExternalFPGA, "external_fpga", "external-fpga"),
		Force:           resolveBool(cmd, opts.Force, "force", "force"),
		StrictSelection: resolveBool(cmd, opts.StrictSelection, "selection.strict", "strict-selection"),
		StrictTopology:  resolveBool(cmd, opts.StrictTopology, "topology_strict", "strict-topology"),
		MetricsFile:     resolveString(cmd, opts.MetricsFile, "metrics_file", "metrics-file"),
	}
}

func runGenerate(ctx context.Context, cmd *cobra.Command, opts generateOptions) error {
	service := newAppService()
	result, err := service.Generate(ctx, generateRequest(cmd, opts))
	if err != nil {
		return err
	}
	printGenerateResult(result)
	return nil
}

func printGenerateResult(result app.GenerateResult) {
	state := "generated"
	if result.Cached {
		state = "cached"
	}
	fmt.Printf("%s: %s (%s) machine=%s\n", state, result.SocFamily, result.SocVariant, result.Machine)
	fmt.Printf("enabled: %s\n", strings.Join(result.Enabled, ", "))
	fmt.Printf("dependency map: %d entries in %s\n", len(result.Dependencies), result.OutputDir)
}
