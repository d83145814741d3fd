package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gen-machineconf/internal/app"
)

type sourceOptions struct {
	TopologyFile string
	HWFile       string
	OutputDir    string
}

// addSourceFlags registers the flags that locate the topology table.
func addSourceFlags(cmd *cobra.Command, opts *sourceOptions) {
	cmd.Flags().StringVar(&opts.HWFile, "hw-file", "", "Hardware description file (.xsa or system device tree)")
	cmd.Flags().StringVar(&opts.TopologyFile, "topology", "", "Pre-extracted topology table, skips extraction")
	cmd.Flags().StringVar(&opts.OutputDir, "output", "out", "Output directory")
	_ = viper.BindPFlag("hw_file", cmd.Flags().Lookup("hw-file"))
	_ = viper.BindPFlag("topology", cmd.Flags().Lookup("topology"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
}

func resolveSource(cmd *cobra.Command, opts sourceOptions) app.TopologySource {
	return app.TopologySource{
		TopologyFile: resolveString(cmd, opts.TopologyFile, "topology", "topology"),
		HWFile:       resolveString(cmd, opts.HWFile, "hw_file", "hw-file"),
		OutputDir:    resolveString(cmd, opts.OutputDir, "output", "output"),
	}
}

type validateOptions struct {
	Source          sourceOptions
	SystemConfig    string
	SocFamily       string
	StrictSelection bool
	StrictTopology  bool
}

func newValidateCommand() *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the topology and target selection without generating",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.Context(), cmd, opts)
		},
	}
	addSourceFlags(cmd, &opts.Source)
	cmd.Flags().StringVar(&opts.SystemConfig, "system-config", "", "Resolved configuration store")
	cmd.Flags().StringVar(&opts.SocFamily, "soc-family", "", "SoC family override")
	cmd.Flags().BoolVar(&opts.StrictSelection, "strict-selection", false, "Fail on selected targets that match no multiconfig")
	cmd.Flags().BoolVar(&opts.StrictTopology, "strict-topology", false, "Fail on duplicate core names")
	_ = viper.BindPFlag("system_config", cmd.Flags().Lookup("system-config"))
	_ = viper.BindPFlag("soc_family", cmd.Flags().Lookup("soc-family"))
	_ = viper.BindPFlag("selection.strict", cmd.Flags().Lookup("strict-selection"))
	_ = viper.BindPFlag("topology_strict", cmd.Flags().Lookup("strict-topology"))
	return cmd
}

func runValidate(ctx context.Context, cmd *cobra.Command, opts validateOptions) error {
	service := newAppService()
	result, err := service.Validate(ctx, app.ValidateRequest{
		Source:          resolveSource(cmd, opts.Source),
		ConfigFile:      resolveString(cmd, opts.SystemConfig, "system_config", "system-config"),
		SocFamily:       resolveString(cmd, opts.SocFamily, "soc_family", "soc-family"),
		StrictSelection: resolveBool(cmd, opts.StrictSelection, "selection.strict", "strict-selection"),
		StrictTopology:  resolveBool(cmd, opts.StrictTopology, "topology_strict", "strict-topology"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("validated: %s, %d cores, %d targets\n", result.SocFamily, result.Cores, len(result.Full))
	fmt.Printf("enabled: %s\n", strings.Join(result.Enabled, ", "))
	if len(result.Unknown) > 0 {
		fmt.Printf("unknown selections: %s\n", strings.Join(result.Unknown, ", "))
	}
	if len(result.Skipped) > 0 {
		fmt.Printf("unsupported cores: %s\n", strings.Join(result.Skipped, ", "))
	}
	return nil
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func resolveInt(cmd *cobra.Command, value int, key string, flagName string) int {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetInt(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
