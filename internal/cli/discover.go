package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gen-machineconf/internal/app"
	"gen-machineconf/internal/shared"
	"gen-machineconf/internal/types"
)

type discoverOptions struct {
	Source    sourceOptions
	SocFamily string
}

func newDiscoverCommand() *cobra.Command {
	opts := discoverOptions{}
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "List the multiconfig targets a topology can produce",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDiscover(cmd.Context(), cmd, opts)
		},
	}
	addSourceFlags(cmd, &opts.Source)
	cmd.Flags().StringVar(&opts.SocFamily, "soc-family", "", "SoC family override")
	_ = viper.BindPFlag("soc_family", cmd.Flags().Lookup("soc-family"))
	return cmd
}

func runDiscover(ctx context.Context, cmd *cobra.Command, opts discoverOptions) error {
	service := newAppService()
	result, err := service.Discover(ctx, app.DiscoverRequest{
		Source:         resolveSource(cmd, opts.Source),
		SocFamily:      resolveString(cmd, opts.SocFamily, "soc_family", "soc-family"),
		StrictTopology: viper.GetBool("topology_strict"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("soc family: %s\n", result.SocFamily)
	for _, line := range discoverLines(result) {
		fmt.Println(line)
	}
	return nil
}

// discoverLines renders one line per target: a '*' for required units, the
// unit name and the configuration symbol that enables it.
func discoverLines(result app.DiscoverResult) []string {
	required := map[string]bool{}
	for _, name := range result.Minimal {
		required[name] = true
	}
	lines := make([]string, 0, len(result.Full))
	for _, name := range result.Full {
		marker := " "
		if required[name] {
			marker = "*"
		}
		lines = append(lines, fmt.Sprintf("%s %s %s%s", marker, name, types.ConfigTargetPrefix, shared.TargetSymbol(name)))
	}
	return lines
}
