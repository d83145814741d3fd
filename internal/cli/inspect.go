package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gen-machineconf/internal/adapters"
	"gen-machineconf/internal/app"
	"gen-machineconf/internal/types"
)

type inspectOptions struct {
	OutputDir string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect the report and dependency map of the last generation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.OutputDir, "output", "out", "Output directory")
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	return cmd
}

func runInspect(cmd *cobra.Command, opts inspectOptions) error {
	service := newAppService()
	result, err := service.Inspect(app.InspectRequest{
		OutputDir: resolveString(cmd, opts.OutputDir, "output", "output"),
	})
	if err != nil {
		return err
	}

	report := result.Report
	fmt.Printf("run %s: %s %s\n", report.RunID, report.SocFamily, report.SocVariant)
	fmt.Printf("minimal: %s\n", strings.Join(report.Minimal, ", "))
	fmt.Printf("enabled: %s\n", strings.Join(report.Enabled, ", "))
	fmt.Println("units:")
	for _, summary := range result.Stacks {
		fmt.Printf("- %s: %d units, %d generated\n", summary.Stack, summary.Count, summary.Generated)
		if len(summary.Units) > 0 {
			fmt.Printf("  %s\n", strings.Join(summary.Units, ", "))
		}
	}
	fmt.Printf("%s entries: %d\n", adapters.DependencyMapFile, len(result.Dependencies))
	for _, key := range sortedDependencyKeys(result.Dependencies) {
		fmt.Printf("- %s=%s\n", key, result.Dependencies[key])
	}
	return nil
}

func sortedDependencyKeys(deps types.DependencyMap) []string {
	keys := make([]string, 0, len(deps))
	for key := range deps {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
