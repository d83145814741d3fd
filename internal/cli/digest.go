package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gen-machineconf/internal/app"
)

type digestOptions struct {
	OutputDir string
	Key       string
	Update    bool
}

func newDigestCommand() *cobra.Command {
	opts := digestOptions{}
	cmd := &cobra.Command{
		Use:   "digest <file>",
		Short: "Print a file digest and optionally check it against the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDigest(cmd, args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.OutputDir, "output", "out", "Output directory holding the digest store")
	cmd.Flags().StringVar(&opts.Key, "key", "", "Store key to compare against, e.g. HW_FILE")
	cmd.Flags().BoolVar(&opts.Update, "update", false, "Record the new digest when it changed")
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	return cmd
}

func runDigest(cmd *cobra.Command, file string, opts digestOptions) error {
	service := newAppService()
	result, err := service.Digest(app.DigestRequest{
		File:      file,
		OutputDir: resolveString(cmd, opts.OutputDir, "output", "output"),
		Key:       opts.Key,
		Update:    opts.Update,
	})
	if err != nil {
		return err
	}
	if result.Status == "" {
		fmt.Println(result.Digest)
		return nil
	}
	fmt.Printf("%s %s\n", result.Digest, result.Status)
	return nil
}
