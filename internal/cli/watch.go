package cli

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gen-machineconf/internal/adapters"
	"gen-machineconf/internal/app"
)

type watchOptions struct {
	Generate   generateOptions
	DebounceMs int
}

func newWatchCommand() *cobra.Command {
	opts := watchOptions{}
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate whenever the hardware file or configuration changes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd.Context(), cmd, opts)
		},
	}
	addGenerateFlags(cmd, &opts.Generate)
	cmd.Flags().IntVar(&opts.DebounceMs, "debounce-ms", 500, "Quiet period before a rerun")
	_ = viper.BindPFlag("watch.debounce_ms", cmd.Flags().Lookup("debounce-ms"))
	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, opts watchOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	service := newAppService()
	debounce := resolveInt(cmd, opts.DebounceMs, "watch.debounce_ms", "debounce-ms")
	service.Watcher = adapters.NewWatchAdapter(time.Duration(debounce) * time.Millisecond)
	return service.Watch(ctx, generateRequest(cmd, opts.Generate), func(result app.GenerateResult, err error) {
		if err != nil {
			log.Error().Err(err).Msg(errorMessage(err))
			return
		}
		printGenerateResult(result)
	})
}
