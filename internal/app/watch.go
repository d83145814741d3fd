package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
)

// Watch runs Generate once and again after every change to the hardware
// file, the configuration store or the topology table, until ctx is done.
// Generation failures are reported through onResult and do not stop the
// watch.
func (s Service) Watch(ctx context.Context, req GenerateRequest, onResult func(GenerateResult, error)) error {
	if s.Watcher == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("no file watcher configured")
	}
	var paths []string
	for _, path := range []string{req.HWFile, req.ConfigFile, req.TopologyFile} {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			paths = append(paths, trimmed)
		}
	}
	if len(paths) == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("hardware file is required")
	}

	logger := s.logger()
	ctx = logger.WithContext(ctx)
	run := func() error {
		result, err := s.Generate(ctx, req)
		if onResult != nil {
			onResult(result, err)
		}
		return err
	}
	if err := run(); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("initial generation failed, waiting for changes")
	}
	return s.Watcher.Watch(ctx, paths, func(changed string) error {
		log.Ctx(ctx).Info().Str("file", changed).Msg("input changed, regenerating")
		return run()
	})
}
