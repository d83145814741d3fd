package app

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"gen-machineconf/internal/adapters"
	"gen-machineconf/internal/core"
	"gen-machineconf/internal/ports"
)

type Service struct {
	ConfigStore  ports.ConfigStorePort
	OutputReader ports.OutputReaderPort
	Watcher      ports.WatchPort
	Registry     core.Registry
	// NewToolRunner builds the runner for one pass so that tool invocations
	// land in that pass's metrics.
	NewToolRunner func(metrics ports.MetricsPort) ports.ToolRunnerPort
	LopperBinary  string
	// Logger overrides the global logger for every pass.
	Logger   *zerolog.Logger
	NewRunID func() string

	validate *validator.Validate
}

func NewService() Service {
	return Service{
		ConfigStore:  adapters.NewConfigStoreAdapter(),
		OutputReader: adapters.NewOutputReaderAdapter(),
		Watcher:      adapters.NewWatchAdapter(0),
		Registry:     core.DefaultRegistry(),
		NewToolRunner: func(metrics ports.MetricsPort) ports.ToolRunnerPort {
			return adapters.NewExecToolRunner(metrics)
		},
		LopperBinary: "lopper",
		NewRunID:     uuid.NewString,
		validate:     validator.New(),
	}
}

func (s Service) logger() zerolog.Logger {
	if s.Logger != nil {
		return *s.Logger
	}
	return log.Logger
}

func (s Service) validator() *validator.Validate {
	if s.validate != nil {
		return s.validate
	}
	return validator.New()
}

func (s Service) runID() string {
	if s.NewRunID != nil {
		return s.NewRunID()
	}
	return uuid.NewString()
}

func (s Service) toolRunner(metrics ports.MetricsPort) ports.ToolRunnerPort {
	if s.NewToolRunner != nil {
		return s.NewToolRunner(metrics)
	}
	return adapters.NewExecToolRunner(metrics)
}
