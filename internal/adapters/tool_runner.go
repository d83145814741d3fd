package adapters

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"gen-machineconf/internal/ports"
	"gen-machineconf/internal/shared"
	"gen-machineconf/internal/types"
)

// ExecToolRunner runs external commands and waits for them to exit. There
// is no timeout; a hung tool hangs the pass.
type ExecToolRunner struct {
	Metrics ports.MetricsPort
}

func NewExecToolRunner(metrics ports.MetricsPort) ExecToolRunner {
	return ExecToolRunner{Metrics: metrics}
}

func (r ExecToolRunner) Run(ctx context.Context, invocation types.ToolInvocation) (types.ToolOutput, error) {
	if strings.TrimSpace(invocation.Name) == "" {
		return types.ToolOutput{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("tool name is empty")
	}
	log.Ctx(ctx).Debug().
		Str("tool", invocation.Name).
		Strs("args", invocation.Args).
		Str("dir", invocation.Dir).
		Msg("running external tool")

	cmd := exec.Command(invocation.Name, invocation.Args...)
	cmd.Dir = invocation.Dir
	if len(invocation.Env) > 0 {
		cmd.Env = append(os.Environ(), invocation.Env...)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if r.Metrics != nil {
		r.Metrics.ToolInvoked(invocation.Name, err != nil)
	}
	output := types.ToolOutput{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		combined := append(stdout.Bytes(), stderr.Bytes()...)
		return output, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("external tool failed: " + invocation.Name).
			WithCause(shared.CommandError(combined, err))
	}
	return output, nil
}

var _ ports.ToolRunnerPort = ExecToolRunner{}
