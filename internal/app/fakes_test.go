package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"gen-machineconf/internal/adapters"
	"gen-machineconf/internal/core"
	"gen-machineconf/internal/ports"
	"gen-machineconf/internal/types"
)

const zynqmpCPUInfo = `arm,cortex-a53 0 None psu_cortexa53_0 None
arm,cortex-a53 1 None psu_cortexa53_1 None
arm,cortex-r5 0 None psu_cortexr5_0 None
pmu-microblaze 0 None psu_pmu_0 None
`

// countingRunner stands in for lopper and dtc. The topology extraction lop
// answers with a fixed table; every other call succeeds silently.
type countingRunner struct {
	mu      sync.Mutex
	calls   []types.ToolInvocation
	cpuInfo string
	failOn  string
}

func (r *countingRunner) Run(_ context.Context, invocation types.ToolInvocation) (types.ToolOutput, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, invocation)
	if r.failOn != "" && slices.Contains(invocation.Args, r.failOn) {
		return types.ToolOutput{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("external tool failed: " + invocation.Name)
	}
	if slices.Contains(invocation.Args, "lop-xilinx-id-cpus.dts") {
		return types.ToolOutput{Stdout: r.cpuInfo}, nil
	}
	return types.ToolOutput{}, nil
}

func (r *countingRunner) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// instrumentedRunner reports to the pass metrics the way the exec runner does.
type instrumentedRunner struct {
	inner   *countingRunner
	metrics ports.MetricsPort
}

func (r instrumentedRunner) Run(ctx context.Context, invocation types.ToolInvocation) (types.ToolOutput, error) {
	output, err := r.inner.Run(ctx, invocation)
	if r.metrics != nil {
		r.metrics.ToolInvoked(invocation.Name, err != nil)
	}
	return output, err
}

type testEnv struct {
	dir     string
	hwFile  string
	config  string
	output  string
	runner  *countingRunner
	logs    *bytes.Buffer
	service Service
}

func newTestEnv(t *testing.T, config string) testEnv {
	t.Helper()
	dir := t.TempDir()
	env := testEnv{
		dir:    dir,
		hwFile: filepath.Join(dir, "design.xsa"),
		config: filepath.Join(dir, "config", "auto.conf"),
		output: filepath.Join(dir, "out"),
		runner: &countingRunner{cpuInfo: zynqmpCPUInfo},
		logs:   &bytes.Buffer{},
	}
	require.NoError(t, os.WriteFile(env.hwFile, []byte("hardware handoff"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Dir(env.config), 0o755))
	require.NoError(t, os.WriteFile(env.config, []byte(config), 0o644))

	logger := zerolog.New(env.logs)
	runner := env.runner
	env.service = Service{
		ConfigStore:  adapters.NewConfigStoreAdapter(),
		OutputReader: adapters.NewOutputReaderAdapter(),
		Registry:     core.DefaultRegistry(),
		NewToolRunner: func(metrics ports.MetricsPort) ports.ToolRunnerPort {
			return instrumentedRunner{inner: runner, metrics: metrics}
		},
		LopperBinary: "lopper-not-installed",
		Logger:       &logger,
		NewRunID:     func() string { return "run-1" },
	}
	return env
}

func (e testEnv) request() GenerateRequest {
	return GenerateRequest{
		HWFile:     e.hwFile,
		ConfigFile: e.config,
		OutputDir:  e.output,
	}
}
