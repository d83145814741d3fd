package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gen-machineconf/internal/types"
)

func TestInspectReadsGeneratedOutputs(t *testing.T) {
	env := newTestEnv(t, zynqmpConfig)
	generated, err := env.service.Generate(t.Context(), env.request())
	require.NoError(t, err)

	result, err := env.service.Inspect(InspectRequest{OutputDir: env.output})
	require.NoError(t, err)

	assert.Equal(t, "run-1", result.Report.RunID)
	assert.Equal(t, "zynqmp", result.Report.SocFamily)
	assert.Equal(t, generated.Full, result.Report.Full)
	assert.Equal(t, generated.Dependencies, result.Dependencies)

	byStack := map[types.Stack]InspectStackSummary{}
	for _, summary := range result.Stacks {
		byStack[summary.Stack] = summary
	}
	require.Len(t, byStack, 3)
	assert.Equal(t, 1, byStack[types.StackLinux].Count)
	assert.Equal(t, 1, byStack[types.StackLinux].Generated)
	assert.Equal(t, 3, byStack[types.StackFreeRTOS].Count)
	assert.Zero(t, byStack[types.StackFreeRTOS].Generated)
	assert.Equal(t, 3, byStack[types.StackBaremetal].Generated)
}

func TestInspectRequiresOutputDir(t *testing.T) {
	_, err := Service{}.Inspect(InspectRequest{OutputDir: " "})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output directory is required")
}

func TestInspectMissingReport(t *testing.T) {
	env := newTestEnv(t, zynqmpConfig)

	_, err := env.service.Inspect(InspectRequest{OutputDir: env.output})
	require.Error(t, err)
}
