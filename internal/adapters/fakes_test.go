package adapters

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"gen-machineconf/internal/types"
)

type fakeRunner struct {
	calls  []types.ToolInvocation
	stdout string
	failOn string
	onRun  func(invocation types.ToolInvocation)
}

func (f *fakeRunner) Run(_ context.Context, invocation types.ToolInvocation) (types.ToolOutput, error) {
	f.calls = append(f.calls, invocation)
	for _, arg := range invocation.Args {
		if f.failOn != "" && arg == f.failOn {
			return types.ToolOutput{}, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("external tool failed: " + invocation.Name)
		}
	}
	if f.onRun != nil {
		f.onRun(invocation)
	}
	return types.ToolOutput{Stdout: f.stdout}, nil
}
