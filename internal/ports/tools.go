package ports

import (
	"context"

	"gen-machineconf/internal/types"
)

// ToolRunnerPort invokes an external command and waits for it to exit.
// A nonzero exit is returned as an error.
type ToolRunnerPort interface {
	Run(ctx context.Context, invocation types.ToolInvocation) (types.ToolOutput, error)
}
