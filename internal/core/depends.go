package core

import (
	"fmt"

	"gen-machineconf/internal/types"
)

const deployTask = "do_deploy"

// RenderDependency renders a multiconfig task dependency as BitBake
// expects it in an mcdepends value.
func RenderDependency(ref types.DependencyRef) string {
	return fmt.Sprintf("mc::%s:%s:%s", ref.Unit, ref.Recipe, ref.Task)
}

// RenderDeployDir is where a multiconfig deploys its images.
func RenderDeployDir(unit string) string {
	return fmt.Sprintf("${BASE_TMPDIR}/tmp-%s/deploy/images/${MACHINE}", unit)
}

// firmwareDependencies returns the pair of dependency-map entries that point
// firmware packaging at a unit.
func firmwareDependencies(role string, unit string, recipe string) map[string]string {
	ref := types.DependencyRef{Role: role, Unit: unit, Recipe: recipe, Task: deployTask}
	return map[string]string{
		types.DependsKey(role):   RenderDependency(ref),
		types.DeployDirKey(role): RenderDeployDir(unit),
	}
}
