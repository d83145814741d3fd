package core

import (
	"context"

	"gen-machineconf/internal/shared"
	"gen-machineconf/internal/types"
)

// Handler classifies one core of a given architecture family into build
// units, recording them on the pass.
type Handler interface {
	Classify(ctx context.Context, p *pass, core types.CoreDescriptor) error
}

// Registry maps architecture family keys to handlers.
type Registry struct {
	handlers map[string]Handler
}

func NewRegistry() Registry {
	return Registry{handlers: map[string]Handler{}}
}

// DefaultRegistry knows every architecture family of the supported SoCs.
func DefaultRegistry() Registry {
	registry := NewRegistry()
	registry.Register("arm,cortex-a53", armFamily{
		tune:     "cortexa53",
		imuxDTS:  "lop-a53-imux.dts",
		linuxDTS: []string{"lop-domain-linux-a53.dts", "lop-domain-linux-a53-prune.dts"},
		stacks:   []types.Stack{types.StackLinux, types.StackBaremetal, types.StackFreeRTOS},
		bootloader: &bootloaderRule{
			role: types.FirmwareRoleFSBL,
		},
	})
	registry.Register("arm,cortex-a72", armFamily{
		tune:        "cortexa72",
		imuxDTS:     "lop-a72-imux.dts",
		linuxDTS:    []string{"lop-domain-a72.dts", "lop-domain-a72-prune.dts"},
		stacks:      []types.Stack{types.StackLinux, types.StackBaremetal, types.StackFreeRTOS},
		alwaysNoLTO: true,
	})
	registry.Register("arm,cortex-r5", armFamily{
		tune:    "cortexr5",
		imuxDTS: "lop-r5-imux.dts",
		stacks:  []types.Stack{types.StackBaremetal, types.StackFreeRTOS},
		bootloader: &bootloaderRule{
			role:        types.FirmwareRoleR5FSBL,
			socFamilies: []string{"zynqmp"},
		},
	})
	registry.Register("xlnx,microblaze", softMicroblaze{})
	registry.Register("pmu-microblaze", firmwareFamily{
		unit:   "microblaze-0-pmu",
		role:   types.FirmwareRolePMU,
		recipe: "pmu-firmware",
		tune:   "microblaze-pmu",
		cflags: "-DVERSAL_PLM=1",
	})
	registry.Register("pmc-microblaze", firmwareFamily{
		unit:   "microblaze-0-pmc",
		role:   types.FirmwareRolePLM,
		recipe: "plm-firmware",
		tune:   "microblaze-pmc",
		cflags: "-DVERSAL_PLM=1",
	})
	registry.Register("psm-microblaze", firmwareFamily{
		unit:   "microblaze-0-psm",
		role:   types.FirmwareRolePSM,
		recipe: "psm-firmware",
		tune:   "microblaze-psm",
		cflags: "-DVERSAL_psm=1",
	})
	return registry
}

func (r Registry) Register(architecture string, handler Handler) {
	if r.handlers == nil {
		return
	}
	r.handlers[shared.NormalizeFamily(architecture)] = handler
}

func (r Registry) Lookup(architecture string) (Handler, bool) {
	handler, ok := r.handlers[shared.NormalizeFamily(architecture)]
	return handler, ok
}

// Families lists the registered family keys.
func (r Registry) Families() []string {
	return sortedKeys(r.handlers)
}
