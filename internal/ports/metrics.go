package ports

import "gen-machineconf/internal/types"

// MetricsPort records counters about resolution passes.
type MetricsPort interface {
	UnitResolved(unit types.BuildUnit, generated bool)
	ToolInvoked(tool string, failed bool)
	CacheChecked(key string, status types.CacheStatus)
	Flush() error
}
