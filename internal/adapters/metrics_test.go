package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gen-machineconf/internal/types"
)

func TestMetricsAdapterCounts(t *testing.T) {
	metrics := NewMetricsAdapter("")

	metrics.UnitResolved(types.BuildUnit{Stack: types.StackBaremetal, Flavor: types.UnitFlavorBootFirmware}, true)
	metrics.UnitResolved(types.BuildUnit{Stack: types.StackBaremetal, Flavor: types.UnitFlavorBootFirmware}, true)
	metrics.ToolInvoked("lopper", false)
	metrics.ToolInvoked("lopper", true)
	metrics.CacheChecked(types.CacheKeyHWFile, types.CacheUnchanged)

	assert.InDelta(t, 2, testutil.ToFloat64(metrics.unitsResolved.WithLabelValues("baremetal", "boot-firmware", "true")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.toolInvocations.WithLabelValues("lopper", "failed")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.cacheChecks.WithLabelValues("HW_FILE", "unchanged")), 0)
	assert.NoError(t, metrics.Flush())
}

func TestMetricsAdapterFlushWritesTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gen_machineconf.prom")
	metrics := NewMetricsAdapter(path)
	metrics.ToolInvoked("dtc", false)

	require.NoError(t, metrics.Flush())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `gen_machineconf_tool_invocations_total{result="ok",tool="dtc"} 1`)
}
