package integration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gen-machineconf/internal/adapters"
	"gen-machineconf/tests/testutil"
)

// TestGoldenGenerate runs a full generation against the stub lopper and
// compares the outputs against committed golden files, with the temporary
// output directory replaced by ${OUT}. If the golden files do not exist yet
// (first run), they are written so they can be committed.
//
// To update golden files after an intentional change, delete the
// testdata/golden/ directory and re-run the test.
func TestGoldenGenerate(t *testing.T) {
	root := testutil.RepoRoot(t)
	goldenDir := filepath.Join(root, "tests", "integration", "testdata", "golden")

	fx := newGenerateFixture(t, "versal.cpus", "CONFIG_SOC_FAMILY=\"versal\"\n")
	_, err := fx.service.Generate(t.Context(), fx.request)
	require.NoError(t, err)

	out := fx.request.OutputDir
	goldenFiles := map[string]string{
		"versal.deps":           filepath.Join(out, adapters.DependencyMapFile),
		"versal.yaml":           filepath.Join(out, adapters.ReportFile),
		"microblaze-0-pmc.conf": filepath.Join(out, "multiconfig", "microblaze-0-pmc.conf"),
		"microblaze-0-psm.conf": filepath.Join(out, "multiconfig", "microblaze-0-psm.conf"),
	}

	for name, actualPath := range goldenFiles {
		t.Run(name, func(t *testing.T) {
			raw, err := os.ReadFile(actualPath)
			require.NoError(t, err)
			actual := strings.ReplaceAll(string(raw), out, "${OUT}")

			goldenPath := filepath.Join(goldenDir, name)
			if _, statErr := os.Stat(goldenPath); os.IsNotExist(statErr) {
				require.NoError(t, os.MkdirAll(goldenDir, 0o755))
				require.NoError(t, os.WriteFile(goldenPath, []byte(actual), 0o644))
				t.Logf("golden file written: %s (commit it)", goldenPath)
				return
			}

			expected, err := os.ReadFile(goldenPath)
			require.NoError(t, err)
			assert.Equal(t, string(expected), actual, "output %s differs from golden file", name)
		})
	}
}
