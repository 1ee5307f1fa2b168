package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadOperatorGraph_PreservesOrderAndEdges(t *testing.T) {
	path := writeTemp(t, "graph.json", `{
		"nodes": [
			{"id": "A", "taxonomy": "ENCODING", "inputs": [{"dims": [1,64]}], "outputs": [{"dims": [1,64]}]},
			{"id": "B", "taxonomy": "FIELD_COMPUTATION", "inputs": [{"dims": [1,64]}], "outputs": [{"dims": [1,64]}]}
		],
		"edges": [{"src": "A", "dst": "B"}]
	}`)

	graph, err := LoadOperatorGraph(path)
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B"}, graph.Order)
	require.Len(t, graph.Edges, 1)
	require.NoError(t, graph.Validate("test"))
}

func TestLoadHardwareConfig_JSON(t *testing.T) {
	path := writeTemp(t, "hw.json", `{
		"accelerator_name": "NEUREX",
		"clock_mhz": 1000,
		"units": [{"id": "u0", "type": "FIELD_COMPUTATION", "throughput": 1e9}]
	}`)

	cfg, err := LoadHardwareConfig(path)
	require.NoError(t, err)
	require.Equal(t, "NEUREX", cfg.AcceleratorName)
	require.Len(t, cfg.Units, 1)
}

func TestLoadHardwareConfig_YAML(t *testing.T) {
	path := writeTemp(t, "hw.yaml", "accelerator_name: ICARUS\nclock_mhz: 500\nunits:\n  - id: u0\n    type: SAMPLING\n    throughput: 2e9\n")

	cfg, err := LoadHardwareConfig(path)
	require.NoError(t, err)
	require.Equal(t, "ICARUS", cfg.AcceleratorName)
	require.Equal(t, 500.0, cfg.ClockMHz)
}

func TestResolve_PrefersExactThenLongestPrefix(t *testing.T) {
	ratio := 0.5
	otherRatio := 0.25
	hints := map[string]HintRecord{
		"sample":   {ActiveSamplesRatio: &otherRatio},
		"sample_0": {ActiveSamplesRatio: &ratio},
	}

	h, ok := Resolve(hints, "sample_0")
	require.True(t, ok)
	require.Equal(t, &ratio, h.ActiveSamplesRatio)

	h, ok = Resolve(hints, "sample_99")
	require.True(t, ok)
	require.Equal(t, &otherRatio, h.ActiveSamplesRatio)

	_, ok = Resolve(hints, "unrelated")
	require.False(t, ok)
}
