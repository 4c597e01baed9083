package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "leetcrack.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_EmptyPathIsDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
budget: 3
parallel: 2
expand_workers: 3
workers: 4
accept_timeout: 30s
substitutions:
  t:
    - to: "7"
      cost: 1
    - to: "+"
      cost: 2
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.EqualValues(t, 3, cfg.Budget)
	assert.Equal(t, 2, cfg.Parallel)
	assert.Equal(t, 3, cfg.ExpandWorkers)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 30*time.Second, cfg.AcceptTimeout)
	assert.Len(t, cfg.Substitutions["t"], 2)
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "budget: 2\n"))
	require.NoError(t, err)

	assert.EqualValues(t, 2, cfg.Budget)
	assert.Equal(t, Default().Workers, cfg.Workers)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero budget", "budget: 0\n"},
		{"zero workers", "workers: 0\n"},
		{"negative parallel", "parallel: -1\n"},
		{"negative expand workers", "expand_workers: -2\n"},
		{"long key", "substitutions:\n  ab:\n    - to: x\n      cost: 1\n"},
		{"long replacement", "substitutions:\n  a:\n    - to: xy\n      cost: 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}

	_, err := Load(writeConfig(t, "budget: [\n"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParallelism(t *testing.T) {
	cfg := Default()
	assert.Zero(t, cfg.Parallel)
	assert.Equal(t, runtime.NumCPU(), cfg.Parallelism())

	cfg.Parallel = 3
	assert.Equal(t, 3, cfg.Parallelism())
}

func TestTable_AppliesSubstitutions(t *testing.T) {
	cfg := Default()
	cfg.Substitutions = map[string][]Substitution{"t": {{To: "7", Cost: 1}}}

	out, err := cfg.Table().Variants("at", 2)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"at", "At", "4t", "@t", "aT", "a7"}, out)
}

func TestTable_OverrideRepeatingUpperCase(t *testing.T) {
	cfg := Default()
	cfg.Substitutions = map[string][]Substitution{"x": {{To: "X", Cost: 1}, {To: "x", Cost: 1}}}

	out, err := cfg.Table().Variants("x", 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"x", "X"}, out)
}
