package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/crapsim/internal/logging"
	"github.com/aretw0/crapsim/internal/presentation/tui"
	"github.com/aretw0/crapsim/pkg/adapters/file"
	"github.com/aretw0/crapsim/pkg/adapters/memory"
	"github.com/aretw0/crapsim/pkg/adapters/redis"
	"github.com/aretw0/crapsim/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const batch = `
defaults:
  n_trials: 30
  initial_bankroll: 100
  rng_seed: 11
scenarios:
  - label: flat
  - label: grow
    grow_bets: true
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseEnv(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		s, err := ParseEnv()
		require.NoError(t, err)
		assert.Equal(t, ":8080", s.Addr)
		assert.Equal(t, 24*time.Hour, s.ReportTTL)
		assert.Equal(t, 100000, s.MaxTrials)
	})

	t.Run("Overrides", func(t *testing.T) {
		t.Setenv("CRAPSIM_ADDR", ":9000")
		t.Setenv("CRAPSIM_REPORT_TTL", "90m")
		t.Setenv("CRAPSIM_MAX_TRIALS", "50")
		s, err := ParseEnv()
		require.NoError(t, err)
		assert.Equal(t, ":9000", s.Addr)
		assert.Equal(t, 90*time.Minute, s.ReportTTL)
		assert.Equal(t, 50, s.MaxTrials)
	})

	t.Run("Invalid", func(t *testing.T) {
		t.Setenv("CRAPSIM_MAX_TRIALS", "lots")
		_, err := ParseEnv()
		assert.Error(t, err)
	})
}

func TestLoadScenarios(t *testing.T) {
	t.Run("Default scenario", func(t *testing.T) {
		scs, err := LoadScenarios(context.Background(), "", nil)
		require.NoError(t, err)
		require.Len(t, scs, 1)
		assert.Equal(t, "default", scs[0].Label)
		assert.Equal(t, config.Default().MinBet, scs[0].MinBet)
	})

	t.Run("Overrides apply to every scenario", func(t *testing.T) {
		path := writeFile(t, "batch.yaml", batch)
		scs, err := LoadScenarios(context.Background(), path, map[string]any{"min_bet": 10, "odds_multiple": "5"})
		require.NoError(t, err)
		require.Len(t, scs, 2)
		for _, sc := range scs {
			assert.Equal(t, int64(10), sc.MinBet)
			assert.Equal(t, 5, sc.OddsMultiple)
		}
		assert.True(t, scs[1].GrowBets)
	})

	t.Run("Directory of scenario documents", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "fives.yaml"), []byte("min_bet: 5\n"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "tens.json"), []byte(`{"min_bet": 10}`), 0o644))

		scs, err := LoadScenarios(context.Background(), dir, map[string]any{"n_trials": "20"})
		require.NoError(t, err)
		require.Len(t, scs, 2)
		assert.Equal(t, "fives", scs[0].Label)
		assert.Equal(t, "tens", scs[1].Label)
		assert.Equal(t, int64(10), scs[1].MinBet)
		for _, sc := range scs {
			assert.Equal(t, 20, sc.Trials)
		}
	})

	t.Run("Missing path", func(t *testing.T) {
		_, err := LoadScenarios(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"), nil)
		assert.Error(t, err)
	})

	t.Run("Invalid override", func(t *testing.T) {
		_, err := LoadScenarios(context.Background(), "", map[string]any{"initial_bankroll": 1})
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
	})
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "trials.csv")
	qPath := filepath.Join(dir, "quantiles.csv")
	var out bytes.Buffer

	opts := RunOptions{
		File:        writeFile(t, "batch.yaml", batch),
		CSV:         csvPath,
		QuantileCSV: qPath,
		Workers:     2,
		Quiet:       true,
		Store:       StoreOptions{ReportDir: filepath.Join(dir, "reports")},
		Output:      &out,
		Renderer:    tui.Plain,
	}
	reports, err := Run(context.Background(), opts, logging.NewNop())
	require.NoError(t, err)
	require.Len(t, reports, 2)

	assert.Contains(t, out.String(), "## flat")
	assert.Contains(t, out.String(), "## grow")
	assert.Contains(t, out.String(), "| 50% |")

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 1+30+30)

	data, err = os.ReadFile(qPath)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 1+2*2*11)

	t.Run("Reports are kept on disk", func(t *testing.T) {
		var shown bytes.Buffer
		show := opts
		show.Output = &shown
		require.NoError(t, ShowReport(context.Background(), reports[0].ID, show, logging.NewNop()))
		assert.Contains(t, shown.String(), "## flat")

		var listed bytes.Buffer
		show.Output = &listed
		require.NoError(t, ListReports(context.Background(), show, logging.NewNop()))
		assert.Contains(t, listed.String(), reports[1].ID)
	})
}

func TestCompare(t *testing.T) {
	var out bytes.Buffer
	opts := RunOptions{
		File:     writeFile(t, "batch.yaml", batch),
		Output:   &out,
		Renderer: tui.Plain,
	}
	reports, err := Compare(context.Background(), opts, logging.NewNop(), 0.5, 0.9)
	require.NoError(t, err)
	require.Len(t, reports, 2)

	text := out.String()
	assert.Contains(t, text, `>>> Playing "flat": 30 trials...`)
	assert.Contains(t, text, "## Comparison at 50%")
	assert.Contains(t, text, "## Comparison at 90%")
	assert.Contains(t, text, "| grow |")
}

func TestCreateStore(t *testing.T) {
	t.Run("Memory", func(t *testing.T) {
		store, locker, closeFn, err := createStore(StoreOptions{})
		require.NoError(t, err)
		assert.IsType(t, &memory.Store{}, store)
		assert.Nil(t, locker)
		assert.NoError(t, closeFn())
	})

	t.Run("File", func(t *testing.T) {
		store, _, _, err := createStore(StoreOptions{ReportDir: t.TempDir()})
		require.NoError(t, err)
		assert.IsType(t, &file.Store{}, store)
	})

	t.Run("Redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		store, locker, closeFn, err := createStore(StoreOptions{RedisURL: "redis://" + mr.Addr()})
		require.NoError(t, err)
		assert.IsType(t, &redis.Store{}, store)
		assert.IsType(t, &redis.Locker{}, locker)
		assert.NoError(t, closeFn())
	})

	t.Run("Bad redis URL", func(t *testing.T) {
		_, _, _, err := createStore(StoreOptions{RedisURL: "::"})
		assert.Error(t, err)
	})
}
