package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/crapsim"
	"github.com/aretw0/crapsim/pkg/adapters/memory"
	"github.com/aretw0/crapsim/pkg/config"
	"github.com/aretw0/crapsim/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(opts ...Option) *Server {
	sim := crapsim.New(crapsim.WithStore(memory.NewStore()))
	return NewServer(sim, opts...)
}

func TestRegisteredTools(t *testing.T) {
	s := newTestServer()
	resp := s.MCPServer().HandleMessage(context.Background(),
		json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	for _, name := range []string{"run_scenario", "get_report", "list_reports"} {
		assert.Contains(t, string(data), `"name":"`+name+`"`)
	}
}

func TestRunScenario(t *testing.T) {
	s := newTestServer(WithMaxTrials(200))
	ctx := context.Background()

	summary, err := s.handleRunScenario(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"label":            "agent",
		"n_trials":         float64(40),
		"initial_bankroll": float64(120),
		"grow_bets":        true,
		"rng_seed":         float64(2024),
		"ignored":          "not a scenario key",
	})
	require.NoError(t, err)
	assert.Equal(t, "agent", summary.Label)
	assert.Equal(t, 40, summary.Trials)
	assert.Equal(t, uint64(2024), summary.Seed)
	assert.True(t, summary.Scenario.GrowBets)

	got, err := s.handleGetReport(ctx, mcp.CallToolRequest{}, map[string]interface{}{"id": summary.ID})
	require.NoError(t, err)
	assert.Equal(t, summary.Quantiles, got.Quantiles)

	list, err := s.handleListReports(ctx, mcp.CallToolRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{summary.ID}, list.Reports)
}

func TestRunScenario_Rejected(t *testing.T) {
	s := newTestServer(WithMaxTrials(10))
	ctx := context.Background()

	_, err := s.handleRunScenario(ctx, mcp.CallToolRequest{}, map[string]interface{}{"n_trials": float64(11)})
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = s.handleRunScenario(ctx, mcp.CallToolRequest{}, map[string]interface{}{"min_bet": float64(0), "n_trials": float64(1)})
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestGetReport_Missing(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()

	_, err := s.handleGetReport(ctx, mcp.CallToolRequest{}, map[string]interface{}{"id": "missing"})
	assert.ErrorIs(t, err, domain.ErrReportNotFound)

	_, err = s.handleGetReport(ctx, mcp.CallToolRequest{}, map[string]interface{}{})
	assert.Error(t, err)
}

func TestRunScenario_Seed(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()
	run := func(seed any) (domain.ReportSummary, error) {
		return s.handleRunScenario(ctx, mcp.CallToolRequest{}, map[string]interface{}{
			"n_trials": float64(3),
			"rng_seed": seed,
		})
	}

	t.Run("String keeps every bit", func(t *testing.T) {
		summary, err := run("18446744073709551615")
		require.NoError(t, err)
		assert.Equal(t, uint64(18446744073709551615), summary.Seed)

		summary, err = run("9007199254740993")
		require.NoError(t, err)
		assert.Equal(t, uint64(9007199254740993), summary.Seed)
	})

	t.Run("Exact numbers are accepted", func(t *testing.T) {
		summary, err := run(float64(1 << 53))
		require.NoError(t, err)
		assert.Equal(t, uint64(1<<53), summary.Seed)
	})

	for name, seed := range map[string]any{
		"negative":        float64(-1),
		"fractional":      1.5,
		"beyond 2^53":     float64(1 << 60),
		"negative string": "-7",
		"overflow":        "18446744073709551616",
		"not a number":    "lucky",
		"wrong type":      true,
	} {
		t.Run("Rejects "+name, func(t *testing.T) {
			_, err := run(seed)
			assert.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}
}
