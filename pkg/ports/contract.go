package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/crapsim/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractReport(id string) *domain.Report {
	seed := uint64(7)
	return &domain.Report{
		ID:    id,
		Label: "contract",
		Scenario: domain.Scenario{
			MinBet: 5, OddsMultiple: 3, InitialBankroll: 200, Trials: 2,
			MaxComeBets: 2, OddsSchedule: domain.ScheduleLadder, Seed: &seed,
		},
		Seed: seed,
		Trials: []domain.TrialResult{
			{Trial: 0, Rolls: 41, MaxBankroll: 260, FinalBankroll: 3},
			{Trial: 1, Rolls: 9, MaxBankroll: 200, FinalBankroll: 0},
		},
		Quantiles: domain.QuantileReport{
			Method:      "nearest",
			Fractions:   []float64{0, 0.5, 1},
			Rolls:       []float64{9, 41, 41},
			MaxBankroll: []float64{200, 260, 260},
		},
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Elapsed:   1500 * time.Millisecond,
	}
}

// RunReportStoreContract runs a suite of tests to verify that a ReportStore
// implementation adheres to the defined interface contract.
func RunReportStoreContract(t *testing.T, store ReportStore) {
	ctx := context.Background()
	reportID := "contract-test-report-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		report := contractReport(reportID)
		require.NoError(t, store.Save(ctx, report), "Save should not return error")

		loaded, err := store.Load(ctx, reportID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, report.Label, loaded.Label)
		assert.Equal(t, report.Trials, loaded.Trials)
		assert.Equal(t, report.Quantiles, loaded.Quantiles)
		assert.Equal(t, report.Scenario, loaded.Scenario)
		assert.True(t, report.CreatedAt.Equal(loaded.CreatedAt))
		assert.Equal(t, report.Elapsed, loaded.Elapsed)
	})

	t.Run("Loaded copy is isolated", func(t *testing.T) {
		loaded, err := store.Load(ctx, reportID)
		require.NoError(t, err)
		loaded.Trials[0].Rolls = -1

		again, err := store.Load(ctx, reportID)
		require.NoError(t, err)
		assert.Equal(t, 41, again.Trials[0].Rolls)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+reportID)
		assert.ErrorIs(t, err, domain.ErrReportNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, contractReport(reportID)))
		require.NoError(t, store.Delete(ctx, reportID), "Delete should not return error")

		_, err := store.Load(ctx, reportID)
		assert.ErrorIs(t, err, domain.ErrReportNotFound, "Load after Delete should return ErrReportNotFound")
		assert.NoError(t, store.Delete(ctx, reportID), "Delete is idempotent")
	})

	t.Run("List", func(t *testing.T) {
		id1 := reportID + "-1"
		id2 := reportID + "-2"
		require.NoError(t, store.Save(ctx, contractReport(id1)))
		require.NoError(t, store.Save(ctx, contractReport(id2)))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
