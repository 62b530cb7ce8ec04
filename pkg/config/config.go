// Package config builds, loads and validates scenario configurations.
package config

import (
	"slices"

	"github.com/aretw0/crapsim/pkg/domain"
)

// Default returns the scenario used when nothing is specified: a 5-unit
// table with 1-2-3 odds, a 300-unit bankroll and 1000 trials.
func Default() domain.Scenario {
	return domain.Scenario{
		MinBet:          5,
		OddsMultiple:    3,
		InitialBankroll: 300,
		Trials:          1000,
		MaxComeBets:     2,
		OddsSchedule:    domain.ScheduleLadder,
	}
}

var schedules = []string{"", domain.ScheduleLadder, domain.ScheduleFlat}

// Validate rejects scenarios no trial can be run with.
// The returned error is an *AggregateError listing every problem.
func Validate(sc domain.Scenario) error {
	var errs []error
	add := func(field, reason string, value any) {
		errs = append(errs, &ValidationError{Field: field, Reason: reason, Value: value})
	}

	if sc.MinBet <= 0 {
		add("min_bet", "must be positive", sc.MinBet)
	}
	if sc.InitialBankroll < sc.MinBet || sc.InitialBankroll <= 0 {
		add("initial_bankroll", "must cover the minimum bet", sc.InitialBankroll)
	}
	if sc.Trials <= 0 {
		add("n_trials", "must be positive", sc.Trials)
	}
	if sc.OddsMultiple <= 0 {
		add("odds_multiple", "must be positive", sc.OddsMultiple)
	}
	if sc.MaxComeBets < 0 {
		add("max_come_bets", "must not be negative", sc.MaxComeBets)
	}
	if !slices.Contains(schedules, sc.OddsSchedule) {
		add("odds_schedule", "must be ladder or flat", sc.OddsSchedule)
	}
	if sc.GrowthStep < 0 {
		add("growth_step", "must not be negative", sc.GrowthStep)
	}
	if sc.MaxRolls < 0 {
		add("max_rolls", "must not be negative", sc.MaxRolls)
	}
	if sc.Workers < 0 {
		add("workers", "must not be negative", sc.Workers)
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}
