package domain

// Odds schedules understood by the strategy.
const (
	ScheduleLadder = "ladder" // 1x on 4/10, 2x on 5/9, 3x on 6/8, capped by OddsMultiple
	ScheduleFlat   = "flat"   // OddsMultiple on every point
)

// Scenario is the full parameter set of a batch of trials.
// Amounts are whole betting units.
type Scenario struct {
	Label               string  `json:"label,omitempty" yaml:"label,omitempty" mapstructure:"label"`
	MinBet              int64   `json:"min_bet" yaml:"min_bet" mapstructure:"min_bet"`
	OddsMultiple        int     `json:"odds_multiple" yaml:"odds_multiple" mapstructure:"odds_multiple"`
	InitialBankroll     int64   `json:"initial_bankroll" yaml:"initial_bankroll" mapstructure:"initial_bankroll"`
	Trials              int     `json:"n_trials" yaml:"n_trials" mapstructure:"n_trials"`
	GrowBets            bool    `json:"grow_bets" yaml:"grow_bets" mapstructure:"grow_bets"`
	GrowOdds            bool    `json:"grow_odds" yaml:"grow_odds" mapstructure:"grow_odds"`
	OddsOffWithoutPoint bool    `json:"odds_off_without_point" yaml:"odds_off_without_point" mapstructure:"odds_off_without_point"`
	Seed                *uint64 `json:"rng_seed,omitempty" yaml:"rng_seed,omitempty" mapstructure:"rng_seed"`
	MaxComeBets         int     `json:"max_come_bets" yaml:"max_come_bets" mapstructure:"max_come_bets"`
	OddsSchedule        string  `json:"odds_schedule" yaml:"odds_schedule" mapstructure:"odds_schedule"`
	GrowthStep          int64   `json:"growth_step,omitempty" yaml:"growth_step,omitempty" mapstructure:"growth_step"`
	MaxRolls            int     `json:"max_rolls,omitempty" yaml:"max_rolls,omitempty" mapstructure:"max_rolls"`
	Workers             int     `json:"workers,omitempty" yaml:"workers,omitempty" mapstructure:"workers"`
}
