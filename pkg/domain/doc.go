/*
Package domain contains the core models of the craps simulator.

It defines the table vocabulary (Point, Roll), the wagers a player holds
(Bet, OddsBet), the per-trial and per-scenario outcomes (TrialResult,
QuantileReport, Report) and the error taxonomy shared by every layer.
It holds no dice, no I/O and no persistence.

# Key Entities

  - Point: the number the shooter must repeat, or off.
  - Bet: a pass-line or come wager carrying its own point and optional odds.
  - TrialResult: roll count and peak bankroll of one session played to ruin.
  - Report: a finished scenario (configuration, trials, quantiles).
*/
package domain
