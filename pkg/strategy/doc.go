/*
Package strategy implements the single betting strategy the simulator plays:
a pass-line bet on every come-out, come bets while a point is on, and the
largest odds the table and bankroll allow behind every established bet.

# Decision procedure

Before each roll Plan returns, in order:

 1. A line bet of the base size when the table is in come-out and no line bet is active.
 2. A come bet of the base size when a point is on, no come bet is waiting for
    its own point and fewer than MaxComeBets come bets are established.
 3. Odds behind every established bet that has none. Come-bet odds wait for the
    main point when OddsOffWithoutPoint is set.

Every amount is rounded down to a valid increment and never exceeds the
bankroll left after the placements before it.

# Bet growth

With GrowBets the base size comes from a Sizer. The default is Milestones:
one MinBet unit per Step of bankroll, never below one unit. Any Sizer must be
monotonic non-decreasing in bankroll; Plan rounds its output down to a
multiple of MinBet.

With GrowOdds the odds unit is the larger of the parent bet and the Sizer's
size instead of MinBet. Odds are always capped at OddsMultiple times the
parent bet, which is the table maximum.
*/
package strategy
