/*
Package crapsim simulates craps sessions played to ruin under one fixed
strategy and reports how long they last and how high the bankroll gets.

# Concept

A trial starts with an initial bankroll and plays a pass-line bet on every
come-out, come bets while a point is on and the maximum odds behind every
established bet, until the bankroll cannot cover the table minimum and
nothing is left on the table. A scenario is a batch of trials under one
configuration; its report holds every trial's roll count and peak bankroll
plus their quantiles.

# Key Features

  - Deterministic: a seeded scenario always produces the same report, no
    matter how many workers play it.
  - Pluggable growth: bet sizes can grow with the bankroll through any
    strategy.Sizer.
  - Explicit failures: bad configuration and broken invariants are errors,
    distinct from a player simply going broke.
  - Persistence: reports can be kept in memory, on disk or in Redis.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/crapsim"
		"github.com/aretw0/crapsim/pkg/config"
	)

	func main() {
		sc := config.Default()
		sc.InitialBankroll = 200
		sc.Trials = 100

		report, err := crapsim.New().Simulate(context.Background(), sc)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(report.Quantiles.ByMetric()["rolls"][0.5])
	}
*/
package crapsim
