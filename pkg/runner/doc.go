/*
Package runner runs scenarios: batches of independent trials played under one
configuration.

Every trial gets its own dice stream derived from the scenario seed, so the
results are reproducible and come back in trial-index order regardless of how
many workers share the batch.

# Usage

	r := runner.NewRunner(
		runner.WithLogger(logger),
		runner.WithWorkers(8),
	)

	res, err := r.Run(ctx, scenario)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(len(res.Trials), res.Seed)
*/
package runner
