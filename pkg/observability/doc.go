/*
Package observability exposes simulation activity as Prometheus metrics.

Metrics are collected through domain.Hooks, so any Simulator, runner or
engine can be instrumented without knowing about Prometheus:

	m := observability.NewMetrics(prometheus.NewRegistry())
	sim := crapsim.New(crapsim.WithHooks(m.Hooks()))
*/
package observability
