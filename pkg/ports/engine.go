package ports

import (
	"context"

	"github.com/aretw0/crapsim/pkg/domain"
)

// Simulator runs scenarios and serves the reports it kept.
type Simulator interface {
	// Simulate runs a scenario to completion and returns its report.
	Simulate(ctx context.Context, sc domain.Scenario) (*domain.Report, error)

	// Report loads a finished report.
	// Returns domain.ErrReportNotFound if the report does not exist.
	Report(ctx context.Context, id string) (*domain.Report, error)

	// Reports lists the IDs of finished reports.
	Reports(ctx context.Context) ([]string, error)
}
