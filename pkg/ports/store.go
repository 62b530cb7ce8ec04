package ports

import (
	"context"

	"github.com/aretw0/crapsim/pkg/domain"
)

// ReportStore defines the interface for persisting finished scenarios.
type ReportStore interface {
	// Save persists a report under report.ID, replacing any previous copy.
	Save(ctx context.Context, report *domain.Report) error

	// Load retrieves a report.
	// Returns domain.ErrReportNotFound if the report does not exist.
	Load(ctx context.Context, id string) (*domain.Report, error)

	// Delete removes a report. Deleting a missing report is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of stored reports.
	List(ctx context.Context) ([]string, error)
}
