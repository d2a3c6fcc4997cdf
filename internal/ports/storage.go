// Package ports defines the interfaces (contracts) that adapters must implement.
// These are the boundaries of the hexagonal architecture. Domain logic depends
// only on these interfaces, never on concrete implementations.
package ports

import (
	"errors"

	"github.com/corey/medreport/internal/domain/report"
)

// ErrReportNotFound is returned by ReportStore.Get for an unknown id.
var ErrReportNotFound = errors.New("report not found")

// ReportStore persists generated reports on the local machine.
// The backing store (bbolt) serializes writes; concurrent reads are safe.
//
// Crash safety: Save must be transactional. A crash mid-write must not
// corrupt previously saved reports.
type ReportStore interface {
	// Save inserts or replaces a report keyed by its ID.
	Save(r *report.Report) error

	// Get retrieves one report. Returns ErrReportNotFound if absent.
	Get(id string) (*report.Report, error)

	// List returns every saved report, newest first.
	List() ([]*report.Report, error)

	// Delete removes a report.
	// Idempotent: deleting a nonexistent report is not an error.
	Delete(id string) error
}
