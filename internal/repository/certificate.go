package repository

import (
	"context"

	"github.com/akashgouda-01/dept-changes/internal/model"
)

// CertificateRepository defines data access for certificates using SQL queries only.
// No business logic here — strictly persistence operations. Transition writes are
// conditional updates keyed on the expected prior state; they report whether the
// row was changed so the caller can re-validate on contention.
type CertificateRepository interface {
	// CreateBatch inserts the given records. IDs and timestamps are assigned by the caller.
	CreateBatch(ctx context.Context, certs []model.Certificate) error

	// FindByID returns a certificate by its ID, or sql.ErrNoRows if unknown.
	FindByID(ctx context.Context, id string) (*model.Certificate, error)

	// List returns certificates matching the filter, newest-first.
	List(ctx context.Context, f CertificateFilter) ([]model.Certificate, error)

	// ListPendingReview returns unarchived certificates with ml_status VERIFIED and
	// faculty_status PENDING, newest-first, capped at limit.
	ListPendingReview(ctx context.Context, limit int) ([]model.Certificate, error)

	// ApplyMLResult sets ml_status and ml_score iff the row is still PENDING.
	// Returns false when no row matched the precondition.
	ApplyMLResult(ctx context.Context, id string, status model.MLStatus, score float64) (bool, error)

	// ApplyFacultyDecision sets faculty_status iff ml_status is VERIFIED and
	// faculty_status is still PENDING. Returns false when no row matched.
	ApplyFacultyDecision(ctx context.Context, id string, status model.FacultyStatus) (bool, error)

	// Archive flags an unarchived terminal certificate. Returns false when no row matched.
	Archive(ctx context.Context, id string) (bool, error)
}

// CertificateFilter narrows List reads. Zero-value fields are ignored.
// Archived rows are excluded unless IncludeArchived is set; aggregation reads
// pass it because archiving only removes a record from active queues.
type CertificateFilter struct {
	Section         string
	RegisterNumber  string
	RegisterNumbers []string
	FacultyStatus   model.FacultyStatus
	IncludeArchived bool
}
