package repository

import (
	"context"

	"github.com/akashgouda-01/dept-changes/internal/model"
)

// RosterRepository reads the student/faculty roster. The roster is maintained by
// an external administrative process; this service only consumes it.
type RosterRepository interface {
	// FindFaculty returns a faculty by ID, or sql.ErrNoRows if unknown.
	FindFaculty(ctx context.Context, id string) (*model.Faculty, error)

	// ListStudentsByFaculty returns the students mentored by the given faculty.
	// An existing faculty with no mentees yields an empty slice.
	ListStudentsByFaculty(ctx context.Context, facultyID string) ([]model.Student, error)

	// CountStudents returns the roster headcount used by the dashboard overview.
	CountStudents(ctx context.Context) (int, error)
}
