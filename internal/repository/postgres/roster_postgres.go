package postgres

import (
	"context"
	"database/sql"

	"github.com/akashgouda-01/dept-changes/internal/model"
	"github.com/akashgouda-01/dept-changes/internal/repository"
)

// RosterPostgres is a PostgreSQL implementation of repository.RosterRepository.
type RosterPostgres struct {
	db *sql.DB
}

// NewRosterPostgres creates a new RosterPostgres repository.
func NewRosterPostgres(db *sql.DB) *RosterPostgres {
	return &RosterPostgres{db: db}
}

var _ repository.RosterRepository = (*RosterPostgres)(nil)

// FindFaculty fetches a single faculty by ID.
func (r *RosterPostgres) FindFaculty(ctx context.Context, id string) (*model.Faculty, error) {
	const q = `SELECT id, name, email FROM faculties WHERE id = $1`
	var f model.Faculty
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&f.ID, &f.Name, &f.Email); err != nil {
		return nil, err
	}
	return &f, nil
}

// ListStudentsByFaculty returns the mentees of the given faculty ordered by register number.
func (r *RosterPostgres) ListStudentsByFaculty(ctx context.Context, facultyID string) ([]model.Student, error) {
	const q = `
		SELECT reg_no, name, section, faculty_id
		FROM students
		WHERE faculty_id = $1
		ORDER BY reg_no
	`
	rows, err := r.db.QueryContext(ctx, q, facultyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Student, 0)
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(&s.RegisterNumber, &s.Name, &s.Section, &s.FacultyID); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// CountStudents returns the roster headcount.
func (r *RosterPostgres) CountStudents(ctx context.Context) (int, error) {
	const q = `SELECT COUNT(*) FROM students`
	var n int
	if err := r.db.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
