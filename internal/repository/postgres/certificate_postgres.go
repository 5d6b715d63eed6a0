package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/akashgouda-01/dept-changes/internal/model"
	"github.com/akashgouda-01/dept-changes/internal/repository"
)

const certificateColumns = `id, drive_link, reg_no, section, student_name, uploaded_by, uploaded_at, ml_status, ml_score, faculty_status, archived`

// CertificatePostgres is a PostgreSQL implementation of repository.CertificateRepository.
// It uses database/sql with parameterized queries and contains no business logic.
// Transition writes are single conditional UPDATE statements so two concurrent
// callers racing on the same row produce exactly one applied change.
type CertificatePostgres struct {
	db *sql.DB
}

// NewCertificatePostgres creates a new CertificatePostgres repository.
func NewCertificatePostgres(db *sql.DB) *CertificatePostgres {
	return &CertificatePostgres{db: db}
}

var _ repository.CertificateRepository = (*CertificatePostgres)(nil)

// CreateBatch inserts certificate rows one statement at a time inside a
// transaction, preserving caller order for identifier assignment.
func (r *CertificatePostgres) CreateBatch(ctx context.Context, certs []model.Certificate) error {
	if len(certs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	const q = `
		INSERT INTO certificates (id, drive_link, reg_no, section, student_name, uploaded_by, uploaded_at, ml_status, ml_score, faculty_status, archived)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	for _, c := range certs {
		if _, err := tx.ExecContext(ctx, q,
			c.ID,
			c.DriveLink,
			c.RegisterNumber,
			c.Section,
			c.StudentName,
			c.UploadedBy,
			c.UploadedAt,
			c.MLStatus,
			c.MLScore,
			c.FacultyStatus,
			c.Archived,
		); err != nil {
			return fmt.Errorf("insert certificate %s: %w", c.ID, err)
		}
	}

	return tx.Commit()
}

// FindByID fetches a single certificate by its ID.
func (r *CertificatePostgres) FindByID(ctx context.Context, id string) (*model.Certificate, error) {
	q := `SELECT ` + certificateColumns + ` FROM certificates WHERE id = $1`
	row := r.db.QueryRowContext(ctx, q, id)
	c, err := scanCertificate(row)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// List returns certificates matching the filter, newest-first.
func (r *CertificatePostgres) List(ctx context.Context, f repository.CertificateFilter) ([]model.Certificate, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Section != "" {
		conds = append(conds, "section = "+arg(f.Section))
	}
	if f.RegisterNumber != "" {
		conds = append(conds, "reg_no = "+arg(f.RegisterNumber))
	}
	if len(f.RegisterNumbers) > 0 {
		conds = append(conds, "reg_no = ANY("+arg(f.RegisterNumbers)+")")
	}
	if f.FacultyStatus != "" {
		conds = append(conds, "faculty_status = "+arg(f.FacultyStatus))
	}
	if !f.IncludeArchived {
		conds = append(conds, "archived = FALSE")
	}

	q := `SELECT ` + certificateColumns + ` FROM certificates`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY uploaded_at DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCertificates(rows)
}

// ListPendingReview returns the faculty review queue, newest-first.
func (r *CertificatePostgres) ListPendingReview(ctx context.Context, limit int) ([]model.Certificate, error) {
	q := `
		SELECT ` + certificateColumns + `
		FROM certificates
		WHERE ml_status = 'VERIFIED' AND faculty_status = 'PENDING' AND archived = FALSE
		ORDER BY uploaded_at DESC, id DESC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCertificates(rows)
}

// ApplyMLResult commits a verifier outcome iff the row is still PENDING.
func (r *CertificatePostgres) ApplyMLResult(ctx context.Context, id string, status model.MLStatus, score float64) (bool, error) {
	const q = `
		UPDATE certificates
		SET ml_status = $2, ml_score = $3
		WHERE id = $1 AND ml_status = 'PENDING'
	`
	res, err := r.db.ExecContext(ctx, q, id, status, score)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// ApplyFacultyDecision commits a review decision iff the row is in the queue state.
func (r *CertificatePostgres) ApplyFacultyDecision(ctx context.Context, id string, status model.FacultyStatus) (bool, error) {
	const q = `
		UPDATE certificates
		SET faculty_status = $2
		WHERE id = $1 AND ml_status = 'VERIFIED' AND faculty_status = 'PENDING'
	`
	res, err := r.db.ExecContext(ctx, q, id, status)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Archive flags an unarchived terminal row.
func (r *CertificatePostgres) Archive(ctx context.Context, id string) (bool, error) {
	const q = `
		UPDATE certificates
		SET archived = TRUE
		WHERE id = $1
		  AND archived = FALSE
		  AND (ml_status = 'DUPLICATE' OR faculty_status <> 'PENDING')
	`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCertificate(row rowScanner) (*model.Certificate, error) {
	var c model.Certificate
	if err := row.Scan(
		&c.ID,
		&c.DriveLink,
		&c.RegisterNumber,
		&c.Section,
		&c.StudentName,
		&c.UploadedBy,
		&c.UploadedAt,
		&c.MLStatus,
		&c.MLScore,
		&c.FacultyStatus,
		&c.Archived,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

func collectCertificates(rows *sql.Rows) ([]model.Certificate, error) {
	items := make([]model.Certificate, 0)
	for rows.Next() {
		c, err := scanCertificate(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
