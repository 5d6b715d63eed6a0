package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akashgouda-01/dept-changes/internal/excel"
	"github.com/akashgouda-01/dept-changes/internal/model"
	"github.com/akashgouda-01/dept-changes/internal/repository"
	"github.com/akashgouda-01/dept-changes/internal/stats"
	"github.com/akashgouda-01/dept-changes/internal/storage"
)

// XLSXContentType is the MIME type for the export streams.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// HodService answers department-head lookups and produces spreadsheet exports.
type HodService interface {
	// GetStudentStats joins the faculty roster with per-student certificate
	// aggregates. Unknown faculty yields ErrFacultyNotFound; a faculty with no
	// mentees yields an empty slice.
	GetStudentStats(ctx context.Context, facultyID string) ([]stats.StudentStat, error)

	// ListStudentCertificates returns every certificate for the student,
	// archived included, for audit visibility.
	ListStudentCertificates(ctx context.Context, regNo string) ([]model.Certificate, error)

	// ExportSection and ExportStudent serialize the same filtered lists used by
	// the lookups above into an XLSX byte stream with a filename hint.
	ExportSection(ctx context.Context, section string) (string, []byte, error)
	ExportStudent(ctx context.Context, regNo string) (string, []byte, error)
}

type hodService struct {
	certs   repository.CertificateRepository
	roster  repository.RosterRepository
	archive storage.Archive // nil disables export retention
}

// NewHodService constructs a new HodService. archive may be nil when the
// export audit archive is not configured.
func NewHodService(certs repository.CertificateRepository, roster repository.RosterRepository, archive storage.Archive) HodService {
	return &hodService{certs: certs, roster: roster, archive: archive}
}

func (s *hodService) GetStudentStats(ctx context.Context, facultyID string) ([]stats.StudentStat, error) {
	facultyID = strings.TrimSpace(facultyID)
	if facultyID == "" {
		return nil, &ValidationError{Message: "faculty_id is required"}
	}

	if _, err := s.roster.FindFaculty(ctx, facultyID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFacultyNotFound
		}
		return nil, storeError("find faculty", err)
	}

	students, err := s.roster.ListStudentsByFaculty(ctx, facultyID)
	if err != nil {
		return nil, storeError("list students", err)
	}
	if len(students) == 0 {
		return []stats.StudentStat{}, nil
	}

	regNos := make([]string, 0, len(students))
	for _, st := range students {
		regNos = append(regNos, st.RegisterNumber)
	}
	certs, err := s.certs.List(ctx, repository.CertificateFilter{
		RegisterNumbers: regNos,
		IncludeArchived: true,
	})
	if err != nil {
		return nil, storeError("list certificates", err)
	}

	return stats.PerStudent(students, certs), nil
}

func (s *hodService) ListStudentCertificates(ctx context.Context, regNo string) ([]model.Certificate, error) {
	regNo = strings.TrimSpace(regNo)
	if regNo == "" {
		return nil, &ValidationError{Message: "reg_no is required"}
	}
	certs, err := s.certs.List(ctx, repository.CertificateFilter{
		RegisterNumber:  regNo,
		IncludeArchived: true,
	})
	if err != nil {
		return nil, storeError("list certificates", err)
	}
	return certs, nil
}

func (s *hodService) ExportSection(ctx context.Context, section string) (string, []byte, error) {
	section = strings.TrimSpace(section)
	if section == "" {
		return "", nil, &ValidationError{Message: "section is required"}
	}
	certs, err := s.certs.List(ctx, repository.CertificateFilter{
		Section:         section,
		IncludeArchived: true,
	})
	if err != nil {
		return "", nil, storeError("list certificates", err)
	}
	filename := fmt.Sprintf("certificates_section_%s_%d.xlsx", sanitizeForFilename(section), time.Now().Unix())
	return s.buildExport(ctx, filename, certs, "Section-"+section)
}

func (s *hodService) ExportStudent(ctx context.Context, regNo string) (string, []byte, error) {
	certs, err := s.ListStudentCertificates(ctx, regNo)
	if err != nil {
		return "", nil, err
	}
	regNo = strings.TrimSpace(regNo)
	filename := fmt.Sprintf("certificates_student_%s_%d.xlsx", sanitizeForFilename(regNo), time.Now().Unix())
	return s.buildExport(ctx, filename, certs, "Student-"+regNo)
}

// buildExport renders the workbook and retains a copy in the audit archive.
// Retention is best-effort: the caller still gets the export when the archive
// write fails, the store remains the system of record either way.
func (s *hodService) buildExport(ctx context.Context, filename string, certs []model.Certificate, sheet string) (string, []byte, error) {
	content, err := excel.BuildCertificatesWorkbook(certs, sheet)
	if err != nil {
		return "", nil, fmt.Errorf("build workbook: %w", err)
	}

	if s.archive != nil {
		key := "exports/" + filename
		if _, err := s.archive.Put(ctx, key, bytes.NewReader(content), int64(len(content)), storage.PutOptions{
			ContentType: XLSXContentType,
			Metadata:    map[string]string{"rows": fmt.Sprintf("%d", len(certs))},
		}); err != nil {
			logEvent("error", "export_archive_failed", map[string]any{"key": key, "error": err.Error()})
		}
	}

	return filename, content, nil
}

// sanitizeForFilename is a minimal helper to keep filenames readable.
func sanitizeForFilename(val string) string {
	if val == "" {
		return "all"
	}
	return strings.ReplaceAll(val, " ", "_")
}
