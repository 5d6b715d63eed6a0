package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/akashgouda-01/dept-changes/internal/metrics"
	"github.com/akashgouda-01/dept-changes/internal/model"
	"github.com/akashgouda-01/dept-changes/internal/repository"
	"github.com/akashgouda-01/dept-changes/internal/verifier"
)

const (
	maxBatchSize       = 10
	defaultReviewLimit = 50
)

var driveLinkPattern = regexp.MustCompile(`^https://drive\.google\.com/`)

// UploadEntry is one certificate in a batch upload.
type UploadEntry struct {
	DriveLink      string
	RegisterNumber string
	Section        string
	StudentName    string
	UploadedBy     string
	UploadedAt     time.Time
}

// CertificateService owns the certificate lifecycle state machine.
type CertificateService interface {
	// SubmitBatch validates 1-10 entries, creates one SUBMITTED record per entry
	// and dispatches each into the ML pipeline independently. Returns the created
	// identifiers in entry order.
	SubmitBatch(ctx context.Context, entries []UploadEntry) ([]string, error)

	// ApplyMLResult commits a verifier outcome. Retries with identical arguments
	// are no-op successes; a different outcome for an already-transitioned
	// certificate fails with ErrConflictingResult.
	ApplyMLResult(ctx context.Context, id string, status model.MLStatus, score float64) error

	// SubmitReview records the terminal faculty judgment. Only valid from ML_VERIFIED.
	SubmitReview(ctx context.Context, id string, isLegit bool) error

	// Archive excludes a terminal certificate from active queues. No-op when
	// already archived; rejected from non-terminal states.
	Archive(ctx context.Context, id string) error

	// PendingReview returns the faculty queue, newest-first, capped at limit
	// (default 50 when limit <= 0).
	PendingReview(ctx context.Context, limit int) ([]model.Certificate, error)

	// Verify runs the ML check synchronously for a certificate still SUBMITTED.
	// This is the operator-triggered re-check path for stuck records.
	Verify(ctx context.Context, id string) error
}

// certificateService is a concrete implementation of CertificateService.
type certificateService struct {
	repo     repository.CertificateRepository
	mlv      verifier.Verifier
	sections map[string]struct{}

	// runAsync dispatches post-submit verification; replaced in tests to run inline.
	runAsync func(f func())
}

// NewCertificateService constructs a new CertificateService. knownSections is
// the closed set of valid section names accepted at upload.
func NewCertificateService(repo repository.CertificateRepository, mlv verifier.Verifier, knownSections []string) CertificateService {
	sections := make(map[string]struct{}, len(knownSections))
	for _, s := range knownSections {
		sections[s] = struct{}{}
	}
	return &certificateService{
		repo:     repo,
		mlv:      mlv,
		sections: sections,
		runAsync: func(f func()) { go f() },
	}
}

func (s *certificateService) SubmitBatch(ctx context.Context, entries []UploadEntry) ([]string, error) {
	if len(entries) == 0 {
		return nil, &ValidationError{Message: "certificates are required"}
	}
	if len(entries) > maxBatchSize {
		return nil, &ValidationError{Message: "cannot upload more than 10 certificates in one request"}
	}

	var entryErrs []EntryError
	for i, e := range entries {
		entryErrs = append(entryErrs, s.validateEntry(i, e)...)
	}
	if len(entryErrs) > 0 {
		return nil, &ValidationError{Message: "invalid upload entries", Entries: entryErrs}
	}

	now := time.Now().UTC()
	certs := make([]model.Certificate, 0, len(entries))
	for _, e := range entries {
		uploadedAt := e.UploadedAt
		if uploadedAt.IsZero() {
			uploadedAt = now
		}
		certs = append(certs, model.Certificate{
			ID:             uuid.New().String(),
			DriveLink:      e.DriveLink,
			RegisterNumber: strings.TrimSpace(e.RegisterNumber),
			Section:        e.Section,
			StudentName:    strings.TrimSpace(e.StudentName),
			UploadedBy:     e.UploadedBy,
			UploadedAt:     uploadedAt,
			MLStatus:       model.MLStatusPending,
			FacultyStatus:  model.FacultyStatusPending,
		})
	}

	if err := s.repo.CreateBatch(ctx, certs); err != nil {
		return nil, storeError("create certificates", err)
	}
	metrics.CertificatesSubmitted.Add(float64(len(certs)))

	// Each record enters the ML pipeline independently; one slow or failing
	// verification never blocks siblings. The verifier is called outside any
	// lock and the result is committed through ApplyMLResult, which re-validates
	// state at write time.
	ids := make([]string, 0, len(certs))
	for _, c := range certs {
		ids = append(ids, c.ID)
		id, link := c.ID, c.DriveLink
		s.runAsync(func() { s.runVerification(id, link) })
	}
	return ids, nil
}

func (s *certificateService) validateEntry(i int, e UploadEntry) []EntryError {
	var errs []EntryError
	if strings.TrimSpace(e.DriveLink) == "" {
		errs = append(errs, EntryError{Index: i, Field: "drive_link", Reason: "is required"})
	} else if !driveLinkPattern.MatchString(e.DriveLink) {
		errs = append(errs, EntryError{Index: i, Field: "drive_link", Reason: "must be a Google Drive URL"})
	}
	if strings.TrimSpace(e.RegisterNumber) == "" {
		errs = append(errs, EntryError{Index: i, Field: "register_number", Reason: "is required"})
	}
	if strings.TrimSpace(e.StudentName) == "" {
		errs = append(errs, EntryError{Index: i, Field: "student_name", Reason: "is required"})
	}
	if _, ok := s.sections[e.Section]; !ok {
		errs = append(errs, EntryError{Index: i, Field: "section", Reason: "unknown section"})
	}
	return errs
}

// runVerification performs one asynchronous ML check with a background context.
// Failures leave the record SUBMITTED; the operator re-check picks it up later.
func (s *certificateService) runVerification(id, driveLink string) {
	res, err := s.mlv.Verify(context.Background(), id, driveLink)
	if err != nil {
		metrics.MLFailures.Inc()
		logEvent("error", "ml_verification_failed", map[string]any{"certificate_id": id, "error": err.Error()})
		return
	}
	if err := s.ApplyMLResult(context.Background(), id, res.Status, res.Score); err != nil {
		logEvent("error", "ml_result_apply_failed", map[string]any{"certificate_id": id, "error": err.Error()})
	}
}

func (s *certificateService) ApplyMLResult(ctx context.Context, id string, status model.MLStatus, score float64) error {
	if id == "" {
		return ErrIDRequired
	}
	if status != model.MLStatusVerified && status != model.MLStatusDuplicate {
		return &ValidationError{Message: "ml status must be VERIFIED or DUPLICATE"}
	}
	if score < 0 || score > 100 {
		return &ValidationError{Message: "ml score must be between 0 and 100"}
	}

	applied, err := s.repo.ApplyMLResult(ctx, id, status, score)
	if err != nil {
		return storeError("apply ml result", err)
	}
	if applied {
		metrics.MLResults.WithLabelValues(string(status)).Inc()
		return nil
	}

	// Nothing matched the precondition: distinguish unknown id, a safe retry
	// with identical arguments, and a conflicting second outcome.
	cert, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return storeError("apply ml result", err)
	}
	if cert.MLStatus == status && cert.MLScore != nil && *cert.MLScore == score {
		return nil
	}
	if cert.MLStatus == model.MLStatusPending {
		return &TransitionError{Op: "apply ml result", Current: cert.State()}
	}
	return ErrConflictingResult
}

func (s *certificateService) SubmitReview(ctx context.Context, id string, isLegit bool) error {
	if id == "" {
		return ErrIDRequired
	}

	status := model.FacultyStatusNotLegit
	if isLegit {
		status = model.FacultyStatusLegit
	}

	applied, err := s.repo.ApplyFacultyDecision(ctx, id, status)
	if err != nil {
		return storeError("submit review", err)
	}
	if applied {
		metrics.ReviewDecisions.WithLabelValues(string(status)).Inc()
		return nil
	}

	cert, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return storeError("submit review", err)
	}
	return &TransitionError{Op: "submit review", Current: cert.State()}
}

func (s *certificateService) Archive(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}

	applied, err := s.repo.Archive(ctx, id)
	if err != nil {
		return storeError("archive certificate", err)
	}
	if applied {
		return nil
	}

	cert, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return storeError("archive certificate", err)
	}
	if cert.Archived {
		return nil
	}
	return &TransitionError{Op: "archive certificate", Current: cert.State()}
}

func (s *certificateService) PendingReview(ctx context.Context, limit int) ([]model.Certificate, error) {
	if limit <= 0 {
		limit = defaultReviewLimit
	}
	certs, err := s.repo.ListPendingReview(ctx, limit)
	if err != nil {
		return nil, storeError("list pending review", err)
	}
	return certs, nil
}

func (s *certificateService) Verify(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}

	cert, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return storeError("verify certificate", err)
	}
	if cert.State() != model.StateSubmitted {
		return &TransitionError{Op: "verify certificate", Current: cert.State()}
	}

	res, err := s.mlv.Verify(ctx, cert.ID, cert.DriveLink)
	if err != nil {
		metrics.MLFailures.Inc()
		return upstreamError("verify certificate", err)
	}
	return s.ApplyMLResult(ctx, id, res.Status, res.Score)
}

// logEvent writes one JSON log line, matching the migration logger's shape.
func logEvent(level, event string, fields map[string]any) {
	entry := map[string]any{
		"ts":    time.Now().UTC().Format(time.RFC3339Nano),
		"level": level,
		"event": event,
	}
	for k, v := range fields {
		entry[k] = v
	}
	if b, err := json.Marshal(entry); err == nil {
		log.SetFlags(0)
		log.Println(string(b))
	}
}
