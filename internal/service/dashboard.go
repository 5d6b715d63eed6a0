package service

import (
	"context"

	"github.com/akashgouda-01/dept-changes/internal/repository"
	"github.com/akashgouda-01/dept-changes/internal/stats"
)

// DashboardService answers overview and per-section statistics queries.
// Counts are reduced from a fresh store snapshot on every call; nothing here is
// cached or incremented, so re-aggregation is idempotent by construction.
type DashboardService interface {
	GetOverview(ctx context.Context) (stats.Overview, error)
	GetSectionStats(ctx context.Context) ([]stats.SectionAggregate, error)
}

type dashboardService struct {
	certs  repository.CertificateRepository
	roster repository.RosterRepository
}

// NewDashboardService constructs a new DashboardService.
func NewDashboardService(certs repository.CertificateRepository, roster repository.RosterRepository) DashboardService {
	return &dashboardService{certs: certs, roster: roster}
}

// snapshot reads the full retained population. Archived records stay in the
// counts; archiving only removes a certificate from active queues.
func (s *dashboardService) snapshot(ctx context.Context) ([]stats.SectionAggregate, error) {
	certs, err := s.certs.List(ctx, repository.CertificateFilter{IncludeArchived: true})
	if err != nil {
		return nil, storeError("list certificates", err)
	}
	return stats.Sections(certs), nil
}

func (s *dashboardService) GetOverview(ctx context.Context) (stats.Overview, error) {
	certs, err := s.certs.List(ctx, repository.CertificateFilter{IncludeArchived: true})
	if err != nil {
		return stats.Overview{}, storeError("list certificates", err)
	}
	totalStudents, err := s.roster.CountStudents(ctx)
	if err != nil {
		return stats.Overview{}, storeError("count students", err)
	}
	return stats.ComputeOverview(certs, totalStudents), nil
}

func (s *dashboardService) GetSectionStats(ctx context.Context) ([]stats.SectionAggregate, error) {
	return s.snapshot(ctx)
}
