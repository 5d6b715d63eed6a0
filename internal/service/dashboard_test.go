package service

import (
	"context"
	"errors"
	"testing"

	"github.com/akashgouda-01/dept-changes/internal/model"
	"github.com/akashgouda-01/dept-changes/internal/repository"
	repoMocks "github.com/akashgouda-01/dept-changes/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
)

func cert(section string, faculty model.FacultyStatus, archived bool) model.Certificate {
	ml := model.MLStatusVerified
	if faculty == model.FacultyStatusPending {
		ml = model.MLStatusPending
	}
	return model.Certificate{
		Section:       section,
		MLStatus:      ml,
		FacultyStatus: faculty,
		Archived:      archived,
	}
}

func TestDashboardService_GetOverview(t *testing.T) {
	ctx := context.Background()

	t.Run("counts the full retained population", func(t *testing.T) {
		mCerts := new(repoMocks.MockCertificateRepository)
		mRoster := new(repoMocks.MockRosterRepository)
		svc := NewDashboardService(mCerts, mRoster)

		mCerts.On("List", ctx, repository.CertificateFilter{IncludeArchived: true}).
			Return([]model.Certificate{
				cert("A", model.FacultyStatusLegit, false),
				cert("A", model.FacultyStatusNotLegit, true),
				cert("B", model.FacultyStatusPending, false),
			}, nil)
		mRoster.On("CountStudents", ctx).Return(120, nil)

		ov, err := svc.GetOverview(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 120, ov.TotalStudents)
		assert.Equal(t, 3, ov.TotalCertificates)
		assert.Equal(t, 1, ov.VerifiedCount)
		assert.Equal(t, 1, ov.RejectedCount)
		assert.Equal(t, 1, ov.PendingCount)
		assert.Equal(t, 33, ov.VerificationRate)
		mCerts.AssertExpectations(t)
		mRoster.AssertExpectations(t)
	})

	t.Run("certificate store failure", func(t *testing.T) {
		mCerts := new(repoMocks.MockCertificateRepository)
		mRoster := new(repoMocks.MockRosterRepository)
		svc := NewDashboardService(mCerts, mRoster)

		mCerts.On("List", ctx, repository.CertificateFilter{IncludeArchived: true}).
			Return(nil, errors.New("db down"))

		_, err := svc.GetOverview(ctx)

		assert.ErrorIs(t, err, ErrStoreUnavailable)
		mCerts.AssertExpectations(t)
	})

	t.Run("roster failure", func(t *testing.T) {
		mCerts := new(repoMocks.MockCertificateRepository)
		mRoster := new(repoMocks.MockRosterRepository)
		svc := NewDashboardService(mCerts, mRoster)

		mCerts.On("List", ctx, repository.CertificateFilter{IncludeArchived: true}).
			Return([]model.Certificate{}, nil)
		mRoster.On("CountStudents", ctx).Return(0, errors.New("db down"))

		_, err := svc.GetOverview(ctx)

		assert.ErrorIs(t, err, ErrStoreUnavailable)
		mCerts.AssertExpectations(t)
		mRoster.AssertExpectations(t)
	})
}

func TestDashboardService_GetSectionStats(t *testing.T) {
	ctx := context.Background()

	t.Run("one aggregate per section, sorted", func(t *testing.T) {
		mCerts := new(repoMocks.MockCertificateRepository)
		svc := NewDashboardService(mCerts, new(repoMocks.MockRosterRepository))

		mCerts.On("List", ctx, repository.CertificateFilter{IncludeArchived: true}).
			Return([]model.Certificate{
				cert("B", model.FacultyStatusLegit, false),
				cert("A", model.FacultyStatusPending, false),
				cert("B", model.FacultyStatusLegit, true),
			}, nil)

		sections, err := svc.GetSectionStats(ctx)

		assert.NoError(t, err)
		assert.Len(t, sections, 2)
		assert.Equal(t, "A", sections[0].Section)
		assert.Equal(t, 1, sections[0].TotalCertificates)
		assert.Equal(t, "B", sections[1].Section)
		assert.Equal(t, 2, sections[1].VerifiedCount)
		assert.Equal(t, 100, sections[1].VerificationRate)
		mCerts.AssertExpectations(t)
	})

	t.Run("store failure", func(t *testing.T) {
		mCerts := new(repoMocks.MockCertificateRepository)
		svc := NewDashboardService(mCerts, new(repoMocks.MockRosterRepository))

		mCerts.On("List", ctx, repository.CertificateFilter{IncludeArchived: true}).
			Return(nil, errors.New("db down"))

		_, err := svc.GetSectionStats(ctx)

		assert.ErrorIs(t, err, ErrStoreUnavailable)
		mCerts.AssertExpectations(t)
	})
}
