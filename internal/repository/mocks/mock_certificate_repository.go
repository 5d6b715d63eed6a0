package mocks

import (
	"context"

	"github.com/akashgouda-01/dept-changes/internal/model"
	"github.com/akashgouda-01/dept-changes/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockCertificateRepository struct {
	mock.Mock
}

func (m *MockCertificateRepository) CreateBatch(ctx context.Context, certs []model.Certificate) error {
	args := m.Called(ctx, certs)
	return args.Error(0)
}

func (m *MockCertificateRepository) FindByID(ctx context.Context, id string) (*model.Certificate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Certificate), args.Error(1)
}

func (m *MockCertificateRepository) List(ctx context.Context, f repository.CertificateFilter) ([]model.Certificate, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Certificate), args.Error(1)
}

func (m *MockCertificateRepository) ListPendingReview(ctx context.Context, limit int) ([]model.Certificate, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Certificate), args.Error(1)
}

func (m *MockCertificateRepository) ApplyMLResult(ctx context.Context, id string, status model.MLStatus, score float64) (bool, error) {
	args := m.Called(ctx, id, status, score)
	return args.Bool(0), args.Error(1)
}

func (m *MockCertificateRepository) ApplyFacultyDecision(ctx context.Context, id string, status model.FacultyStatus) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}

func (m *MockCertificateRepository) Archive(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
