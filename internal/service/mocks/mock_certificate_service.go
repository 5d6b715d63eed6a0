package mocks

import (
	"context"

	"github.com/akashgouda-01/dept-changes/internal/model"
	"github.com/akashgouda-01/dept-changes/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockCertificateService struct {
	mock.Mock
}

func (m *MockCertificateService) SubmitBatch(ctx context.Context, entries []service.UploadEntry) ([]string, error) {
	args := m.Called(ctx, entries)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCertificateService) ApplyMLResult(ctx context.Context, id string, status model.MLStatus, score float64) error {
	args := m.Called(ctx, id, status, score)
	return args.Error(0)
}

func (m *MockCertificateService) SubmitReview(ctx context.Context, id string, isLegit bool) error {
	args := m.Called(ctx, id, isLegit)
	return args.Error(0)
}

func (m *MockCertificateService) Archive(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCertificateService) PendingReview(ctx context.Context, limit int) ([]model.Certificate, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Certificate), args.Error(1)
}

func (m *MockCertificateService) Verify(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
