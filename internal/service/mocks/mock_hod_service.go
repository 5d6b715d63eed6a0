package mocks

import (
	"context"

	"github.com/akashgouda-01/dept-changes/internal/model"
	"github.com/akashgouda-01/dept-changes/internal/stats"
	"github.com/stretchr/testify/mock"
)

type MockHodService struct {
	mock.Mock
}

func (m *MockHodService) GetStudentStats(ctx context.Context, facultyID string) ([]stats.StudentStat, error) {
	args := m.Called(ctx, facultyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]stats.StudentStat), args.Error(1)
}

func (m *MockHodService) ListStudentCertificates(ctx context.Context, regNo string) ([]model.Certificate, error) {
	args := m.Called(ctx, regNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Certificate), args.Error(1)
}

func (m *MockHodService) ExportSection(ctx context.Context, section string) (string, []byte, error) {
	args := m.Called(ctx, section)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).([]byte), args.Error(2)
}

func (m *MockHodService) ExportStudent(ctx context.Context, regNo string) (string, []byte, error) {
	args := m.Called(ctx, regNo)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).([]byte), args.Error(2)
}
