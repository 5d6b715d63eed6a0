package mocks

import (
	"context"

	"github.com/akashgouda-01/dept-changes/internal/stats"
	"github.com/stretchr/testify/mock"
)

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) GetOverview(ctx context.Context) (stats.Overview, error) {
	args := m.Called(ctx)
	return args.Get(0).(stats.Overview), args.Error(1)
}

func (m *MockDashboardService) GetSectionStats(ctx context.Context) ([]stats.SectionAggregate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]stats.SectionAggregate), args.Error(1)
}
