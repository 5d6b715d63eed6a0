package mocks

import (
	"context"

	"github.com/akashgouda-01/dept-changes/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockRosterRepository struct {
	mock.Mock
}

func (m *MockRosterRepository) FindFaculty(ctx context.Context, id string) (*model.Faculty, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Faculty), args.Error(1)
}

func (m *MockRosterRepository) ListStudentsByFaculty(ctx context.Context, facultyID string) ([]model.Student, error) {
	args := m.Called(ctx, facultyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Student), args.Error(1)
}

func (m *MockRosterRepository) CountStudents(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
