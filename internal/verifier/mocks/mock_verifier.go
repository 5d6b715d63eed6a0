package mocks

import (
	"context"

	"github.com/akashgouda-01/dept-changes/internal/verifier"
	"github.com/stretchr/testify/mock"
)

type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(ctx context.Context, certificateID, driveLink string) (verifier.Result, error) {
	args := m.Called(ctx, certificateID, driveLink)
	return args.Get(0).(verifier.Result), args.Error(1)
}
