package mocks

import (
	"context"
	"io"
	"time"

	"github.com/akashgouda-01/dept-changes/internal/storage"
	"github.com/stretchr/testify/mock"
)

type MockArchive struct {
	mock.Mock
}

func (m *MockArchive) Put(ctx context.Context, key string, r io.Reader, size int64, opt storage.PutOptions) (storage.ObjectInfo, error) {
	args := m.Called(ctx, key, r, size, opt)
	return args.Get(0).(storage.ObjectInfo), args.Error(1)
}

func (m *MockArchive) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, key, expiry)
	return args.String(0), args.Error(1)
}
