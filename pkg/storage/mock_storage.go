package storage

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a mock implementation of Storage
type MockStorage struct {
	mock.Mock
}

// NewMockStorage creates a new mock storage
func NewMockStorage(t mock.TestingT) *MockStorage {
	mock := &MockStorage{}
	mock.Test(t)
	return mock
}

// SaveSnapshot mocks the SaveSnapshot method
func (m *MockStorage) SaveSnapshot(ctx context.Context, snap *Snapshot) error {
	args := m.Called(ctx, snap)
	return args.Error(0)
}

// LatestSnapshot mocks the LatestSnapshot method
func (m *MockStorage) LatestSnapshot(ctx context.Context) (*Snapshot, error) {
	args := m.Called(ctx)
	if snap, ok := args.Get(0).(*Snapshot); ok {
		return snap, args.Error(1)
	}
	return nil, args.Error(1)
}

// DeleteSnapshot mocks the DeleteSnapshot method
func (m *MockStorage) DeleteSnapshot(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ListSnapshots mocks the ListSnapshots method
func (m *MockStorage) ListSnapshots(ctx context.Context) ([]*Snapshot, error) {
	args := m.Called(ctx)
	if snaps, ok := args.Get(0).([]*Snapshot); ok {
		return snaps, args.Error(1)
	}
	return nil, args.Error(1)
}

// CleanupOldSnapshots mocks the CleanupOldSnapshots method
func (m *MockStorage) CleanupOldSnapshots(ctx context.Context, maxAge time.Duration) (int, error) {
	args := m.Called(ctx, maxAge)
	return args.Int(0), args.Error(1)
}
