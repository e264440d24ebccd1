package mocks

import (
	"context"

	"github.com/dukex/planeditor/pkg/models"
	"github.com/stretchr/testify/mock"
)

// MockPersistence is a mock implementation of persistence.Persistence interface.
type MockPersistence struct {
	mock.Mock
}

func (m *MockPersistence) LoadState(ctx context.Context, key string) (*models.EditorState, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.EditorState), args.Error(1)
}

func (m *MockPersistence) SaveState(ctx context.Context, key string, state *models.EditorState) error {
	args := m.Called(ctx, key, state)

	return args.Error(0)
}

func (m *MockPersistence) DeleteState(ctx context.Context, key string) error {
	args := m.Called(ctx, key)

	return args.Error(0)
}

func (m *MockPersistence) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}

func (m *MockPersistence) Close(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}
