package mocks

import (
	"context"

	"github.com/dukex/planeditor/pkg/gateway"
	"github.com/dukex/planeditor/pkg/models"
	"github.com/stretchr/testify/mock"
)

// MockPlanGateway is a mock implementation of services.PlanGateway interface.
type MockPlanGateway struct {
	mock.Mock
}

func (m *MockPlanGateway) GetFullPlan(ctx context.Context, nameOrID string) (*gateway.FullPlanResponse, error) {
	args := m.Called(ctx, nameOrID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*gateway.FullPlanResponse), args.Error(1)
}

func (m *MockPlanGateway) CreateExecution(ctx context.Context, planID string, initialContext map[string]any) (*gateway.ExecutionResponse, error) {
	args := m.Called(ctx, planID, initialContext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*gateway.ExecutionResponse), args.Error(1)
}

func (m *MockPlanGateway) GetExecution(ctx context.Context, executionID string) (*gateway.ExecutionResponse, error) {
	args := m.Called(ctx, executionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*gateway.ExecutionResponse), args.Error(1)
}

func (m *MockPlanGateway) AdvanceExecution(ctx context.Context, executionID string) (*gateway.AdvanceResponse, error) {
	args := m.Called(ctx, executionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*gateway.AdvanceResponse), args.Error(1)
}

func (m *MockPlanGateway) SavePositions(ctx context.Context, planID string, steps []models.StepPosition) error {
	args := m.Called(ctx, planID, steps)

	return args.Error(0)
}
