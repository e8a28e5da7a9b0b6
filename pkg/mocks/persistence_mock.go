package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/formwright/formwright/pkg/models"
	"github.com/formwright/formwright/pkg/persistence"
)

// MockFormRepository is a mock implementation of persistence.FormRepository.
type MockFormRepository struct {
	mock.Mock
}

func (m *MockFormRepository) List(ctx context.Context, opts persistence.ListFormsOptions) (*persistence.FormListResult, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*persistence.FormListResult), args.Error(1)
}

func (m *MockFormRepository) GetByID(ctx context.Context, id string) (*models.Form, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Form), args.Error(1)
}

func (m *MockFormRepository) Save(ctx context.Context, form *models.Form) error {
	args := m.Called(ctx, form)

	return args.Error(0)
}

func (m *MockFormRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

// MockWorkflowRepository is a mock implementation of persistence.WorkflowRepository.
type MockWorkflowRepository struct {
	mock.Mock
}

func (m *MockWorkflowRepository) GetAll(ctx context.Context) ([]*models.FlowGraph, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.FlowGraph), args.Error(1)
}

func (m *MockWorkflowRepository) GetByID(ctx context.Context, id string) (*models.FlowGraph, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.FlowGraph), args.Error(1)
}

func (m *MockWorkflowRepository) Save(ctx context.Context, graph *models.FlowGraph) error {
	args := m.Called(ctx, graph)

	return args.Error(0)
}

func (m *MockWorkflowRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

// MockPersistence is a mock implementation of persistence.Persistence.
type MockPersistence struct {
	mock.Mock
}

func (m *MockPersistence) FormRepository() persistence.FormRepository {
	args := m.Called()

	return args.Get(0).(persistence.FormRepository)
}

func (m *MockPersistence) WorkflowRepository() persistence.WorkflowRepository {
	args := m.Called()

	return args.Get(0).(persistence.WorkflowRepository)
}

func (m *MockPersistence) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}

func (m *MockPersistence) Close(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}
