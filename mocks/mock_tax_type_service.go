package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"bizdocs/internal/domain"
	"bizdocs/internal/service"
)

var _ service.TaxTypeService = (*MockTaxTypeService)(nil)

// MockTaxTypeService is a mock implementation of service.TaxTypeService.
type MockTaxTypeService struct {
	mock.Mock
}

func (m *MockTaxTypeService) Create(ctx context.Context, tenantID uuid.UUID, input service.CreateTaxTypeInput) (*domain.TaxType, error) {
	args := m.Called(ctx, tenantID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxType), args.Error(1)
}

func (m *MockTaxTypeService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.TaxType, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxType), args.Error(1)
}

func (m *MockTaxTypeService) List(ctx context.Context, tenantID uuid.UUID, activeOnly bool, offset, limit int) ([]domain.TaxType, int, error) {
	args := m.Called(ctx, tenantID, activeOnly, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.TaxType), args.Int(1), args.Error(2)
}

func (m *MockTaxTypeService) Update(ctx context.Context, tenantID, id uuid.UUID, input service.UpdateTaxTypeInput) (*domain.TaxType, error) {
	args := m.Called(ctx, tenantID, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxType), args.Error(1)
}

func (m *MockTaxTypeService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}
