package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"bizdocs/internal/domain"
	"bizdocs/internal/port"
)

var _ port.TaxTypeRepository = (*MockTaxTypeRepo)(nil)

// MockTaxTypeRepo is a mock implementation of port.TaxTypeRepository.
type MockTaxTypeRepo struct {
	mock.Mock
}

func (m *MockTaxTypeRepo) Create(ctx context.Context, taxType *domain.TaxType) error {
	args := m.Called(ctx, taxType)
	return args.Error(0)
}

func (m *MockTaxTypeRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.TaxType, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxType), args.Error(1)
}

func (m *MockTaxTypeRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, activeOnly bool, offset, limit int) ([]domain.TaxType, int, error) {
	args := m.Called(ctx, tenantID, activeOnly, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.TaxType), args.Int(1), args.Error(2)
}

func (m *MockTaxTypeRepo) Update(ctx context.Context, taxType *domain.TaxType) error {
	args := m.Called(ctx, taxType)
	return args.Error(0)
}

func (m *MockTaxTypeRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}
