package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"bizdocs/internal/domain"
	"bizdocs/internal/service"
	"bizdocs/internal/totals"
)

var _ service.DocumentService = (*MockDocumentService)(nil)

// MockDocumentService is a mock implementation of service.DocumentService.
// DocKind is returned from Kind without recording a call.
type MockDocumentService struct {
	mock.Mock
	DocKind domain.DocumentKind
}

func (m *MockDocumentService) Kind() domain.DocumentKind {
	return m.DocKind
}

func (m *MockDocumentService) Create(ctx context.Context, tenantID, userID uuid.UUID, input service.DocumentInput) (*domain.Document, error) {
	args := m.Called(ctx, tenantID, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Document, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) List(ctx context.Context, tenantID uuid.UUID, filters domain.DocumentFilters, offset, limit int) ([]domain.Document, int, error) {
	args := m.Called(ctx, tenantID, filters, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Document), args.Int(1), args.Error(2)
}

func (m *MockDocumentService) Update(ctx context.Context, tenantID, id uuid.UUID, input service.DocumentInput) (*domain.Document, error) {
	args := m.Called(ctx, tenantID, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockDocumentService) Payload(ctx context.Context, tenantID, id uuid.UUID) (*totals.Payload, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*totals.Payload), args.Error(1)
}

func (m *MockDocumentService) Preview(ctx context.Context, tenantID uuid.UUID, input service.TotalsInput) (*service.PreviewResult, error) {
	args := m.Called(ctx, tenantID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PreviewResult), args.Error(1)
}

func (m *MockDocumentService) Verify(ctx context.Context, tenantID uuid.UUID, submitted totals.Payload) (*service.VerifyResult, error) {
	args := m.Called(ctx, tenantID, submitted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.VerifyResult), args.Error(1)
}

func (m *MockDocumentService) SendQuotation(ctx context.Context, tenantID, id uuid.UUID, input service.SendQuotationInput) error {
	args := m.Called(ctx, tenantID, id, input)
	return args.Error(0)
}
