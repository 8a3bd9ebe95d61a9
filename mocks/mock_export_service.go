package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"bizdocs/internal/domain"
	"bizdocs/internal/service"
)

var _ service.ExportService = (*MockExportService)(nil)

// MockExportService is a mock implementation of service.ExportService.
// WriteCSV copies CSVBody to the writer when the call succeeds.
type MockExportService struct {
	mock.Mock
	CSVBody string
}

func (m *MockExportService) Filename(kind domain.DocumentKind, ext string) string {
	args := m.Called(kind, ext)
	return args.String(0)
}

func (m *MockExportService) WriteCSV(ctx context.Context, tenantID uuid.UUID, filters domain.DocumentFilters, w io.Writer) error {
	args := m.Called(ctx, tenantID, filters, w)
	if err := args.Error(0); err != nil {
		return err
	}
	_, err := io.WriteString(w, m.CSVBody)
	return err
}

func (m *MockExportService) ExportXLSX(ctx context.Context, tenantID uuid.UUID, filters domain.DocumentFilters) (*service.ExportResult, error) {
	args := m.Called(ctx, tenantID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportResult), args.Error(1)
}
