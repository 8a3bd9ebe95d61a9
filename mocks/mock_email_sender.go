package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bizdocs/internal/port"
)

var _ port.EmailSender = (*MockEmailSender)(nil)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendQuotation(ctx context.Context, toEmail, toName string, q port.QuotationEmail) error {
	args := m.Called(ctx, toEmail, toName, q)
	return args.Error(0)
}
