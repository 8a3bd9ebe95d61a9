package noop

import (
	"context"

	"github.com/sirupsen/logrus"

	"bizdocs/internal/email"
	"bizdocs/internal/port"
)

type noopSender struct {
	log logrus.FieldLogger
}

// NewNoopSender creates an EmailSender that only logs what it would send.
func NewNoopSender(log logrus.FieldLogger) port.EmailSender {
	return &noopSender{log: log}
}

func (s *noopSender) SendQuotation(_ context.Context, toEmail, toName string, q port.QuotationEmail) error {
	msg, err := email.RenderQuotation(toName, q)
	if err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{
		"to":        toEmail,
		"to_name":   toName,
		"subject":   msg.Subject,
		"net_total": q.NetTotal,
	}).Info("[NOOP EMAIL] quotation")
	return nil
}
