package handler_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"bizdocs/internal/handler"
)

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

func TestHealthHandler_Readiness(t *testing.T) {
	c, w := newJSONContext(http.MethodGet, "/readyz", nil)
	handler.NewHealthHandler(stubPinger{}).Readiness(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = newJSONContext(http.MethodGet, "/readyz", nil)
	handler.NewHealthHandler(stubPinger{err: errors.New("refused")}).Readiness(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "database not reachable")
}

func TestHealthHandler_Liveness(t *testing.T) {
	c, w := newJSONContext(http.MethodGet, "/healthz", nil)
	handler.NewHealthHandler(stubPinger{err: errors.New("ignored")}).Liveness(c)
	assert.Equal(t, http.StatusOK, w.Code)
}
