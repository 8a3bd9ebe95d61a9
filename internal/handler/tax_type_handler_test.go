package handler_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bizdocs/internal/domain"
	"bizdocs/internal/handler"
	"bizdocs/internal/service"
	"bizdocs/mocks"
)

func newTaxTypeHandler() (*handler.TaxTypeHandler, *mocks.MockTaxTypeService) {
	svc := new(mocks.MockTaxTypeService)
	return handler.NewTaxTypeHandler(svc), svc
}

func TestTaxTypeHandler_Create(t *testing.T) {
	h, svc := newTaxTypeHandler()
	tenantID := uuid.New()
	svc.On("Create", mock.Anything, tenantID, service.CreateTaxTypeInput{
		Name:         "IGST 18%",
		Percentage:   18,
		IsInterState: true,
	}).Return(&domain.TaxType{ID: uuid.New(), Name: "IGST 18%"}, nil)

	c, w := newJSONContext(http.MethodPost, "/api/v1/tax-types", map[string]interface{}{
		"name":           "IGST 18%",
		"percentage":     18,
		"is_inter_state": true,
	})
	setAuthContext(c, tenantID, uuid.New(), "admin")
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestTaxTypeHandler_Create_PercentageOutOfRange(t *testing.T) {
	h, svc := newTaxTypeHandler()

	c, w := newJSONContext(http.MethodPost, "/api/v1/tax-types", map[string]interface{}{
		"name":       "Broken",
		"percentage": 140,
	})
	setAuthContext(c, uuid.New(), uuid.New(), "admin")
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestTaxTypeHandler_List_ActiveFilter(t *testing.T) {
	h, svc := newTaxTypeHandler()
	tenantID := uuid.New()
	svc.On("List", mock.Anything, tenantID, true, 0, 20).Return([]domain.TaxType{}, 0, nil)

	c, w := newJSONContext(http.MethodGet, "/api/v1/tax-types?active=true", nil)
	setAuthContext(c, tenantID, uuid.New(), "viewer")
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestTaxTypeHandler_Delete_InUse(t *testing.T) {
	h, svc := newTaxTypeHandler()
	tenantID, id := uuid.New(), uuid.New()
	svc.On("Delete", mock.Anything, tenantID, id).Return(domain.ErrTaxTypeInUse)

	c, w := newJSONContext(http.MethodDelete, "/api/v1/tax-types/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	setAuthContext(c, tenantID, uuid.New(), "admin")
	h.Delete(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "TAX_TYPE_IN_USE", decodeResponse(t, w).Error.Code)
}
