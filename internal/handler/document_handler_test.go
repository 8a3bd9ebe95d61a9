package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bizdocs/internal/domain"
	"bizdocs/internal/handler"
	"bizdocs/internal/service"
	"bizdocs/internal/totals"
	"bizdocs/mocks"
)

func newDocumentHandler(kind domain.DocumentKind) (*handler.DocumentHandler, *mocks.MockDocumentService, *mocks.MockExportService) {
	docSvc := &mocks.MockDocumentService{DocKind: kind}
	exportSvc := new(mocks.MockExportService)
	return handler.NewDocumentHandler(docSvc, exportSvc), docSvc, exportSvc
}

func documentBody() map[string]interface{} {
	return map[string]interface{}{
		"document_number": "PO-1",
		"document_date":   "2026-03-31",
		"tax_type_id":     nil,
		"global_discount": "30",
		"shipping_cost":   14,
		"paid_amount":     "1,000",
		"items": []map[string]interface{}{
			{"product_id": "p-1", "quantity": "2", "unit_price": 100, "discount_percent": 10},
		},
	}
}

func TestDocumentHandler_Create_LenientNumbers(t *testing.T) {
	h, svc, _ := newDocumentHandler(domain.DocumentKindPurchaseOrder)
	tenantID, userID := uuid.New(), uuid.New()

	svc.On("Create", mock.Anything, tenantID, userID, mock.MatchedBy(func(in service.DocumentInput) bool {
		return in.DocumentNumber == "PO-1" &&
			in.GlobalDiscount == 30 &&
			in.PaidAmount.Valid && in.PaidAmount.Value == 1000 &&
			len(in.Items) == 1 && in.Items[0].Quantity == 2
	})).Return(&domain.Document{ID: uuid.New(), NetTotal: 250}, nil)

	c, w := newJSONContext(http.MethodPost, "/api/v1/purchase-orders", documentBody())
	setAuthContext(c, tenantID, userID, "member")
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestDocumentHandler_Create_RejectsInvalidLine(t *testing.T) {
	tests := []struct {
		name string
		line map[string]interface{}
	}{
		{"zero_quantity", map[string]interface{}{"product_id": "p-1", "quantity": 0, "unit_price": 10}},
		{"missing_product", map[string]interface{}{"quantity": 1, "unit_price": 10}},
		{"overflowing_quantity", map[string]interface{}{"product_id": "p-1", "quantity": "1e200", "unit_price": "1e200", "discount_percent": 10}},
		{"negative_price", map[string]interface{}{"product_id": "p-1", "quantity": 1, "unit_price": -5}},
		{"discount_over_100", map[string]interface{}{"product_id": "p-1", "quantity": 1, "unit_price": 10, "discount_percent": 150}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, svc, _ := newDocumentHandler(domain.DocumentKindQuotation)
			body := documentBody()
			body["items"] = []map[string]interface{}{tt.line}

			c, w := newJSONContext(http.MethodPost, "/api/v1/quotations", body)
			setAuthContext(c, uuid.New(), uuid.New(), "member")
			h.Create(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestDocumentHandler_Create_TotalsMismatch(t *testing.T) {
	h, svc, _ := newDocumentHandler(domain.DocumentKindPurchaseOrder)
	svc.On("Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &service.TotalsMismatchError{Mismatches: []totals.Mismatch{{Field: "due", Expected: 150, Actual: 149}}})

	c, w := newJSONContext(http.MethodPost, "/api/v1/purchase-orders", documentBody())
	setAuthContext(c, uuid.New(), uuid.New(), "member")
	h.Create(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decodeResponse(t, w)
	require.Len(t, resp.Error.Mismatches, 1)
	assert.Equal(t, "due", resp.Error.Mismatches[0].Field)
}

func TestDocumentHandler_List_Filters(t *testing.T) {
	h, svc, _ := newDocumentHandler(domain.DocumentKindQuotation)
	tenantID := uuid.New()
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	svc.On("List", mock.Anything, tenantID, mock.MatchedBy(func(f domain.DocumentFilters) bool {
		return f.Kind == domain.DocumentKindQuotation && f.PartyRef == "C-9" &&
			f.From != nil && f.From.Equal(from) && f.To == nil
	}), 40, 10).Return([]domain.Document{}, 0, nil)

	c, w := newJSONContext(http.MethodGet, "/api/v1/quotations?party_ref=C-9&from=2026-01-01&offset=40&limit=10", nil)
	setAuthContext(c, tenantID, uuid.New(), "viewer")
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestDocumentHandler_List_InvalidDate(t *testing.T) {
	h, svc, _ := newDocumentHandler(domain.DocumentKindQuotation)

	c, w := newJSONContext(http.MethodGet, "/api/v1/quotations?to=yesterday", nil)
	setAuthContext(c, uuid.New(), uuid.New(), "viewer")
	h.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_DATE", decodeResponse(t, w).Error.Code)
	svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDocumentHandler_GetByID_NotFound(t *testing.T) {
	h, svc, _ := newDocumentHandler(domain.DocumentKindPurchaseOrder)
	tenantID, id := uuid.New(), uuid.New()
	svc.On("GetByID", mock.Anything, tenantID, id).Return(nil, domain.ErrDocumentNotFound)

	c, w := newJSONContext(http.MethodGet, "/api/v1/purchase-orders/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	setAuthContext(c, tenantID, uuid.New(), "viewer")
	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "DOCUMENT_NOT_FOUND", decodeResponse(t, w).Error.Code)
}

func TestDocumentHandler_Payload(t *testing.T) {
	h, svc, _ := newDocumentHandler(domain.DocumentKindQuotation)
	tenantID, id := uuid.New(), uuid.New()
	svc.On("Payload", mock.Anything, tenantID, id).Return(&totals.Payload{GrandTotal: 230, NetTotal: 214}, nil)

	c, w := newJSONContext(http.MethodGet, "/api/v1/quotations/"+id.String()+"/payload", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	setAuthContext(c, tenantID, uuid.New(), "viewer")
	h.Payload(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 214.0, resp.Data["netTotal"])
	assert.NotContains(t, resp.Data, "due")
	assert.Contains(t, resp.Data, "taxTypeId")
}

func TestDocumentHandler_Preview(t *testing.T) {
	h, svc, _ := newDocumentHandler(domain.DocumentKindPurchaseOrder)
	tenantID := uuid.New()
	svc.On("Preview", mock.Anything, tenantID, mock.MatchedBy(func(in service.TotalsInput) bool {
		return in.NoTax && in.ShippingCost == 0 && !in.PaidAmount.Valid
	})).Return(&service.PreviewResult{Totals: totals.DocumentTotals{NetPayable: 180}}, nil)

	c, w := newJSONContext(http.MethodPost, "/api/v1/purchase-orders/preview", map[string]interface{}{
		"no_tax":        true,
		"shipping_cost": "abc",
		"paid_amount":   nil,
		"items":         []map[string]interface{}{{"product_id": "p-1", "quantity": 2, "unit_price": 90}},
	})
	setAuthContext(c, tenantID, uuid.New(), "viewer")
	h.Preview(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestDocumentHandler_Verify(t *testing.T) {
	h, svc, _ := newDocumentHandler(domain.DocumentKindPurchaseOrder)
	tenantID := uuid.New()
	svc.On("Verify", mock.Anything, tenantID, mock.MatchedBy(func(p totals.Payload) bool {
		return p.NetTotal == 251 && len(p.Items) == 1
	})).Return(&service.VerifyResult{
		Valid:      false,
		Mismatches: []totals.Mismatch{{Field: "netTotal", Expected: 250, Actual: 251}},
	}, nil)

	c, w := newJSONContext(http.MethodPost, "/api/v1/purchase-orders/verify", map[string]interface{}{
		"netTotal": 251,
		"items":    []map[string]interface{}{{"productId": "p-1", "quantity": 1, "unitPrice": 250, "total": 250}},
	})
	setAuthContext(c, tenantID, uuid.New(), "viewer")
	h.Verify(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"valid":false`)
}

func TestDocumentHandler_ExportCSV(t *testing.T) {
	h, _, exportSvc := newDocumentHandler(domain.DocumentKindPurchaseOrder)
	tenantID := uuid.New()
	exportSvc.CSVBody = "Document Number\nPO-1\n"

	exportSvc.On("Filename", domain.DocumentKindPurchaseOrder, "csv").Return("purchase_order_2026-04-02.csv")
	exportSvc.On("WriteCSV", mock.Anything, tenantID,
		domain.DocumentFilters{Kind: domain.DocumentKindPurchaseOrder}, mock.Anything).Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/purchase-orders/export/csv", http.NoBody)
	setAuthContext(c, tenantID, uuid.New(), "viewer")
	h.ExportCSV(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="purchase_order_2026-04-02.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "Document Number\nPO-1\n", w.Body.String())
}

func TestDocumentHandler_ExportCSV_ErrorBeforeWrite(t *testing.T) {
	h, _, exportSvc := newDocumentHandler(domain.DocumentKindQuotation)
	tenantID := uuid.New()

	exportSvc.On("Filename", domain.DocumentKindQuotation, "csv").Return("quotation.csv")
	exportSvc.On("WriteCSV", mock.Anything, tenantID, mock.Anything, mock.Anything).Return(errors.New("db down"))

	c, w := newJSONContext(http.MethodGet, "/api/v1/quotations/export/csv", nil)
	setAuthContext(c, tenantID, uuid.New(), "viewer")
	h.ExportCSV(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "INTERNAL_ERROR", decodeResponse(t, w).Error.Code)
}

func TestDocumentHandler_ExportXLSX(t *testing.T) {
	h, _, exportSvc := newDocumentHandler(domain.DocumentKindPurchaseOrder)
	tenantID := uuid.New()
	exportSvc.On("ExportXLSX", mock.Anything, tenantID, domain.DocumentFilters{Kind: domain.DocumentKindPurchaseOrder}).
		Return(&service.ExportResult{URL: "https://signed", DocumentCount: 3}, nil)

	c, w := newJSONContext(http.MethodPost, "/api/v1/purchase-orders/export/xlsx", nil)
	setAuthContext(c, tenantID, uuid.New(), "member")
	h.ExportXLSX(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "https://signed")
}

func TestDocumentHandler_Send(t *testing.T) {
	h, svc, _ := newDocumentHandler(domain.DocumentKindQuotation)
	tenantID, id := uuid.New(), uuid.New()
	svc.On("SendQuotation", mock.Anything, tenantID, id, service.SendQuotationInput{ToEmail: "cfo@customer.test"}).Return(nil)

	c, w := newJSONContext(http.MethodPost, "/api/v1/quotations/"+id.String()+"/send",
		map[string]string{"to_email": "cfo@customer.test"})
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	setAuthContext(c, tenantID, uuid.New(), "member")
	h.Send(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestDocumentHandler_Send_EmptyBody(t *testing.T) {
	h, svc, _ := newDocumentHandler(domain.DocumentKindQuotation)
	tenantID, id := uuid.New(), uuid.New()
	svc.On("SendQuotation", mock.Anything, tenantID, id, service.SendQuotationInput{}).Return(domain.ErrNoPartyEmail)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/quotations/"+id.String()+"/send", bytes.NewReader(nil))
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	setAuthContext(c, tenantID, uuid.New(), "member")
	h.Send(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "NO_RECIPIENT", decodeResponse(t, w).Error.Code)
}
