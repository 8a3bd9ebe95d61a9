package service_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bizdocs/internal/config"
	"bizdocs/internal/csvexport"
	"bizdocs/internal/domain"
	"bizdocs/internal/port"
	"bizdocs/internal/service"
	"bizdocs/internal/xlsxexport"
	"bizdocs/mocks"
)

var exportClock = func() time.Time { return time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC) }

func newTestExportService(repo *mocks.MockDocumentRepo, storage *mocks.MockObjectStorage) service.ExportService {
	log, _ := logrustest.NewNullLogger()
	return service.NewExportServiceWithClock(
		repo,
		storage,
		config.S3Config{Bucket: "exports-bucket", PresignExpiry: 900},
		config.ExportConfig{KeyPrefix: "exports"},
		log,
		exportClock,
	)
}

func exportDocs() []domain.Document {
	due := 54.0
	change := 0.0
	return []domain.Document{{
		ID:             uuid.New(),
		Kind:           domain.DocumentKindPurchaseOrder,
		DocumentNumber: "PO-1",
		DocumentDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		SubTotal:       230,
		NetTotal:       250,
		DueAmount:      &due,
		ChangeAmount:   &change,
		Items:          []domain.DocumentItem{{ProductID: "p-1", Quantity: 1, UnitPrice: 230, LineTotal: 230}},
	}}
}

func TestExportService_Filename(t *testing.T) {
	svc := newTestExportService(new(mocks.MockDocumentRepo), new(mocks.MockObjectStorage))

	assert.Equal(t, "quotation_2026-04-02.csv", svc.Filename(domain.DocumentKindQuotation, "csv"))
	assert.Equal(t, "export_2026-04-02.xlsx", svc.Filename("", "xlsx"))
}

func TestExportService_WriteCSV(t *testing.T) {
	repo := new(mocks.MockDocumentRepo)
	svc := newTestExportService(repo, new(mocks.MockObjectStorage))
	tenantID := uuid.New()
	filters := domain.DocumentFilters{Kind: domain.DocumentKindPurchaseOrder}

	repo.On("ListAllForExport", mock.Anything, tenantID, filters).Return(exportDocs(), nil)

	var buf bytes.Buffer
	require.NoError(t, svc.WriteCSV(context.Background(), tenantID, filters, &buf))

	out := buf.Bytes()
	require.True(t, bytes.HasPrefix(out, csvexport.BOM))
	lines := strings.Split(strings.TrimSpace(string(out[len(csvexport.BOM):])), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Document Number,Kind,"))
	assert.Contains(t, lines[1], "PO-1")
	assert.Contains(t, lines[1], "250.00")
	repo.AssertExpectations(t)
}

func TestExportService_WriteCSV_RepoError(t *testing.T) {
	repo := new(mocks.MockDocumentRepo)
	svc := newTestExportService(repo, new(mocks.MockObjectStorage))
	tenantID := uuid.New()

	repo.On("ListAllForExport", mock.Anything, tenantID, domain.DocumentFilters{}).Return(nil, errors.New("db down"))

	var buf bytes.Buffer
	err := svc.WriteCSV(context.Background(), tenantID, domain.DocumentFilters{}, &buf)

	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestExportService_ExportXLSX(t *testing.T) {
	repo := new(mocks.MockDocumentRepo)
	storage := new(mocks.MockObjectStorage)
	svc := newTestExportService(repo, storage)
	tenantID := uuid.New()
	filters := domain.DocumentFilters{Kind: domain.DocumentKindPurchaseOrder}

	repo.On("ListAllForExport", mock.Anything, tenantID, filters).Return(exportDocs(), nil)

	var uploadedKey string
	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "exports-bucket" &&
			in.ContentType == xlsxexport.ContentType &&
			in.ContentDisposition == `attachment; filename="purchase_order_2026-04-02.xlsx"` &&
			in.Size > 0 &&
			strings.HasPrefix(in.Key, "exports/"+tenantID.String()+"/") &&
			strings.HasSuffix(in.Key, "/purchase_order_2026-04-02.xlsx")
	})).Run(func(args mock.Arguments) {
		uploadedKey = args.Get(1).(port.UploadInput).Key
	}).Return(&port.UploadOutput{}, nil)
	storage.On("GetPresignedURL", mock.Anything, "exports-bucket", mock.AnythingOfType("string"), int64(900)).
		Return("https://signed.example/export.xlsx", nil)

	res, err := svc.ExportXLSX(context.Background(), tenantID, filters)

	require.NoError(t, err)
	assert.Equal(t, "https://signed.example/export.xlsx", res.URL)
	assert.Equal(t, uploadedKey, res.Key)
	assert.Equal(t, "purchase_order_2026-04-02.xlsx", res.Filename)
	assert.Equal(t, int64(900), res.ExpiresIn)
	assert.Equal(t, 1, res.DocumentCount)
	storage.AssertExpectations(t)
}

func TestExportService_ExportXLSX_UploadFailure(t *testing.T) {
	repo := new(mocks.MockDocumentRepo)
	storage := new(mocks.MockObjectStorage)
	svc := newTestExportService(repo, storage)
	tenantID := uuid.New()

	repo.On("ListAllForExport", mock.Anything, tenantID, domain.DocumentFilters{}).Return(exportDocs(), nil)
	storage.On("Upload", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

	res, err := svc.ExportXLSX(context.Background(), tenantID, domain.DocumentFilters{})

	assert.Nil(t, res)
	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	storage.AssertNotCalled(t, "GetPresignedURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
