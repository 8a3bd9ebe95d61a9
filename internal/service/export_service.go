package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"bizdocs/internal/config"
	"bizdocs/internal/csvexport"
	"bizdocs/internal/domain"
	"bizdocs/internal/port"
	"bizdocs/internal/xlsxexport"
)

// ExportResult describes a workbook uploaded to object storage.
type ExportResult struct {
	URL           string `json:"url"`
	Key           string `json:"key"`
	Filename      string `json:"filename"`
	ExpiresIn     int64  `json:"expires_in"`
	DocumentCount int    `json:"document_count"`
}

// ExportService renders document listings as CSV or Excel.
type ExportService interface {
	Filename(kind domain.DocumentKind, ext string) string
	WriteCSV(ctx context.Context, tenantID uuid.UUID, filters domain.DocumentFilters, w io.Writer) error
	ExportXLSX(ctx context.Context, tenantID uuid.UUID, filters domain.DocumentFilters) (*ExportResult, error)
}

type exportService struct {
	repo          port.DocumentRepository
	storage       port.ObjectStorage
	bucket        string
	keyPrefix     string
	presignExpiry int64
	now           func() time.Time
	log           logrus.FieldLogger
}

// NewExportService creates a new ExportService implementation.
func NewExportService(
	repo port.DocumentRepository,
	storage port.ObjectStorage,
	s3Cfg config.S3Config,
	exportCfg config.ExportConfig,
	log logrus.FieldLogger,
) ExportService {
	return &exportService{
		repo:          repo,
		storage:       storage,
		bucket:        s3Cfg.Bucket,
		keyPrefix:     exportCfg.KeyPrefix,
		presignExpiry: s3Cfg.PresignExpiry,
		now:           time.Now,
		log:           log,
	}
}

// NewExportServiceWithClock is NewExportService with a fixed clock, for tests.
func NewExportServiceWithClock(
	repo port.DocumentRepository,
	storage port.ObjectStorage,
	s3Cfg config.S3Config,
	exportCfg config.ExportConfig,
	log logrus.FieldLogger,
	now func() time.Time,
) ExportService {
	svc := NewExportService(repo, storage, s3Cfg, exportCfg, log).(*exportService)
	svc.now = now
	return svc
}

func (s *exportService) Filename(kind domain.DocumentKind, ext string) string {
	return csvexport.BuildFilename(string(kind), s.now(), ext)
}

func (s *exportService) WriteCSV(ctx context.Context, tenantID uuid.UUID, filters domain.DocumentFilters, w io.Writer) error {
	docs, err := s.repo.ListAllForExport(ctx, tenantID, filters)
	if err != nil {
		return err
	}

	if _, err := w.Write(csvexport.BOM); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}
	cw := csvexport.NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	if err := cw.WriteDocuments(docs); err != nil {
		return fmt.Errorf("writing CSV rows: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

func (s *exportService) ExportXLSX(ctx context.Context, tenantID uuid.UUID, filters domain.DocumentFilters) (*ExportResult, error) {
	docs, err := s.repo.ListAllForExport(ctx, tenantID, filters)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := xlsxexport.Write(&buf, docs); err != nil {
		return nil, err
	}

	filename := s.Filename(filters.Kind, "xlsx")
	key := path.Join(s.keyPrefix, tenantID.String(), uuid.New().String(), filename)
	size := int64(buf.Len())

	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:             s.bucket,
		Key:                key,
		Body:               &buf,
		ContentType:        xlsxexport.ContentType,
		ContentDisposition: fmt.Sprintf(`attachment; filename="%s"`, filename),
		Size:               size,
	}); err != nil {
		s.log.WithError(err).WithField("key", key).Error("export upload failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	url, err := s.storage.GetPresignedURL(ctx, s.bucket, key, s.presignExpiry)
	if err != nil {
		return nil, fmt.Errorf("presigning export: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"tenant_id": tenantID,
		"key":       key,
		"documents": len(docs),
		"bytes":     size,
	}).Info("workbook exported")

	return &ExportResult{
		URL:           url,
		Key:           key,
		Filename:      filename,
		ExpiresIn:     s.presignExpiry,
		DocumentCount: len(docs),
	}, nil
}
