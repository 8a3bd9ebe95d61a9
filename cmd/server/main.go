// Command server runs the BizDocs HTTP API.
//
// @title BizDocs API
// @version 1.0
// @description Purchase orders, quotations and their totals and tax engine.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"bizdocs/internal/config"
	"bizdocs/internal/domain"
	"bizdocs/internal/email/noop"
	"bizdocs/internal/email/ses"
	"bizdocs/internal/handler"
	"bizdocs/internal/logger"
	"bizdocs/internal/port"
	"bizdocs/internal/repository/postgres"
	"bizdocs/internal/router"
	"bizdocs/internal/service"
	s3storage "bizdocs/internal/storage/s3"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}
	log := logger.New(cfg.Log)

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}

func run(cfg *config.Config, log *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	handler.SetErrorLogger(log)

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	// Initialize repositories
	tenantRepo := postgres.NewTenantRepo(db)
	userRepo := postgres.NewUserRepo(db)
	taxTypeRepo := postgres.NewTaxTypeRepo(db)
	documentRepo := postgres.NewDocumentRepo(db)

	// Initialize storage and e-mail
	s3Client, err := s3storage.NewS3Client(ctx, &cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}
	sender, err := newEmailSender(ctx, cfg.Email, log)
	if err != nil {
		return fmt.Errorf("failed to initialize email sender: %w", err)
	}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, tenantRepo, cfg.JWT)
	tenantSvc := service.NewTenantService(tenantRepo)
	userSvc := service.NewUserService(userRepo)
	taxTypeSvc := service.NewTaxTypeService(taxTypeRepo)
	purchaseOrderSvc := service.NewDocumentService(domain.DocumentKindPurchaseOrder, documentRepo, taxTypeRepo, tenantRepo, sender, log)
	quotationSvc := service.NewDocumentService(domain.DocumentKindQuotation, documentRepo, taxTypeRepo, tenantRepo, sender, log)
	exportSvc := service.NewExportService(documentRepo, s3Client, cfg.S3, cfg.Export, log)

	// Setup router
	r := router.Setup(authSvc, router.Handlers{
		Auth:          handler.NewAuthHandler(authSvc),
		Tenant:        handler.NewTenantHandler(tenantSvc),
		User:          handler.NewUserHandler(userSvc),
		TaxType:       handler.NewTaxTypeHandler(taxTypeSvc),
		PurchaseOrder: handler.NewDocumentHandler(purchaseOrderSvc, exportSvc),
		Quotation:     handler.NewDocumentHandler(quotationSvc, exportSvc),
		Health:        handler.NewHealthHandler(db),
	}, log, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Server.Port).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

// newEmailSender picks the quotation e-mail transport named by cfg.Provider.
func newEmailSender(ctx context.Context, cfg config.EmailConfig, log logrus.FieldLogger) (port.EmailSender, error) {
	switch cfg.Provider {
	case "ses":
		return ses.NewSESSender(ctx, cfg.Region, cfg.FromAddress, cfg.FromName)
	case "", "noop":
		return noop.NewNoopSender(log), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
}
