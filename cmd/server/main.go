package main

import (
	"fmt"
	"log"

	"github.com/Theijiii/plms-sys-sub004/internal/attachment"
	"github.com/Theijiii/plms-sys-sub004/internal/config"
	"github.com/Theijiii/plms-sys-sub004/internal/email/noop"
	"github.com/Theijiii/plms-sys-sub004/internal/email/ses"
	"github.com/Theijiii/plms-sys-sub004/internal/handler"
	"github.com/Theijiii/plms-sys-sub004/internal/history"
	"github.com/Theijiii/plms-sys-sub004/internal/port"
	"github.com/Theijiii/plms-sys-sub004/internal/repository/postgres"
	"github.com/Theijiii/plms-sys-sub004/internal/router"
	"github.com/Theijiii/plms-sys-sub004/internal/service"
	"github.com/Theijiii/plms-sys-sub004/internal/status"
	s3storage "github.com/Theijiii/plms-sys-sub004/internal/storage/s3"
	"github.com/Theijiii/plms-sys-sub004/internal/workflow"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	appRepo := postgres.NewApplicationRepo(db)
	eventRepo := postgres.NewReviewEventRepo(db)
	reviewerRepo := postgres.NewReviewerRepo(db)

	// Initialize storage (optional; plain uploads URLs without a bucket)
	var storage port.ObjectStorage
	if cfg.S3.Bucket != "" {
		storage, err = s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	// Initialize email sender
	var sender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		sender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Email.PortalURL)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		sender = noop.NewNoopSender()
	}

	// Initialize the review core
	registries := status.DefaultSet()
	engine := workflow.NewEngine(registries)
	resolver := attachment.NewResolver(cfg.Uploads.BaseURL)
	tracker := history.NewTracker()

	// Initialize services
	authSvc := service.NewAuthService(reviewerRepo, cfg.JWT)
	appSvc := service.NewApplicationService(appRepo, registries, resolver, storage, &cfg.S3)
	reviewSvc := service.NewReviewService(appRepo, eventRepo, engine, registries, tracker, sender)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	permitH := handler.NewPermitHandler(appSvc, reviewSvc)
	reportH := handler.NewReportHandler(appSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, authSvc, authH, permitH, reportH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
