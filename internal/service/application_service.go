package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Theijiii/plms-sys-sub004/internal/attachment"
	"github.com/Theijiii/plms-sys-sub004/internal/config"
	"github.com/Theijiii/plms-sys-sub004/internal/domain"
	"github.com/Theijiii/plms-sys-sub004/internal/ledger"
	"github.com/Theijiii/plms-sys-sub004/internal/port"
	"github.com/Theijiii/plms-sys-sub004/internal/status"
)

// LedgerEntryView is one decoded remark formatted for display.
type LedgerEntryView struct {
	At        *time.Time `json:"at"`
	DisplayAt string     `json:"display_at"`
	Text      string     `json:"text"`
}

// ApplicationView is one application with its derived views attached:
// display status, decoded ledger (newest first, for display), and resolved
// attachment descriptors. The raw fields stay the source of truth.
type ApplicationView struct {
	domain.PermitApplication
	DisplayStatus string                  `json:"display_status"`
	Ledger        []LedgerEntryView       `json:"ledger"`
	Files         []domain.FileDescriptor `json:"files"`
}

// ListApplicationsInput narrows the application list.
type ListApplicationsInput struct {
	Domain domain.PermitDomain
	Status string
	Search string
	Offset int
	Limit  int
}

// DownloadedDocument is one attachment's content fetched from the object
// store on the reviewer's behalf.
type DownloadedDocument struct {
	Name     string
	MimeType string
	Content  []byte
}

// ApplicationService defines the read side of the review dashboard.
type ApplicationService interface {
	List(ctx context.Context, input ListApplicationsInput) ([]ApplicationView, int, domain.StatusCounts, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ApplicationView, error)
	ListDocuments(ctx context.Context, id uuid.UUID) ([]domain.FileDescriptor, error)
	DownloadDocument(ctx context.Context, id uuid.UUID, docID string) (*DownloadedDocument, error)
}

type applicationService struct {
	appRepo    port.ApplicationRepository
	registries status.Set
	resolver   *attachment.Resolver
	storage    port.ObjectStorage
	s3cfg      *config.S3Config
}

// NewApplicationService creates a new ApplicationService implementation.
// storage may be nil; attachment URLs then point at the uploads base.
func NewApplicationService(
	appRepo port.ApplicationRepository,
	registries status.Set,
	resolver *attachment.Resolver,
	storage port.ObjectStorage,
	s3cfg *config.S3Config,
) ApplicationService {
	return &applicationService{
		appRepo:    appRepo,
		registries: registries,
		resolver:   resolver,
		storage:    storage,
		s3cfg:      s3cfg,
	}
}

func (s *applicationService) List(ctx context.Context, input ListApplicationsInput) ([]ApplicationView, int, domain.StatusCounts, error) {
	reg := s.registries.For(input.Domain)
	if reg == nil {
		return nil, 0, nil, domain.ErrUnknownDomain
	}

	filter := port.ApplicationFilter{
		Domain: input.Domain,
		Search: input.Search,
		Offset: input.Offset,
		Limit:  input.Limit,
	}
	if input.Status != "" {
		st, ok := reg.Lookup(input.Status)
		if !ok {
			return nil, 0, nil, domain.ErrUnknownStatus
		}
		filter.Status = &st
	}

	apps, total, err := s.appRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("application.List: %w", err)
	}
	counts, err := s.appRepo.CountsByStatus(ctx, input.Domain)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("application.List counts: %w", err)
	}

	views := make([]ApplicationView, 0, len(apps))
	for i := range apps {
		// List rows skip attachment resolution; the detail view carries it.
		views = append(views, s.view(ctx, &apps[i], false))
	}
	return views, total, counts, nil
}

func (s *applicationService) GetByID(ctx context.Context, id uuid.UUID) (*ApplicationView, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	v := s.view(ctx, app, true)
	return &v, nil
}

func (s *applicationService) ListDocuments(ctx context.Context, id uuid.UUID) ([]domain.FileDescriptor, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.resolveFiles(ctx, app), nil
}

// DownloadDocument proxies one attachment's bytes from the object store, for
// deployments where the store is not directly reachable by the dashboard.
func (s *applicationService) DownloadDocument(ctx context.Context, id uuid.UUID, docID string) (*DownloadedDocument, error) {
	if s.storage == nil || s.s3cfg == nil || s.s3cfg.Bucket == "" {
		return nil, fmt.Errorf("application.DownloadDocument: object storage not configured")
	}

	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, f := range s.resolver.Resolve(app.Attachments) {
		if f.ID != docID {
			continue
		}
		key := s.s3cfg.KeyPrefix + "/" + f.Name
		content, err := s.storage.Download(ctx, s.s3cfg.Bucket, key)
		if err != nil {
			return nil, fmt.Errorf("application.DownloadDocument %q: %w", key, err)
		}
		return &DownloadedDocument{Name: f.Name, MimeType: f.MimeType, Content: content}, nil
	}
	return nil, domain.ErrNotFound
}

func (s *applicationService) view(ctx context.Context, app *domain.PermitApplication, withFiles bool) ApplicationView {
	reg := s.registries.For(app.Domain)

	v := ApplicationView{PermitApplication: *app}
	if reg != nil {
		v.DisplayStatus = reg.ToDisplay(string(app.Status))
	}

	// Newest first for display; the raw blob is never reordered.
	entries := ledger.Decode(app.CommentLog)
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		view := LedgerEntryView{DisplayAt: ledger.DisplayTime(e.At), Text: e.Text}
		if !e.At.IsZero() {
			at := e.At
			view.At = &at
		}
		v.Ledger = append(v.Ledger, view)
	}

	if withFiles {
		v.Files = s.resolveFiles(ctx, app)
	}
	return v
}

// resolveFiles normalizes the raw attachment record and, when an object
// store bucket is configured, swaps each URL for a presigned one. A presign
// failure keeps the plain URL rather than dropping the file.
func (s *applicationService) resolveFiles(ctx context.Context, app *domain.PermitApplication) []domain.FileDescriptor {
	files := s.resolver.Resolve(app.Attachments)
	if s.storage == nil || s.s3cfg == nil || s.s3cfg.Bucket == "" {
		return files
	}
	for i := range files {
		key := s.s3cfg.KeyPrefix + "/" + files[i].Name
		url, err := s.storage.GetPresignedURL(ctx, s.s3cfg.Bucket, key, s.s3cfg.PresignExpiry)
		if err != nil {
			log.Printf("application %s: presign %q failed: %v", app.ID, key, err)
			continue
		}
		files[i].URL = url
	}
	return files
}
