package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Theijiii/plms-sys-sub004/internal/domain"
	"github.com/Theijiii/plms-sys-sub004/internal/history"
	"github.com/Theijiii/plms-sys-sub004/internal/port"
	"github.com/Theijiii/plms-sys-sub004/internal/status"
	"github.com/Theijiii/plms-sys-sub004/internal/workflow"
)

// ApplyActionInput is the DTO for one reviewer action.
type ApplyActionInput struct {
	ApplicationID uuid.UUID
	TargetCode    string
	Comment       string
	// Version is the optimistic token the client read the application at.
	// Nil skips the client-side check; the store still compare-and-sets.
	Version   *int64
	ActorID   uuid.UUID
	ActorName string
}

// ReviewService applies reviewer actions and serves the audit views.
type ReviewService interface {
	ApplyAction(ctx context.Context, input *ApplyActionInput) (*domain.PermitApplication, error)
	ListEvents(ctx context.Context, applicationID uuid.UUID, offset, limit int) ([]domain.ReviewEvent, int, error)
	SessionActions(applicationID uuid.UUID) []history.ActionRecord
	Transitions(d domain.PermitDomain, current domain.Status) []domain.Status
}

type reviewService struct {
	appRepo    port.ApplicationRepository
	eventRepo  port.ReviewEventRepository
	engine     *workflow.Engine
	registries status.Set
	tracker    *history.Tracker
	email      port.EmailSender
}

// NewReviewService creates a new ReviewService implementation.
func NewReviewService(
	appRepo port.ApplicationRepository,
	eventRepo port.ReviewEventRepository,
	engine *workflow.Engine,
	registries status.Set,
	tracker *history.Tracker,
	email port.EmailSender,
) ReviewService {
	return &reviewService{
		appRepo:    appRepo,
		eventRepo:  eventRepo,
		engine:     engine,
		registries: registries,
		tracker:    tracker,
		email:      email,
	}
}

func (s *reviewService) ApplyAction(ctx context.Context, input *ApplyActionInput) (*domain.PermitApplication, error) {
	app, err := s.appRepo.GetByID(ctx, input.ApplicationID)
	if err != nil {
		return nil, err
	}

	if input.Version != nil && *input.Version != app.Version {
		return nil, domain.ErrVersionConflict
	}

	result, err := s.engine.ApplyAction(app, input.TargetCode, input.Comment)
	if err != nil {
		return nil, err
	}

	updated, err := s.appRepo.UpdateReview(ctx, app.ID, app.Version, result.Status, result.CommentLog)
	if err != nil {
		return nil, err
	}

	s.audit(ctx, app, updated, input)
	s.tracker.Record(app.ID, history.ActionRecord{
		Action: input.TargetCode,
		Status: updated.Status,
		Notes:  input.Comment,
		By:     input.ActorName,
		At:     time.Now().UTC(),
	})
	s.notify(ctx, updated, input.Comment)

	return updated, nil
}

func (s *reviewService) ListEvents(ctx context.Context, applicationID uuid.UUID, offset, limit int) ([]domain.ReviewEvent, int, error) {
	if _, err := s.appRepo.GetByID(ctx, applicationID); err != nil {
		return nil, 0, err
	}
	return s.eventRepo.ListByApplication(ctx, applicationID, offset, limit)
}

func (s *reviewService) SessionActions(applicationID uuid.UUID) []history.ActionRecord {
	return s.tracker.List(applicationID)
}

func (s *reviewService) Transitions(d domain.PermitDomain, current domain.Status) []domain.Status {
	reg := s.registries.For(d)
	if reg == nil {
		return nil
	}
	return s.engine.Transitions(reg.FromWire(string(current)))
}

// audit appends one durable review event. Audit failure never fails the
// action that already persisted; it is logged for diagnostics.
func (s *reviewService) audit(ctx context.Context, before, after *domain.PermitApplication, input *ApplyActionInput) {
	event := &domain.ReviewEvent{
		ID:            uuid.New(),
		ApplicationID: after.ID,
		ActorID:       input.ActorID,
		ActorName:     input.ActorName,
		FromStatus:    before.Status,
		ToStatus:      after.Status,
		Notes:         input.Comment,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		log.Printf("review event for %s not recorded: %v", after.ID, err)
	}
}

// notify emails the applicant on a decision stage. Best effort.
func (s *reviewService) notify(ctx context.Context, app *domain.PermitApplication, notes string) {
	if s.email == nil || app.ApplicantEmail == "" {
		return
	}
	switch app.Status {
	case domain.StatusApproved, domain.StatusRejected, domain.StatusReleased:
	default:
		return
	}
	reg := s.registries.For(app.Domain)
	if reg == nil {
		return
	}
	msg := port.DecisionEmail{
		ToEmail:     app.ApplicantEmail,
		ToName:      app.ApplicantName,
		ReferenceNo: app.ReferenceNo,
		StatusLabel: reg.ToDisplay(string(app.Status)),
		Notes:       notes,
	}
	if err := s.email.SendDecisionEmail(ctx, msg); err != nil {
		log.Printf("decision email for %s not sent: %v", app.ID, err)
	}
}
