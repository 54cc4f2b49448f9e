package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Theijiii/plms-sys-sub004/internal/domain"
	"github.com/Theijiii/plms-sys-sub004/internal/history"
	"github.com/Theijiii/plms-sys-sub004/internal/port"
	"github.com/Theijiii/plms-sys-sub004/internal/service"
	"github.com/Theijiii/plms-sys-sub004/internal/status"
	"github.com/Theijiii/plms-sys-sub004/internal/workflow"
	"github.com/Theijiii/plms-sys-sub004/mocks"
)

type reviewFixture struct {
	appRepo   *mocks.MockApplicationRepo
	eventRepo *mocks.MockReviewEventRepo
	email     *mocks.MockEmailSender
	tracker   *history.Tracker
	svc       service.ReviewService
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()
	registries := status.DefaultSet()
	engine := workflow.NewEngine(registries, workflow.WithClock(func() time.Time {
		return time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	}))

	f := &reviewFixture{
		appRepo:   new(mocks.MockApplicationRepo),
		eventRepo: new(mocks.MockReviewEventRepo),
		email:     new(mocks.MockEmailSender),
		tracker:   history.NewTracker(),
	}
	f.svc = service.NewReviewService(f.appRepo, f.eventRepo, engine, registries, f.tracker, f.email)
	return f
}

func pendingApplication() *domain.PermitApplication {
	return &domain.PermitApplication{
		ID:             uuid.New(),
		ReferenceNo:    "BRG-2025-0042",
		Domain:         domain.DomainBarangay,
		ApplicantName:  "Maria Santos",
		ApplicantEmail: "maria@example.com",
		Status:         domain.StatusPending,
		CommentLog:     "",
		Version:        3,
	}
}

func TestReviewService_ApplyAction_Approve(t *testing.T) {
	f := newReviewFixture(t)
	app := pendingApplication()
	actorID := uuid.New()

	approved := *app
	approved.Status = domain.StatusApproved
	approved.Version = app.Version + 1

	f.appRepo.On("GetByID", mock.Anything, app.ID).Return(app, nil)
	f.appRepo.On("UpdateReview", mock.Anything, app.ID, app.Version, domain.StatusApproved,
		mock.MatchedBy(func(log string) bool {
			return strings.Contains(log, "ID verified")
		})).Return(&approved, nil)
	f.eventRepo.On("Create", mock.Anything, mock.MatchedBy(func(e *domain.ReviewEvent) bool {
		return e.FromStatus == domain.StatusPending && e.ToStatus == domain.StatusApproved && e.Notes == "ID verified"
	})).Return(nil)
	f.email.On("SendDecisionEmail", mock.Anything, mock.MatchedBy(func(msg port.DecisionEmail) bool {
		return msg.ToEmail == "maria@example.com" && msg.ReferenceNo == "BRG-2025-0042"
	})).Return(nil)

	updated, err := f.svc.ApplyAction(context.Background(), &service.ApplyActionInput{
		ApplicationID: app.ID,
		TargetCode:    "approved",
		Comment:       "ID verified",
		ActorID:       actorID,
		ActorName:     "Test Reviewer",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, updated.Status)

	actions := f.svc.SessionActions(app.ID)
	assert.Len(t, actions, 1)
	assert.Equal(t, "approved", actions[0].Action)
	assert.Equal(t, "ID verified", actions[0].Notes)
	assert.Equal(t, "Test Reviewer", actions[0].By)

	f.appRepo.AssertExpectations(t)
	f.eventRepo.AssertExpectations(t)
	f.email.AssertExpectations(t)
}

func TestReviewService_ApplyAction_RejectionRequiresComment(t *testing.T) {
	f := newReviewFixture(t)
	app := pendingApplication()

	f.appRepo.On("GetByID", mock.Anything, app.ID).Return(app, nil)

	_, err := f.svc.ApplyAction(context.Background(), &service.ApplyActionInput{
		ApplicationID: app.ID,
		TargetCode:    "rejected",
		Comment:       "   ",
		ActorName:     "Test Reviewer",
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
	// Nothing was persisted, audited, or tracked.
	f.appRepo.AssertNotCalled(t, "UpdateReview", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.eventRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Empty(t, f.svc.SessionActions(app.ID))
}

func TestReviewService_ApplyAction_TerminalState(t *testing.T) {
	f := newReviewFixture(t)
	app := pendingApplication()
	app.Status = domain.StatusRejected

	f.appRepo.On("GetByID", mock.Anything, app.ID).Return(app, nil)

	_, err := f.svc.ApplyAction(context.Background(), &service.ApplyActionInput{
		ApplicationID: app.ID,
		TargetCode:    "approved",
		Comment:       "changed our mind",
		ActorName:     "Test Reviewer",
	})

	assert.ErrorIs(t, err, domain.ErrTerminalState)
	f.appRepo.AssertNotCalled(t, "UpdateReview", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewService_ApplyAction_StaleVersion(t *testing.T) {
	f := newReviewFixture(t)
	app := pendingApplication()
	stale := app.Version - 1

	f.appRepo.On("GetByID", mock.Anything, app.ID).Return(app, nil)

	_, err := f.svc.ApplyAction(context.Background(), &service.ApplyActionInput{
		ApplicationID: app.ID,
		TargetCode:    "approved",
		Comment:       "ok",
		Version:       &stale,
		ActorName:     "Test Reviewer",
	})

	assert.ErrorIs(t, err, domain.ErrVersionConflict)
	f.appRepo.AssertNotCalled(t, "UpdateReview", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewService_ApplyAction_LostRace(t *testing.T) {
	f := newReviewFixture(t)
	app := pendingApplication()

	f.appRepo.On("GetByID", mock.Anything, app.ID).Return(app, nil)
	f.appRepo.On("UpdateReview", mock.Anything, app.ID, app.Version, domain.StatusApproved, mock.Anything).
		Return(nil, domain.ErrVersionConflict)

	_, err := f.svc.ApplyAction(context.Background(), &service.ApplyActionInput{
		ApplicationID: app.ID,
		TargetCode:    "approved",
		Comment:       "ok",
		ActorName:     "Test Reviewer",
	})

	assert.ErrorIs(t, err, domain.ErrVersionConflict)
	f.eventRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Empty(t, f.svc.SessionActions(app.ID))
}

func TestReviewService_ApplyAction_AuditFailureDoesNotFailAction(t *testing.T) {
	f := newReviewFixture(t)
	app := pendingApplication()
	app.ApplicantEmail = ""

	reviewed := *app
	reviewed.Status = domain.StatusUnderReview
	reviewed.Version = app.Version + 1

	f.appRepo.On("GetByID", mock.Anything, app.ID).Return(app, nil)
	f.appRepo.On("UpdateReview", mock.Anything, app.ID, app.Version, domain.StatusUnderReview, mock.Anything).
		Return(&reviewed, nil)
	f.eventRepo.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)

	updated, err := f.svc.ApplyAction(context.Background(), &service.ApplyActionInput{
		ApplicationID: app.ID,
		TargetCode:    "under_review",
		ActorName:     "Test Reviewer",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusUnderReview, updated.Status)
}

func TestReviewService_ApplyAction_BusinessWireCasing(t *testing.T) {
	f := newReviewFixture(t)
	app := pendingApplication()
	app.Domain = domain.DomainBusiness

	released := *app
	released.Status = domain.StatusReleased
	released.Version = app.Version + 1

	f.appRepo.On("GetByID", mock.Anything, app.ID).Return(app, nil)
	f.appRepo.On("UpdateReview", mock.Anything, app.ID, app.Version, domain.StatusReleased, mock.Anything).
		Return(&released, nil)
	f.eventRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.email.On("SendDecisionEmail", mock.Anything, mock.Anything).Return(nil)

	updated, err := f.svc.ApplyAction(context.Background(), &service.ApplyActionInput{
		ApplicationID: app.ID,
		TargetCode:    "RELEASED",
		ActorName:     "Test Reviewer",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusReleased, updated.Status)
}

func TestReviewService_ApplyAction_NoEmailForIntermediateStage(t *testing.T) {
	f := newReviewFixture(t)
	app := pendingApplication()

	reviewed := *app
	reviewed.Status = domain.StatusUnderReview
	reviewed.Version = app.Version + 1

	f.appRepo.On("GetByID", mock.Anything, app.ID).Return(app, nil)
	f.appRepo.On("UpdateReview", mock.Anything, app.ID, app.Version, domain.StatusUnderReview, mock.Anything).
		Return(&reviewed, nil)
	f.eventRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := f.svc.ApplyAction(context.Background(), &service.ApplyActionInput{
		ApplicationID: app.ID,
		TargetCode:    "under_review",
		ActorName:     "Test Reviewer",
	})

	assert.NoError(t, err)
	f.email.AssertNotCalled(t, "SendDecisionEmail", mock.Anything, mock.Anything)
}

func TestReviewService_ListEvents(t *testing.T) {
	f := newReviewFixture(t)
	app := pendingApplication()

	events := []domain.ReviewEvent{
		{ID: uuid.New(), ApplicationID: app.ID, FromStatus: domain.StatusPending, ToStatus: domain.StatusApproved},
	}
	f.appRepo.On("GetByID", mock.Anything, app.ID).Return(app, nil)
	f.eventRepo.On("ListByApplication", mock.Anything, app.ID, 0, 20).Return(events, 1, nil)

	got, total, err := f.svc.ListEvents(context.Background(), app.ID, 0, 20)
	assert.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, events, got)
}

func TestReviewService_ListEvents_UnknownApplication(t *testing.T) {
	f := newReviewFixture(t)
	id := uuid.New()

	f.appRepo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	_, _, err := f.svc.ListEvents(context.Background(), id, 0, 20)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	f.eventRepo.AssertNotCalled(t, "ListByApplication", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewService_Transitions(t *testing.T) {
	f := newReviewFixture(t)

	next := f.svc.Transitions(domain.DomainBarangay, domain.StatusPending)
	assert.Len(t, next, 4)
	assert.Contains(t, next, domain.StatusApproved)

	assert.Empty(t, f.svc.Transitions(domain.DomainBarangay, domain.StatusRejected))
}
