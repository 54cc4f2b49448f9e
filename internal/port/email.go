package port

import "context"

// DecisionEmail carries an applicant notification about a review decision.
type DecisionEmail struct {
	ToEmail     string
	ToName      string
	ReferenceNo string
	StatusLabel string
	Notes       string
}

// EmailSender defines the contract for applicant notifications.
type EmailSender interface {
	SendDecisionEmail(ctx context.Context, msg DecisionEmail) error
}
