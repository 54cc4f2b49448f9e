package noop

import (
	"context"
	"log"

	"github.com/Theijiii/plms-sys-sub004/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs decisions to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendDecisionEmail(_ context.Context, msg port.DecisionEmail) error {
	log.Printf("[NOOP EMAIL] Decision for %s (%s): application %s is now %s",
		msg.ToName, msg.ToEmail, msg.ReferenceNo, msg.StatusLabel)
	return nil
}
