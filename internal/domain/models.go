package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// PermitApplication is one submitted permit application under review.
//
// CommentLog and Attachments are the raw stored representations and remain
// the source of truth; decoded ledger entries and resolved file descriptors
// are derived views recomputed on read.
type PermitApplication struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	ReferenceNo    string          `db:"reference_no" json:"reference_no"`
	Domain         PermitDomain    `db:"domain" json:"domain"`
	ApplicantName  string          `db:"applicant_name" json:"applicant_name"`
	ApplicantEmail string          `db:"applicant_email" json:"applicant_email"`
	Status         Status          `db:"status" json:"status"`
	CommentLog     string          `db:"comment_log" json:"comment_log"`
	Attachments    json.RawMessage `db:"attachments" json:"attachments"`
	Version        int64           `db:"version" json:"version"`
	SubmittedAt    time.Time       `db:"submitted_at" json:"submitted_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}

// LedgerEntry is one timestamped reviewer remark in the comment log.
// A zero At means the source block carried no parseable timestamp marker.
type LedgerEntry struct {
	At   time.Time `json:"at"`
	Text string    `json:"text"`
}

// FileDescriptor is the normalized view of one raw attachment reference.
type FileDescriptor struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MimeType string `json:"mime_type"`
	URL      string `json:"url"`
}

// ReviewEvent is one row of the durable, append-only review audit log.
type ReviewEvent struct {
	ID            uuid.UUID `db:"id" json:"id"`
	ApplicationID uuid.UUID `db:"application_id" json:"application_id"`
	ActorID       uuid.UUID `db:"actor_id" json:"actor_id"`
	ActorName     string    `db:"actor_name" json:"actor_name"`
	FromStatus    Status    `db:"from_status" json:"from_status"`
	ToStatus      Status    `db:"to_status" json:"to_status"`
	Notes         string    `db:"notes" json:"notes"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// Reviewer is an admin user allowed to act on applications.
type Reviewer struct {
	ID           uuid.UUID    `db:"id" json:"id"`
	Email        string       `db:"email" json:"email"`
	PasswordHash string       `db:"password_hash" json:"-"`
	FullName     string       `db:"full_name" json:"full_name"`
	Role         ReviewerRole `db:"role" json:"role"`
	IsActive     bool         `db:"is_active" json:"is_active"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updated_at"`
}

// StatusCounts is the per-stage tally returned alongside application lists.
type StatusCounts map[Status]int
