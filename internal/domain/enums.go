package domain

// PermitDomain identifies a permit category with its own status vocabulary.
type PermitDomain string

const (
	DomainBarangay PermitDomain = "barangay"
	DomainBusiness PermitDomain = "business"
)

// KnownDomains lists every permit domain the service reviews.
var KnownDomains = []PermitDomain{DomainBarangay, DomainBusiness}

// Valid reports whether d is a known permit domain.
func (d PermitDomain) Valid() bool {
	for _, k := range KnownDomains {
		if d == k {
			return true
		}
	}
	return false
}

// Status is the canonical internal review stage of a permit application.
// Wire casing (lower_snake vs UPPER_SNAKE) is a per-domain detail absorbed
// by the status registry and never stored internally.
type Status string

const (
	StatusPending     Status = "pending"
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
	StatusReleased    Status = "released"
)

// AllStatuses lists every canonical review stage in menu order.
var AllStatuses = []Status{
	StatusPending,
	StatusUnderReview,
	StatusApproved,
	StatusRejected,
	StatusReleased,
}

// ReviewerRole defines the role hierarchy for admin users.
type ReviewerRole string

const (
	RoleAdmin    ReviewerRole = "admin"
	RoleReviewer ReviewerRole = "reviewer"
)

// MimeTypeOctetStream is the fallback content type for unknown extensions.
const MimeTypeOctetStream = "application/octet-stream"

// MimeByExtension maps a lowercased file extension (without dot) to its MIME
// content type. Extensions not listed here resolve to MimeTypeOctetStream.
var MimeByExtension = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"webp": "image/webp",
	"pdf":  "application/pdf",
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"xls":  "application/vnd.ms-excel",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"txt":  "text/plain",
	"csv":  "text/csv",
	"zip":  "application/zip",
	"rar":  "application/vnd.rar",
}
