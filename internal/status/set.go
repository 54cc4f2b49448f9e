package status

import (
	"strings"

	"github.com/Theijiii/plms-sys-sub004/internal/domain"
)

// Set holds one Registry per permit domain.
type Set map[domain.PermitDomain]*Registry

// displayLabels is shared across domains; casing differences live only in
// the wire codes.
var displayLabels = map[domain.Status]string{
	domain.StatusPending:     "Pending",
	domain.StatusUnderReview: "Under Review",
	domain.StatusApproved:    "Approved",
	domain.StatusRejected:    "Rejected",
	domain.StatusReleased:    "Released",
}

// DefaultSet builds the registries for the known permit domains. Barangay
// clearance stores lower_snake codes, business permits UPPER_SNAKE; both
// default to the pending stage.
func DefaultSet() Set {
	barangay := map[domain.Status]string{}
	business := map[domain.Status]string{}
	for _, s := range domain.AllStatuses {
		barangay[s] = string(s)
		business[s] = strings.ToUpper(string(s))
	}
	return Set{
		domain.DomainBarangay: NewRegistry(Mapping{
			Domain:    domain.DomainBarangay,
			Default:   domain.StatusPending,
			WireCodes: barangay,
			Labels:    displayLabels,
		}),
		domain.DomainBusiness: NewRegistry(Mapping{
			Domain:    domain.DomainBusiness,
			Default:   domain.StatusPending,
			WireCodes: business,
			Labels:    displayLabels,
		}),
	}
}

// For returns the registry for d, or nil when d is not configured.
func (s Set) For(d domain.PermitDomain) *Registry {
	return s[d]
}
