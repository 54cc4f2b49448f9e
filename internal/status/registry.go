package status

import (
	"strings"

	"github.com/Theijiii/plms-sys-sub004/internal/domain"
)

// Mapping is the static status configuration for one permit domain: the set
// of canonical codes, the domain's wire casing for each, the display label
// for each, and the default code used when a stored status is empty or
// unrecognized. Adding a domain means supplying a new Mapping, not touching
// registry logic.
type Mapping struct {
	Domain    domain.PermitDomain
	Default   domain.Status
	WireCodes map[domain.Status]string
	Labels    map[domain.Status]string
}

// Registry is the single source of truth for one domain's status vocabulary.
// Every conversion is total: unknown input falls back to the domain default
// instead of erroring.
type Registry struct {
	mapping  Mapping
	byWire   map[string]domain.Status
	byLabel  map[string]domain.Status
	statuses []domain.Status
}

// NewRegistry builds a Registry from a domain mapping. Reverse lookup tables
// are precomputed with lowercased keys so wire casing and label casing never
// affect resolution.
func NewRegistry(m Mapping) *Registry {
	r := &Registry{
		mapping: m,
		byWire:  make(map[string]domain.Status, len(m.WireCodes)),
		byLabel: make(map[string]domain.Status, len(m.Labels)),
	}
	for _, s := range domain.AllStatuses {
		if _, ok := m.WireCodes[s]; !ok {
			continue
		}
		r.statuses = append(r.statuses, s)
		r.byWire[strings.ToLower(m.WireCodes[s])] = s
		// Canonical codes resolve too, so already-normalized values round-trip.
		r.byWire[string(s)] = s
		if label, ok := m.Labels[s]; ok {
			r.byLabel[strings.ToLower(label)] = s
		}
	}
	return r
}

// Domain returns the permit domain this registry serves.
func (r *Registry) Domain() domain.PermitDomain { return r.mapping.Domain }

// DefaultStatus returns the domain's default canonical status.
func (r *Registry) DefaultStatus() domain.Status { return r.mapping.Default }

// Statuses returns the domain's canonical codes in menu order.
func (r *Registry) Statuses() []domain.Status {
	out := make([]domain.Status, len(r.statuses))
	copy(out, r.statuses)
	return out
}

// Contains reports whether s belongs to the domain's canonical set.
func (r *Registry) Contains(s domain.Status) bool {
	_, ok := r.mapping.WireCodes[s]
	return ok
}

// FromWire converts a stored wire code to its canonical status. Empty or
// unrecognized codes resolve to the domain default.
func (r *Registry) FromWire(code string) domain.Status {
	if code == "" {
		return r.mapping.Default
	}
	if s, ok := r.byWire[strings.ToLower(strings.TrimSpace(code))]; ok {
		return s
	}
	return r.mapping.Default
}

// ToWire converts a canonical status to the domain's stored wire code.
// Statuses outside the domain's set emit the default's wire code.
func (r *Registry) ToWire(s domain.Status) string {
	if code, ok := r.mapping.WireCodes[s]; ok {
		return code
	}
	return r.mapping.WireCodes[r.mapping.Default]
}

// Lookup resolves a wire or canonical code strictly, reporting whether it
// belongs to the domain's set. Unlike FromWire it does not fall back.
func (r *Registry) Lookup(code string) (domain.Status, bool) {
	s, ok := r.byWire[strings.ToLower(strings.TrimSpace(code))]
	return s, ok
}

// ToDisplay converts a stored code (wire or canonical casing, possibly empty)
// to its human display label. Never fails: unknown input yields the default
// label.
func (r *Registry) ToDisplay(code string) string {
	return r.mapping.Labels[r.FromWire(code)]
}

// ToCanonical is the inverse of ToDisplay, used when an operator selects a
// status by label. Unknown labels resolve to the domain default.
func (r *Registry) ToCanonical(label string) domain.Status {
	if s, ok := r.byLabel[strings.ToLower(strings.TrimSpace(label))]; ok {
		return s
	}
	return r.mapping.Default
}
