package doctors

import (
	"strings"

	"github.com/clinops/console/internal/platform/flatten"
	"github.com/clinops/console/internal/platform/search"
)

// Status is a doctor application's approval state.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

var validStatuses = map[Status]bool{
	StatusPending:  true,
	StatusApproved: true,
	StatusRejected: true,
}

// Doctor is one onboarding application from the doctors collection.
// Applications are created by the registration flow; this console only
// ever changes Status.
type Doctor struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Specialty     string  `json:"specialty"`
	Status        Status  `json:"status"`
	Email         string  `json:"email"`
	Bio           string  `json:"bio"`
	Rating        float64 `json:"rating"`
	Fee           float64 `json:"fee"`
	LicenseNumber string  `json:"license_number"`
}

func recordDefaults() map[string]any {
	return map[string]any{"status": string(StatusPending)}
}

func fromRecord(r flatten.Record) *Doctor {
	return &Doctor{
		ID:            r.Key,
		Name:          flatten.Str(r.Fields, "name", ""),
		Specialty:     flatten.Str(r.Fields, "specialty", ""),
		Status:        normalizeStatus(flatten.Str(r.Fields, "status", string(StatusPending))),
		Email:         flatten.Str(r.Fields, "email", ""),
		Bio:           flatten.Str(r.Fields, "bio", ""),
		Rating:        flatten.Num(r.Fields, "rating", 0),
		Fee:           flatten.Num(r.Fields, "fee", 0),
		LicenseNumber: flatten.Str(r.Fields, "licenseNumber", ""),
	}
}

// normalizeStatus maps whatever the store holds onto the enum. After
// normalization a status is always one of the enum values: unknown or
// differently-cased values collapse to the default.
func normalizeStatus(raw string) Status {
	s := Status(strings.ToLower(raw))
	if !validStatuses[s] {
		return StatusPending
	}
	return s
}

// NextStatuses lists the decisions the console offers from a given
// state. Approval is a reversible decision, not a one-way gate: every
// other state is always reachable and there is no terminal state.
func NextStatuses(from Status) []Status {
	out := make([]Status, 0, len(validStatuses)-1)
	for _, s := range []Status{StatusPending, StatusApproved, StatusRejected} {
		if s != from {
			out = append(out, s)
		}
	}
	return out
}

// Filter applies the console's search and status predicates over the
// roster. The search term matches name and specialty. Input order is
// preserved and records are never mutated.
func Filter(roster []*Doctor, term, status string) []*Doctor {
	out := make([]*Doctor, 0, len(roster))
	for _, d := range roster {
		if search.Term(term, d.Name, d.Specialty) && search.Status(status, string(d.Status)) {
			out = append(out, d)
		}
	}
	return out
}
