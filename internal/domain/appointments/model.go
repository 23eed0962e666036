package appointments

import (
	"strings"

	"github.com/clinops/console/internal/platform/flatten"
	"github.com/clinops/console/internal/platform/search"
)

// Status is an appointment's lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var validStatuses = map[Status]bool{
	StatusPending:   true,
	StatusConfirmed: true,
	StatusCompleted: true,
	StatusCancelled: true,
}

// consoleTransitions are the moves this console offers operators.
// "completed" is only ever written by external collaborators, and
// cancelled/completed are terminal from the console's point of view.
// The store itself accepts any valid status at any time.
var consoleTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// Appointment is one booking from the appointments collection. The
// collection is owner-scoped: records live under their patient's key,
// so identity is the (PatientID, ID) pair and the same literal id may
// appear under two patients without collision.
type Appointment struct {
	ID          string `json:"id"`
	PatientID   string `json:"patient_id"`
	PatientName string `json:"patient_name"`
	DoctorName  string `json:"doctor_name"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	DateISO     string `json:"date_iso,omitempty"`
	Status      Status `json:"status"`
}

func recordDefaults() map[string]any {
	return map[string]any{"status": string(StatusPending)}
}

func fromRecord(r flatten.Record) *Appointment {
	return &Appointment{
		ID:          r.Key,
		PatientID:   r.OwnerKey,
		PatientName: flatten.Str(r.Fields, "name", ""),
		DoctorName:  flatten.Str(r.Fields, "doctor", ""),
		Date:        flatten.Str(r.Fields, "date", ""),
		Time:        flatten.Str(r.Fields, "time", ""),
		DateISO:     flatten.Str(r.Fields, "dateIso", ""),
		Status:      normalizeStatus(flatten.Str(r.Fields, "status", string(StatusPending))),
	}
}

func normalizeStatus(raw string) Status {
	s := Status(strings.ToLower(raw))
	if !validStatuses[s] {
		return StatusPending
	}
	return s
}

// NextStatuses lists the transitions the console offers from a state.
func NextStatuses(from Status) []Status {
	return consoleTransitions[from]
}

// Filter applies the console's search and status predicates. The
// search term matches the doctor and patient display names. Input
// order is preserved and records are never mutated.
func Filter(book []*Appointment, term, status string) []*Appointment {
	out := make([]*Appointment, 0, len(book))
	for _, a := range book {
		if search.Term(term, a.DoctorName, a.PatientName) && search.Status(status, string(a.Status)) {
			out = append(out, a)
		}
	}
	return out
}
