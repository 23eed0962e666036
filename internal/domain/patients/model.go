package patients

import (
	"github.com/clinops/console/internal/platform/flatten"
	"github.com/clinops/console/internal/platform/search"
)

// UnknownName is displayed when neither the patient record nor any of
// their appointments carries a name.
const UnknownName = "Unknown User"

// Patient is one entry in the users collection, read-only from this
// console. AppointmentCount is derived; it is zero when the patient
// has no appointments, never absent.
type Patient struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	AppointmentCount int    `json:"appointment_count"`
}

func fromRecord(r flatten.Record) *Patient {
	return &Patient{
		ID:    r.Key,
		Name:  flatten.Str(r.Fields, "name", ""),
		Email: flatten.Str(r.Fields, "email", ""),
	}
}

// Filter applies the console's search predicate over name and email.
// Input order is preserved and records are never mutated.
func Filter(directory []*Patient, term string) []*Patient {
	out := make([]*Patient, 0, len(directory))
	for _, p := range directory {
		if search.Term(term, p.Name, p.Email) {
			out = append(out, p)
		}
	}
	return out
}
