// Package lifecycle decides which mutations an appointment may undergo.
//
// From the business point of view an appointment is either mutable (active,
// attended or missed, freely reachable from one another) or frozen
// (cancelled). Nothing may bring a frozen appointment back.
//
//	active ⇄ attended ⇄ missed
//	   └────────┴─────────┴──→ cancelled (terminal)
package lifecycle

import "panda-server/internal/models"

// Operation is a mutation requested on an appointment.
type Operation int

const (
	Create Operation = iota
	Update
	Cancel
)

func (o Operation) String() string {
	switch o {
	case Create:
		return "create"
	case Update:
		return "update"
	case Cancel:
		return "cancel"
	}
	return "unknown"
}

// Outcome is the decision reached for an operation.
type Outcome int

const (
	// Allow means the write may go ahead.
	Allow Outcome = iota
	// Refuse means the write must not be attempted; see Verdict.Reason.
	Refuse
	// Missing means the operation needs an existing appointment and there is none.
	Missing
)

// Verdict is the result of Decide.
type Verdict struct {
	Outcome Outcome
	Reason  models.MessageKey
}

// Allowed reports whether the write may go ahead.
func (v Verdict) Allowed() bool {
	return v.Outcome == Allow
}

// IsFrozen reports whether an appointment in status s can no longer change.
func IsFrozen(s models.AppointmentStatus) bool {
	return s == models.StatusCancelled
}

// IsMutable reports whether an appointment in status s may still be updated.
func IsMutable(s models.AppointmentStatus) bool {
	return s.IsValid() && !IsFrozen(s)
}

// Decide applies the lifecycle rules to op given the currently stored
// appointment, or nil when none exists under that id.
//
// Creating over a cancelled appointment is refused with the update key, since
// it amounts to an attempt to resurrect it. Cancel is always allowed: the
// caller finds out from the store whether anything matched.
func Decide(op Operation, existing *models.Appointment) Verdict {
	switch op {
	case Create:
		if existing == nil {
			return Verdict{Outcome: Allow}
		}
		if IsFrozen(existing.Status) {
			return Verdict{Outcome: Refuse, Reason: models.KeyCouldNotUpdateAppointment}
		}
		return Verdict{Outcome: Refuse, Reason: models.KeyCouldNotCreateAppointment}

	case Update:
		if existing == nil {
			return Verdict{Outcome: Missing, Reason: models.KeyAppointmentNotFound}
		}
		if IsFrozen(existing.Status) {
			return Verdict{Outcome: Refuse, Reason: models.KeyCouldNotUpdateAppointment}
		}
		return Verdict{Outcome: Allow}

	case Cancel:
		return Verdict{Outcome: Allow}
	}
	return Verdict{Outcome: Refuse, Reason: models.KeyCouldNotUpdateAppointment}
}

// CancelChanges is the partial document written to cancel an appointment.
func CancelChanges() models.Changes {
	return models.Changes{models.FieldStatus: string(models.StatusCancelled)}
}
